package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/dto"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/httpresp"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	ucCoach "github.com/BruksfildServices01/coach-calendar/internal/usecase/coach"
)

// ======================================================
// HANDLER
// ======================================================

type CoachHandler struct {
	listEvents   *ucCoach.ListEvents
	listBookings *ucCoach.ListBookings
	getEvent     *ucCoach.GetEvent
	createEvent  *ucCoach.CreateEvent
	updateEvent  *ucCoach.UpdateEvent
	deleteEvent  *ucCoach.DeleteEvent
	decideOne    *ucCoach.DecideBooking
	decideAll    *ucCoach.DecideAllBookings
}

func NewCoachHandler(
	listEvents *ucCoach.ListEvents,
	listBookings *ucCoach.ListBookings,
	getEvent *ucCoach.GetEvent,
	createEvent *ucCoach.CreateEvent,
	updateEvent *ucCoach.UpdateEvent,
	deleteEvent *ucCoach.DeleteEvent,
	decideOne *ucCoach.DecideBooking,
	decideAll *ucCoach.DecideAllBookings,
) *CoachHandler {
	return &CoachHandler{
		listEvents:   listEvents,
		listBookings: listBookings,
		getEvent:     getEvent,
		createEvent:  createEvent,
		updateEvent:  updateEvent,
		deleteEvent:  deleteEvent,
		decideOne:    decideOne,
		decideAll:    decideAll,
	}
}

// coachID is the guarded caller's id; a coach profile shares its account id.
func coachID(c *gin.Context) string {
	user, _ := middleware.UserFrom(c)
	return user.ID
}

// ======================================================
// EVENTS
// ======================================================

func (h *CoachHandler) ListEvents(c *gin.Context) {
	overview, err := h.listEvents.Execute(c.Request.Context(), coachID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, overview)
}

func (h *CoachHandler) GetEvent(c *gin.Context) {
	ev, err := h.getEvent.Execute(c.Request.Context(), coachID(c), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ev)
}

func (h *CoachHandler) CreateEvent(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ev, err := h.createEvent.Execute(c.Request.Context(), eventInput(coachID(c), req))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, ev)
}

func (h *CoachHandler) UpdateEvent(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ev, err := h.updateEvent.Execute(c.Request.Context(), c.Param("eventId"), eventInput(coachID(c), req))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ev)
}

func (h *CoachHandler) DeleteEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	if err := h.deleteEvent.Execute(c.Request.Context(), coachID(c), eventID); err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"deleted": eventID})
}

func eventInput(coachID string, req dto.EventRequest) ucCoach.EventInput {
	return ucCoach.EventInput{
		CoachID:     coachID,
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
	}
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *CoachHandler) ListBookings(c *gin.Context) {
	groups, err := h.listBookings.Execute(c.Request.Context(), coachID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, groups)
}

func (h *CoachHandler) DecideBooking(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "invalid_index", "Booking index must be a number.")
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	ev, err := h.decideOne.Execute(c.Request.Context(), coachID(c), c.Param("eventId"), index, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ev)
}

func (h *CoachHandler) DecideAllBookings(c *gin.Context) {
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	ev, err := h.decideAll.Execute(c.Request.Context(), coachID(c), c.Param("eventId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ev)
}
