package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/dto"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/httpresp"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	ucClient "github.com/BruksfildServices01/coach-calendar/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	loadCorpus     *ucClient.LoadCorpus
	selectCoach    *ucClient.SelectCoach
	locateEvent    *ucClient.LocateEvent
	requestBooking *ucClient.RequestBooking
	cancelBooking  *ucClient.CancelBooking
}

func NewClientHandler(
	loadCorpus *ucClient.LoadCorpus,
	selectCoach *ucClient.SelectCoach,
	locateEvent *ucClient.LocateEvent,
	requestBooking *ucClient.RequestBooking,
	cancelBooking *ucClient.CancelBooking,
) *ClientHandler {
	return &ClientHandler{
		loadCorpus:     loadCorpus,
		selectCoach:    selectCoach,
		locateEvent:    locateEvent,
		requestBooking: requestBooking,
		cancelBooking:  cancelBooking,
	}
}

func caller(c *gin.Context) *models.User {
	user, _ := middleware.UserFrom(c)
	return user
}

// ======================================================
// BROWSE
// ======================================================

func (h *ClientHandler) SearchCoaches(c *gin.Context) {
	corpus, err := h.loadCorpus.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	results := corpus.RedactedFor(caller(c).Email).Search(c.Query("q"))
	httpresp.List(c, results)
}

func (h *ClientHandler) CoachEvents(c *gin.Context) {
	view, err := h.selectCoach.Execute(c.Request.Context(), c.Param("coachId"), caller(c).Email)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ClientHandler) MyBookings(c *gin.Context) {
	corpus, err := h.loadCorpus.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, corpus.BookingsOf(caller(c).Email))
}

func (h *ClientHandler) LocateEvent(c *gin.Context) {
	loc, err := h.locateEvent.Execute(c.Request.Context(), c.Param("eventId"), caller(c).Email)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, loc)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *ClientHandler) RequestBooking(c *gin.Context) {
	var req dto.BookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}

	ev, err := h.requestBooking.Execute(c.Request.Context(), bookingInput(c, req.Message))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, ev)
}

func (h *ClientHandler) CancelBooking(c *gin.Context) {
	ev, err := h.cancelBooking.Execute(c.Request.Context(), bookingInput(c, ""))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ev)
}

func bookingInput(c *gin.Context, message string) ucClient.BookingInput {
	user := caller(c)
	return ucClient.BookingInput{
		CoachID:     c.Param("coachId"),
		EventID:     c.Param("eventId"),
		CallerID:    user.ID,
		CallerEmail: user.Email,
		Message:     message,
	}
}
