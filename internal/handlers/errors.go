package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
)

var businessStatus = map[string]int{
	"event_not_found":   http.StatusNotFound,
	"coach_not_found":   http.StatusNotFound,
	"booking_not_found": http.StatusNotFound,

	"title_required":        http.StatusBadRequest,
	"invalid_start":         http.StatusBadRequest,
	"invalid_end":           http.StatusBadRequest,
	"invalid_status":        http.StatusBadRequest,
	"selection_required":    http.StatusBadRequest,
	"confirmation_required": http.StatusBadRequest,
	"invalid_state":         http.StatusConflict,

	identity.CodeUserNotFound:        http.StatusUnauthorized,
	identity.CodeWrongPassword:       http.StatusUnauthorized,
	identity.CodeEmailAlreadyInUse:   http.StatusConflict,
	identity.CodeWeakPassword:        http.StatusBadRequest,
	identity.CodeInvalidEmail:        http.StatusBadRequest,
	identity.CodeInvalidRole:         http.StatusBadRequest,
	identity.CodeRequiresRecentLogin: http.StatusUnauthorized,
}

var businessMessage = map[string]string{
	"event_not_found":       "Event not found.",
	"coach_not_found":       "Coach not found.",
	"booking_not_found":     "Booking not found.",
	"title_required":        "Title is required.",
	"invalid_start":         "Start date is invalid.",
	"invalid_end":           "End date is invalid.",
	"invalid_status":        "Status must be accepted or declined.",
	"selection_required":    "Please select a coach and an event to book.",
	"confirmation_required": `Type "DELETE" to confirm.`,
	"invalid_state":         "This action is not available right now.",
}

// respondError writes a business failure with its mapped status and logs
// anything else as an internal error.
func respondError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
		)
		httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
		return
	}

	status, msg := businessReply(code)
	httperr.Write(c, status, code, msg)
}

func businessReply(code string) (int, string) {
	status, ok := businessStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg, ok := businessMessage[code]
	if !ok {
		msg = identity.Message(code)
	}
	return status, msg
}
