package booking

import (
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending  Status = models.BookingPending
	StatusAccepted Status = models.BookingAccepted
	StatusDeclined Status = models.BookingDeclined
)

func InitialStatus() Status {
	return StatusPending
}

// ParseDecision accepts the two statuses a coach may set.
func ParseDecision(raw string) (Status, error) {
	switch Status(raw) {
	case StatusAccepted, StatusDeclined:
		return Status(raw), nil
	default:
		return "", httperr.ErrBusiness("invalid_status")
	}
}
