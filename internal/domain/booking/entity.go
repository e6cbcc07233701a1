package booking

import (
	"strings"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewRequest builds the booking a client appends. The email always comes
// from the caller's session.
func NewRequest(callerEmail, message string) models.Booking {
	return models.Booking{
		ClientEmail: callerEmail,
		ClientName:  "",
		Status:      string(InitialStatus()),
		Message:     strings.TrimSpace(message),
	}
}

// Union appends b unless an identical element is already present.
func Union(bookings []models.Booking, b models.Booking) ([]models.Booking, bool) {
	for _, existing := range bookings {
		if existing == b {
			return bookings, false
		}
	}
	return append(bookings, b), true
}

// Remove drops every element identical to b.
func Remove(bookings []models.Booking, b models.Booking) ([]models.Booking, bool) {
	out := make([]models.Booking, 0, len(bookings))
	removed := false
	for _, existing := range bookings {
		if existing == b {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out, removed
}

// FindByEmail returns the first booking made by email.
func FindByEmail(bookings []models.Booking, email string) (models.Booking, bool) {
	for _, b := range bookings {
		if strings.EqualFold(b.ClientEmail, email) {
			return b, true
		}
	}
	return models.Booking{}, false
}

// OnlyFor keeps the bookings made by email.
func OnlyFor(bookings []models.Booking, email string) []models.Booking {
	out := []models.Booking{}
	for _, b := range bookings {
		if strings.EqualFold(b.ClientEmail, email) {
			out = append(out, b)
		}
	}
	return out
}

// Decide sets the status of the booking at index.
func Decide(bookings []models.Booking, index int, status Status) error {
	if index < 0 || index >= len(bookings) {
		return httperr.ErrBusiness("booking_not_found")
	}
	bookings[index].Status = string(status)
	return nil
}

func DecideAll(bookings []models.Booking, status Status) {
	for i := range bookings {
		bookings[i].Status = string(status)
	}
}

func Accepted(bookings []models.Booking) []models.Booking {
	out := []models.Booking{}
	for _, b := range bookings {
		if b.Status == string(StatusAccepted) {
			out = append(out, b)
		}
	}
	return out
}
