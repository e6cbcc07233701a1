package booking

import (
	"context"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// Repository is the event store. Every write publishes a change signal for
// the mutated collection and document.
type Repository interface {
	// -------- Coach --------
	GetCoach(ctx context.Context, coachID string) (*models.Coach, error)
	ListCoaches(ctx context.Context) ([]models.Coach, error)

	// -------- Event --------
	ListEvents(ctx context.Context, coachID string) ([]models.Event, error)
	ListAllEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, coachID, eventID string) (*models.Event, error)
	FindEvent(ctx context.Context, eventID string) (*models.Event, error)

	CreateEvent(ctx context.Context, ev *models.Event) error
	UpdateEventFields(ctx context.Context, ev *models.Event) error
	DeleteEvent(ctx context.Context, coachID, eventID string) error

	// -------- Bookings --------
	ReplaceBookings(ctx context.Context, coachID, eventID string, bookings []models.Booking) (*models.Event, error)
	UnionBooking(ctx context.Context, coachID, eventID string, b models.Booking) (*models.Event, error)
	RemoveBooking(ctx context.Context, coachID, eventID string, b models.Booking) (*models.Event, error)
}

var (
	ErrEventNotFound = httperr.ErrBusiness("event_not_found")
	ErrCoachNotFound = httperr.ErrBusiness("coach_not_found")
)
