package coach

import "github.com/BruksfildServices01/coach-calendar/internal/models"

// Notifier queues the emails triggered by coach actions.
type Notifier interface {
	BookingAccepted(b models.Booking, ev models.Event)
	EventUpdated(bookings []models.Booking, ev models.Event) int
}
