package notify

import (
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/timezone"
)

type Enqueuer interface {
	Enqueue(msg Message)
}

// Notifier turns booking transitions into email messages.
type Notifier struct {
	queue    Enqueuer
	timezone string
}

func NewNotifier(queue Enqueuer, tz string) *Notifier {
	return &Notifier{queue: queue, timezone: tz}
}

// BookingAccepted tells one client the new status of their booking.
func (n *Notifier) BookingAccepted(b models.Booking, ev models.Event) {
	n.queue.Enqueue(Message{
		Template: TemplateBookingAccepted,
		Params:   n.params(b, ev),
	})
}

// EventUpdated mails every accepted booking in bookings and returns how
// many messages were queued.
func (n *Notifier) EventUpdated(bookings []models.Booking, ev models.Event) int {
	sent := 0
	for _, b := range bookings {
		if b.Status != models.BookingAccepted {
			continue
		}
		n.queue.Enqueue(Message{
			Template: TemplateEventUpdated,
			Params:   n.params(b, ev),
		})
		sent++
	}
	return sent
}

func (n *Notifier) params(b models.Booking, ev models.Event) Params {
	start := ev.Start
	return Params{
		ToEmail:          b.ClientEmail,
		EventTitle:       ev.Title,
		EventDescription: ev.Description,
		EventTime:        timezone.FormatEmail(&start, n.timezone),
		EventEnd:         timezone.FormatEmail(ev.End, n.timezone),
		Status:           b.Status,
	}
}
