package coach

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type UpdateEvent struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	timezone string
}

func NewUpdateEvent(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	tz string,
) *UpdateEvent {
	return &UpdateEvent{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		timezone: tz,
	}
}

// Execute rewrites the event fields. When the event already had bookings,
// accepted clients are told about the change after the write.
func (uc *UpdateEvent) Execute(
	ctx context.Context,
	eventID string,
	in EventInput,
) (*models.Event, error) {

	title, start, end, err := in.parse(uc.timezone)
	if err != nil {
		return nil, err
	}

	prev, err := uc.repo.GetEvent(ctx, in.CoachID, eventID)
	if err != nil {
		return nil, err
	}
	prevBookings := prev.BookingsCopy()

	ev := *prev
	ev.Title = title
	ev.Description = strings.TrimSpace(in.Description)
	ev.Start = start
	ev.End = end

	if err := uc.repo.UpdateEventFields(ctx, &ev); err != nil {
		return nil, err
	}

	notified := 0
	if len(prevBookings) > 0 {
		notified = uc.notifier.EventUpdated(prevBookings, ev)
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  in.CoachID,
		ActorID:  in.CoachID,
		Action:   "event_updated",
		Entity:   "event",
		EntityID: eventID,
		Metadata: map[string]any{"notified": notified},
	})

	return &ev, nil
}
