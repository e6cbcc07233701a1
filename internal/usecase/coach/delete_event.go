package coach

import (
	"context"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
)

type DeleteEvent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteEvent(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteEvent {
	return &DeleteEvent{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the event and its bookings. No one is notified.
func (uc *DeleteEvent) Execute(
	ctx context.Context,
	coachID string,
	eventID string,
) error {

	if err := uc.repo.DeleteEvent(ctx, coachID, eventID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		ActorID:  coachID,
		Action:   "event_deleted",
		Entity:   "event",
		EntityID: eventID,
	})

	return nil
}
