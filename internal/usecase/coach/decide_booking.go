package coach

import (
	"context"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// ======================================================
// ONE BOOKING
// ======================================================

type DecideBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewDecideBooking(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
) *DecideBooking {
	return &DecideBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute sets the status of the booking at index and writes the whole
// array back. An accept mails that one client.
func (uc *DecideBooking) Execute(
	ctx context.Context,
	coachID string,
	eventID string,
	index int,
	rawStatus string,
) (*models.Event, error) {

	status, err := domain.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}

	ev, err := uc.repo.GetEvent(ctx, coachID, eventID)
	if err != nil {
		return nil, err
	}

	updated := ev.BookingsCopy()
	if err := domain.Decide(updated, index, status); err != nil {
		return nil, err
	}

	saved, err := uc.repo.ReplaceBookings(ctx, coachID, eventID, updated)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusAccepted {
		uc.notifier.BookingAccepted(updated[index], *ev)
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		ActorID:  coachID,
		Action:   "booking_" + string(status),
		Entity:   "event",
		EntityID: eventID,
		Metadata: map[string]any{
			"index":        index,
			"client_email": updated[index].ClientEmail,
		},
	})

	return saved, nil
}

// ======================================================
// ALL BOOKINGS
// ======================================================

type DecideAllBookings struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewDecideAllBookings(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
) *DecideAllBookings {
	return &DecideAllBookings{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute sets every booking to status. Accepting all sends the event
// updated email to each accepted booking.
func (uc *DecideAllBookings) Execute(
	ctx context.Context,
	coachID string,
	eventID string,
	rawStatus string,
) (*models.Event, error) {

	status, err := domain.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}

	ev, err := uc.repo.GetEvent(ctx, coachID, eventID)
	if err != nil {
		return nil, err
	}

	updated := ev.BookingsCopy()
	domain.DecideAll(updated, status)

	saved, err := uc.repo.ReplaceBookings(ctx, coachID, eventID, updated)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusAccepted {
		uc.notifier.EventUpdated(updated, *ev)
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachID,
		ActorID:  coachID,
		Action:   "bookings_" + string(status),
		Entity:   "event",
		EntityID: eventID,
		Metadata: map[string]any{"count": len(updated)},
	})

	return saved, nil
}
