package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookingInput struct {
	CoachID string
	EventID string

	CallerID    string
	CallerEmail string

	Message string
}

func (in BookingInput) validate() error {
	if strings.TrimSpace(in.CoachID) == "" || strings.TrimSpace(in.EventID) == "" {
		return httperr.ErrBusiness("selection_required")
	}
	return nil
}

// ======================================================
// REQUEST
// ======================================================

type RequestBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRequestBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RequestBooking {
	return &RequestBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute appends a pending booking for the caller. The booking email is
// always the caller's own.
func (uc *RequestBooking) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Event, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetCoach(ctx, in.CoachID); err != nil {
		return nil, err
	}

	b := domain.NewRequest(in.CallerEmail, in.Message)

	ev, err := uc.repo.UnionBooking(ctx, in.CoachID, in.EventID, b)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  in.CoachID,
		ActorID:  in.CallerID,
		Action:   "booking_requested",
		Entity:   "event",
		EntityID: in.EventID,
		Metadata: map[string]any{"client_email": in.CallerEmail},
	})

	redacted := RedactEvent(*ev, in.CallerEmail)
	return &redacted, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the caller's booking and leaves every other booking as
// stored.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Event, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	ev, err := uc.repo.GetEvent(ctx, in.CoachID, in.EventID)
	if err != nil {
		return nil, err
	}

	mine, ok := domain.FindByEmail(ev.Bookings, in.CallerEmail)
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	saved, err := uc.repo.RemoveBooking(ctx, in.CoachID, in.EventID, mine)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  in.CoachID,
		ActorID:  in.CallerID,
		Action:   "booking_cancelled",
		Entity:   "event",
		EntityID: in.EventID,
		Metadata: map[string]any{"client_email": in.CallerEmail},
	})

	redacted := RedactEvent(*saved, in.CallerEmail)
	return &redacted, nil
}
