package coach

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type EventInput struct {
	CoachID string

	Title       string
	Description string
	Start       string
	End         string
}

// parse applies the form rules: title and start are required, end is
// optional and taken as entered.
func (in EventInput) parse(tz string) (title string, start time.Time, end *time.Time, err error) {
	title = strings.TrimSpace(in.Title)
	if title == "" {
		return "", time.Time{}, nil, httperr.ErrBusiness("title_required")
	}

	start, ok := timezone.Parse(in.Start, tz)
	if !ok {
		return "", time.Time{}, nil, httperr.ErrBusiness("invalid_start")
	}

	if strings.TrimSpace(in.End) != "" {
		e, ok := timezone.Parse(in.End, tz)
		if !ok {
			return "", time.Time{}, nil, httperr.ErrBusiness("invalid_end")
		}
		end = &e
	}

	return title, start, end, nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateEvent struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewCreateEvent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateEvent {
	return &CreateEvent{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *CreateEvent) Execute(
	ctx context.Context,
	in EventInput,
) (*models.Event, error) {

	title, start, end, err := in.parse(uc.timezone)
	if err != nil {
		return nil, err
	}

	ev := &models.Event{
		ID:          uuid.NewString(),
		CoachID:     in.CoachID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Start:       start,
		End:         end,
		Bookings:    []models.Booking{},
	}

	if err := uc.repo.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CoachID:  in.CoachID,
		ActorID:  in.CoachID,
		Action:   "event_created",
		Entity:   "event",
		EntityID: ev.ID,
	})

	return ev, nil
}
