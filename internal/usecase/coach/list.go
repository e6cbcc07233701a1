package coach

import (
	"context"

	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type Overview struct {
	Events   []models.Event         `json:"events"`
	Calendar []domain.CalendarEntry `json:"calendar"`
}

type ListEvents struct {
	repo domain.Repository
}

func NewListEvents(repo domain.Repository) *ListEvents {
	return &ListEvents{repo: repo}
}

func (uc *ListEvents) Execute(ctx context.Context, coachID string) (*Overview, error) {
	events, err := uc.repo.ListEvents(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}

	return &Overview{
		Events:   events,
		Calendar: domain.CalendarEntries(events),
	}, nil
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns the coach's bookings grouped by event.
func (uc *ListBookings) Execute(ctx context.Context, coachID string) ([]domain.Group, error) {
	events, err := uc.repo.ListEvents(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return domain.GroupByEvent(events), nil
}

type GetEvent struct {
	repo domain.Repository
}

func NewGetEvent(repo domain.Repository) *GetEvent {
	return &GetEvent{repo: repo}
}

func (uc *GetEvent) Execute(ctx context.Context, coachID, eventID string) (*models.Event, error) {
	return uc.repo.GetEvent(ctx, coachID, eventID)
}
