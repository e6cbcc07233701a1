package client

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// ======================================================
// CORPUS
// ======================================================

type LoadCorpus struct {
	repo domain.Repository
}

func NewLoadCorpus(repo domain.Repository) *LoadCorpus {
	return &LoadCorpus{repo: repo}
}

// Execute loads every coach and event. The result is not redacted.
func (uc *LoadCorpus) Execute(ctx context.Context) (*Corpus, error) {
	coaches, err := uc.repo.ListCoaches(ctx)
	if err != nil {
		return nil, err
	}
	events, err := uc.repo.ListAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	return NewCorpus(coaches, events), nil
}

// ======================================================
// SELECT COACH
// ======================================================

type CoachEvents struct {
	Coach    models.Coach           `json:"coach"`
	Events   []models.Event         `json:"events"`
	Calendar []domain.CalendarEntry `json:"calendar"`
}

type SelectCoach struct {
	repo domain.Repository
}

func NewSelectCoach(repo domain.Repository) *SelectCoach {
	return &SelectCoach{repo: repo}
}

func (uc *SelectCoach) Execute(ctx context.Context, coachID, callerEmail string) (*CoachEvents, error) {
	coach, err := uc.repo.GetCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	events, err := uc.repo.ListEvents(ctx, coachID)
	if err != nil {
		return nil, err
	}
	events = RedactEvents(events, callerEmail)

	return &CoachEvents{
		Coach:    *coach,
		Events:   events,
		Calendar: domain.CalendarEntries(events),
	}, nil
}

// ======================================================
// JUMP TO EVENT
// ======================================================

// Location tells the calendar which coach to select and which date to show.
type Location struct {
	Coach models.Coach `json:"coach"`
	Event models.Event `json:"event"`
	Date  string       `json:"date"`
	View  string       `json:"view"`
}

type LocateEvent struct {
	repo domain.Repository
}

func NewLocateEvent(repo domain.Repository) *LocateEvent {
	return &LocateEvent{repo: repo}
}

func (uc *LocateEvent) Execute(ctx context.Context, eventID, callerEmail string) (*Location, error) {
	ev, err := uc.repo.FindEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	coach, err := uc.repo.GetCoach(ctx, ev.CoachID)
	if err != nil {
		return nil, err
	}

	return Locate(*coach, *ev, callerEmail), nil
}

func Locate(coach models.Coach, ev models.Event, callerEmail string) *Location {
	return &Location{
		Coach: coach,
		Event: RedactEvent(ev, callerEmail),
		Date:  ev.Start.Format(time.DateOnly),
		View:  "dayGridMonth",
	}
}
