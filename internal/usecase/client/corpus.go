package client

import (
	"strings"

	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// Result is one search hit. Event is nil when the coach matched by name
// alone or has no events.
type Result struct {
	Coach models.Coach  `json:"coach"`
	Event *models.Event `json:"event"`
}

// MyBooking is an event holding the caller's booking, labelled with the
// coach's display name.
type MyBooking struct {
	CoachID   string         `json:"coachId"`
	CoachName string         `json:"coachName"`
	Event     models.Event   `json:"event"`
	Booking   models.Booking `json:"booking"`
}

// Corpus is the client's whole view: every coach and each coach's events.
// It is owned by one goroutine.
type Corpus struct {
	coaches []models.Coach
	events  map[string][]models.Event
}

func NewCorpus(coaches []models.Coach, events []models.Event) *Corpus {
	c := &Corpus{events: make(map[string][]models.Event)}
	c.SetCoaches(coaches)
	for _, ev := range events {
		c.events[ev.CoachID] = append(c.events[ev.CoachID], ev)
	}
	return c
}

func (c *Corpus) Coaches() []models.Coach {
	return c.coaches
}

// SetCoaches replaces the coach list and forgets events of removed coaches.
func (c *Corpus) SetCoaches(coaches []models.Coach) {
	c.coaches = coaches

	keep := make(map[string]struct{}, len(coaches))
	for _, co := range coaches {
		keep[co.ID] = struct{}{}
	}
	for id := range c.events {
		if _, ok := keep[id]; !ok {
			delete(c.events, id)
		}
	}
}

// SetEvents replaces one coach's events; the last update per coach wins.
func (c *Corpus) SetEvents(coachID string, events []models.Event) {
	c.events[coachID] = events
}

func (c *Corpus) EventsFor(coachID string) []models.Event {
	if evs := c.events[coachID]; evs != nil {
		return evs
	}
	return []models.Event{}
}

// Search matches term case-insensitively against coach name, company name
// and event titles. An empty term lists every coach/event pair.
func (c *Corpus) Search(term string) []Result {
	term = strings.ToLower(strings.TrimSpace(term))
	results := []Result{}

	for _, co := range c.coaches {
		nameMatch := strings.Contains(strings.ToLower(co.Name), term) ||
			strings.Contains(strings.ToLower(co.CompanyName), term)

		var matching []models.Event
		for _, ev := range c.events[co.ID] {
			if strings.Contains(strings.ToLower(ev.Title), term) {
				matching = append(matching, ev)
			}
		}

		switch {
		case len(matching) > 0:
			for i := range matching {
				results = append(results, Result{Coach: co, Event: &matching[i]})
			}
		case nameMatch:
			results = append(results, Result{Coach: co})
		}
	}
	return results
}

// OwnerOf finds the coach whose events contain eventID.
func (c *Corpus) OwnerOf(eventID string) (models.Coach, models.Event, bool) {
	for _, co := range c.coaches {
		for _, ev := range c.events[co.ID] {
			if ev.ID == eventID {
				return co, ev, true
			}
		}
	}
	return models.Coach{}, models.Event{}, false
}

func (c *Corpus) BookingsOf(email string) []MyBooking {
	out := []MyBooking{}
	for _, co := range c.coaches {
		for _, ev := range c.events[co.ID] {
			b, ok := domain.FindByEmail(ev.Bookings, email)
			if !ok {
				continue
			}
			out = append(out, MyBooking{
				CoachID:   co.ID,
				CoachName: co.DisplayName(),
				Event:     RedactEvent(ev, email),
				Booking:   b,
			})
		}
	}
	return out
}

// RedactedFor returns a copy in which every event lists only email's own
// bookings.
func (c *Corpus) RedactedFor(email string) *Corpus {
	out := &Corpus{
		coaches: c.coaches,
		events:  make(map[string][]models.Event, len(c.events)),
	}
	for id, evs := range c.events {
		out.events[id] = RedactEvents(evs, email)
	}
	return out
}

func RedactEvent(ev models.Event, email string) models.Event {
	ev.Bookings = domain.OnlyFor(ev.Bookings, email)
	return ev
}

func RedactEvents(evs []models.Event, email string) []models.Event {
	out := make([]models.Event, len(evs))
	for i, ev := range evs {
		out[i] = RedactEvent(ev, email)
	}
	return out
}
