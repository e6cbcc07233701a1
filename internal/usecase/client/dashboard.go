package client

import (
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// View is everything the client dashboard renders at one moment.
type View struct {
	Term     string       `json:"term"`
	Results  []Result     `json:"results"`
	Selected *CoachEvents `json:"selected"`
	Bookings []MyBooking  `json:"bookings"`
}

// Dashboard holds one client's live view state over an unredacted corpus.
// Every output is redacted for the caller. It is owned by one goroutine.
type Dashboard struct {
	corpus   *Corpus
	email    string
	term     string
	selected string
}

func NewDashboard(corpus *Corpus, callerEmail string) *Dashboard {
	return &Dashboard{corpus: corpus, email: callerEmail}
}

func (d *Dashboard) Corpus() *Corpus {
	return d.corpus
}

func (d *Dashboard) Search(term string) {
	d.term = term
}

// Select narrows the calendar to coachID. An empty id clears the selection.
func (d *Dashboard) Select(coachID string) error {
	if coachID == "" {
		d.selected = ""
		return nil
	}
	if _, ok := d.coach(coachID); !ok {
		return domain.ErrCoachNotFound
	}
	d.selected = coachID
	return nil
}

// Jump selects the coach owning eventID and returns where the calendar
// should go.
func (d *Dashboard) Jump(eventID string) (*Location, error) {
	coach, ev, ok := d.corpus.OwnerOf(eventID)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	d.selected = coach.ID
	return Locate(coach, ev, d.email), nil
}

func (d *Dashboard) View() View {
	redacted := d.corpus.RedactedFor(d.email)

	v := View{
		Term:     d.term,
		Results:  redacted.Search(d.term),
		Bookings: d.corpus.BookingsOf(d.email),
	}

	if coach, ok := d.coach(d.selected); ok {
		events := redacted.EventsFor(coach.ID)
		v.Selected = &CoachEvents{
			Coach:    coach,
			Events:   events,
			Calendar: domain.CalendarEntries(events),
		}
	}
	return v
}

func (d *Dashboard) coach(id string) (models.Coach, bool) {
	if id == "" {
		return models.Coach{}, false
	}
	for _, co := range d.corpus.Coaches() {
		if co.ID == id {
			return co, true
		}
	}
	return models.Coach{}, false
}
