package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type CalendarEntry struct {
	ID          string           `json:"id"`
	EventID     string           `json:"eventId"`
	Title       string           `json:"title"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	Description string           `json:"description"`
	Bookings    []models.Booking `json:"bookings"`
}

// CalendarEntries maps events to calendar entries, ids suffixed with the
// event's position. A missing end falls back to start.
func CalendarEntries(events []models.Event) []CalendarEntry {
	out := make([]CalendarEntry, 0, len(events))
	for i, e := range events {
		end := e.Start
		if e.End != nil {
			end = *e.End
		}

		bookings := e.BookingsCopy()

		out = append(out, CalendarEntry{
			ID:          fmt.Sprintf("%s-%d", e.ID, i),
			EventID:     e.ID,
			Title:       e.Title,
			Start:       e.Start,
			End:         end,
			Description: e.Description,
			Bookings:    bookings,
		})
	}
	return out
}

type IndexedBooking struct {
	Index int `json:"index"`
	models.Booking
}

type Group struct {
	EventID    string           `json:"eventId"`
	EventTitle string           `json:"eventTitle"`
	Start      time.Time        `json:"start"`
	Count      int              `json:"count"`
	Bookings   []IndexedBooking `json:"bookings"`
}

// GroupByEvent groups bookings by their event in event order, then
// booking order. Events without bookings are omitted.
func GroupByEvent(events []models.Event) []Group {
	out := []Group{}
	for _, e := range events {
		if len(e.Bookings) == 0 {
			continue
		}

		g := Group{
			EventID:    e.ID,
			EventTitle: e.Title,
			Start:      e.Start,
		}
		for i, b := range e.Bookings {
			g.Bookings = append(g.Bookings, IndexedBooking{Index: i, Booking: b})
		}
		g.Count = len(g.Bookings)

		out = append(out, g)
	}
	return out
}
