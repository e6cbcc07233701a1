package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

func TestNewRequest_IsPendingForCaller(t *testing.T) {
	b := NewRequest("anna@example.com", "  first time ")

	assert.Equal(t, "anna@example.com", b.ClientEmail)
	assert.Equal(t, "", b.ClientName)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "first time", b.Message)
}

func TestUnion_KeepsIdenticalElementsUnique(t *testing.T) {
	first := NewRequest("anna@example.com", "hi")

	list, added := Union(nil, first)
	require.True(t, added)

	list, added = Union(list, first)
	assert.False(t, added)
	assert.Len(t, list, 1)

	list, added = Union(list, NewRequest("anna@example.com", "again"))
	assert.True(t, added)
	assert.Len(t, list, 2)
}

func TestRemove_OnlyExactElement(t *testing.T) {
	anna := NewRequest("anna@example.com", "")
	bob := NewRequest("bob@example.com", "")

	list, removed := Remove([]models.Booking{anna, bob}, anna)

	assert.True(t, removed)
	assert.Equal(t, []models.Booking{bob}, list)

	_, removed = Remove(list, anna)
	assert.False(t, removed)
}

func TestFindByEmail_CaseInsensitive(t *testing.T) {
	list := []models.Booking{NewRequest("Anna@Example.com", "")}

	b, ok := FindByEmail(list, "anna@example.com")
	assert.True(t, ok)
	assert.Equal(t, "Anna@Example.com", b.ClientEmail)

	_, ok = FindByEmail(list, "bob@example.com")
	assert.False(t, ok)
}

func TestDecide(t *testing.T) {
	list := []models.Booking{NewRequest("a@x.io", ""), NewRequest("b@x.io", "")}

	require.NoError(t, Decide(list, 1, StatusAccepted))
	assert.Equal(t, models.BookingPending, list[0].Status)
	assert.Equal(t, models.BookingAccepted, list[1].Status)

	err := Decide(list, 2, StatusAccepted)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestDecideAll_ThenAccepted(t *testing.T) {
	list := []models.Booking{NewRequest("a@x.io", ""), NewRequest("b@x.io", "")}

	DecideAll(list, StatusAccepted)
	assert.Len(t, Accepted(list), 2)

	DecideAll(list, StatusDeclined)
	assert.Empty(t, Accepted(list))
}

func TestParseDecision(t *testing.T) {
	s, err := ParseDecision("accepted")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, s)

	_, err = ParseDecision("pending")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestOnlyFor(t *testing.T) {
	list := []models.Booking{NewRequest("a@x.io", ""), NewRequest("b@x.io", "")}

	own := OnlyFor(list, "b@x.io")
	assert.Len(t, own, 1)
	assert.Equal(t, "b@x.io", own[0].ClientEmail)

	assert.Empty(t, OnlyFor(list, "c@x.io"))
}

func TestCalendarEntries_EndDefaultsToStart(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	entries := CalendarEntries([]models.Event{
		{ID: "e1", Title: "Yoga", Start: start, End: &end},
		{ID: "e2", Title: "Run", Start: start},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "e1-0", entries[0].ID)
	assert.Equal(t, end, entries[0].End)
	assert.Equal(t, "e2-1", entries[1].ID)
	assert.Equal(t, start, entries[1].End)
	assert.NotNil(t, entries[1].Bookings)
}

func TestGroupByEvent(t *testing.T) {
	events := []models.Event{
		{ID: "e1", Title: "Yoga", Bookings: []models.Booking{NewRequest("a@x.io", ""), NewRequest("b@x.io", "")}},
		{ID: "e2", Title: "Empty"},
		{ID: "e3", Title: "Run", Bookings: []models.Booking{NewRequest("c@x.io", "")}},
	}

	groups := GroupByEvent(events)

	require.Len(t, groups, 2)
	assert.Equal(t, "e1", groups[0].EventID)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 1, groups[0].Bookings[1].Index)
	assert.Equal(t, "b@x.io", groups[0].Bookings[1].ClientEmail)
	assert.Equal(t, "e3", groups[1].EventID)
}
