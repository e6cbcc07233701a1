package coach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/infra/memory"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type fakeNotifier struct {
	accepted []models.Booking
	updated  [][]models.Booking
}

func (f *fakeNotifier) BookingAccepted(b models.Booking, _ models.Event) {
	f.accepted = append(f.accepted, b)
}

func (f *fakeNotifier) EventUpdated(bookings []models.Booking, _ models.Event) int {
	f.updated = append(f.updated, bookings)
	return len(domain.Accepted(bookings))
}

type nopWriter struct{}

func (nopWriter) Log(context.Context, audit.Event) error { return nil }

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	audit    *audit.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d := audit.NewDispatcher(nopWriter{}, 10)
	t.Cleanup(d.Close)
	return &fixture{
		store:    memory.New(nil),
		notifier: &fakeNotifier{},
		audit:    d,
	}
}

func (f *fixture) createYoga(t *testing.T) *models.Event {
	t.Helper()
	ev, err := NewCreateEvent(f.store, f.audit, "UTC").Execute(context.Background(), EventInput{
		CoachID: "coach-1",
		Title:   "Yoga",
		Start:   "2026-03-02T10:00",
		End:     "2026-03-02T11:00",
	})
	require.NoError(t, err)
	return ev
}

func (f *fixture) book(t *testing.T, eventID string, emails ...string) {
	t.Helper()
	for _, e := range emails {
		_, err := f.store.UnionBooking(context.Background(), "coach-1", eventID, domain.NewRequest(e, ""))
		require.NoError(t, err)
	}
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, 10, ev.Start.Hour())
	require.NotNil(t, ev.End)
	assert.Equal(t, 11, ev.End.Hour())
	assert.Empty(t, ev.Bookings)
}

func TestCreateEvent_RequiresTitleAndStart(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateEvent(f.store, f.audit, "UTC")

	_, err := uc.Execute(context.Background(), EventInput{CoachID: "coach-1", Start: "2026-03-02T10:00"})
	assert.True(t, httperr.IsBusiness(err, "title_required"))

	_, err = uc.Execute(context.Background(), EventInput{CoachID: "coach-1", Title: "Yoga"})
	assert.True(t, httperr.IsBusiness(err, "invalid_start"))

	ev, err := uc.Execute(context.Background(), EventInput{CoachID: "coach-1", Title: "Yoga", Start: "2026-03-02T10:00"})
	require.NoError(t, err)
	assert.Nil(t, ev.End)
}

func TestUpdateEvent_NotifiesOnlyWhenBooked(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)
	uc := NewUpdateEvent(f.store, f.notifier, f.audit, "UTC")

	in := EventInput{CoachID: "coach-1", Title: "Yoga Flow", Start: "2026-03-02T12:00"}

	updated, err := uc.Execute(context.Background(), ev.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Yoga Flow", updated.Title)
	assert.Empty(t, f.notifier.updated)

	f.book(t, ev.ID, "a@x.io")
	_, err = uc.Execute(context.Background(), ev.ID, in)
	require.NoError(t, err)
	require.Len(t, f.notifier.updated, 1)
	assert.Len(t, f.notifier.updated[0], 1)

	stored, err := f.store.GetEvent(context.Background(), "coach-1", ev.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Bookings, 1)
}

func TestDeleteEvent_NeverNotifies(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)

	require.NoError(t, NewDeleteEvent(f.store, f.audit).Execute(context.Background(), "coach-1", ev.ID))

	assert.Empty(t, f.notifier.accepted)
	assert.Empty(t, f.notifier.updated)

	err := NewDeleteEvent(f.store, f.audit).Execute(context.Background(), "coach-1", ev.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestDecideBooking(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)
	f.book(t, ev.ID, "a@x.io", "b@x.io")
	uc := NewDecideBooking(f.store, f.notifier, f.audit)

	saved, err := uc.Execute(context.Background(), "coach-1", ev.ID, 1, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, saved.Bookings[0].Status)
	assert.Equal(t, models.BookingAccepted, saved.Bookings[1].Status)
	require.Len(t, f.notifier.accepted, 1)
	assert.Equal(t, "b@x.io", f.notifier.accepted[0].ClientEmail)

	_, err = uc.Execute(context.Background(), "coach-1", ev.ID, 0, "declined")
	require.NoError(t, err)
	assert.Len(t, f.notifier.accepted, 1)

	_, err = uc.Execute(context.Background(), "coach-1", ev.ID, 5, "accepted")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))

	_, err = uc.Execute(context.Background(), "coach-1", ev.ID, 0, "maybe")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestDecideAllBookings_AcceptNotifiesEveryAccepted(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)
	f.book(t, ev.ID, "a@x.io", "b@x.io", "c@x.io")
	uc := NewDecideAllBookings(f.store, f.notifier, f.audit)

	saved, err := uc.Execute(context.Background(), "coach-1", ev.ID, "accepted")
	require.NoError(t, err)
	for _, b := range saved.Bookings {
		assert.Equal(t, models.BookingAccepted, b.Status)
	}
	require.Len(t, f.notifier.updated, 1)
	assert.Len(t, domain.Accepted(f.notifier.updated[0]), 3)

	_, err = uc.Execute(context.Background(), "coach-1", ev.ID, "declined")
	require.NoError(t, err)
	assert.Len(t, f.notifier.updated, 1)
}

func TestListEventsAndBookings(t *testing.T) {
	f := newFixture(t)
	ev := f.createYoga(t)
	f.book(t, ev.ID, "a@x.io")

	overview, err := NewListEvents(f.store).Execute(context.Background(), "coach-1")
	require.NoError(t, err)
	require.Len(t, overview.Calendar, 1)
	assert.Equal(t, ev.ID+"-0", overview.Calendar[0].ID)

	groups, err := NewListBookings(f.store).Execute(context.Background(), "coach-1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)

	empty, err := NewListEvents(f.store).Execute(context.Background(), "coach-2")
	require.NoError(t, err)
	assert.NotNil(t, empty.Events)
}
