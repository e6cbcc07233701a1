package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domainBooking "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

func seedEvent(t *testing.T, s *Store, coachID, eventID string) {
	t.Helper()
	require.NoError(t, s.CreateEvent(context.Background(), &models.Event{
		ID:      eventID,
		CoachID: coachID,
		Title:   "Yoga",
		Start:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}))
}

func TestStore_CreateAccountRejectsDuplicateEmail(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	cred := &models.Credential{UserID: "u1", Email: "a@x.io"}
	require.NoError(t, s.CreateAccount(ctx, cred, &models.User{ID: "u1"}, nil))

	err := s.CreateAccount(ctx, &models.Credential{UserID: "u2", Email: "a@x.io"}, &models.User{ID: "u2"}, nil)
	assert.True(t, httperr.IsUniqueViolation(err))

	_, err = s.GetUser(ctx, "u2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_BookingArrayOps(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	seedEvent(t, s, "c1", "e1")

	anna := domainBooking.NewRequest("anna@x.io", "hi")
	bob := domainBooking.NewRequest("bob@x.io", "")

	_, err := s.UnionBooking(ctx, "c1", "e1", anna)
	require.NoError(t, err)
	_, err = s.UnionBooking(ctx, "c1", "e1", anna)
	require.NoError(t, err)
	ev, err := s.UnionBooking(ctx, "c1", "e1", bob)
	require.NoError(t, err)
	assert.Len(t, ev.Bookings, 2)

	ev, err = s.RemoveBooking(ctx, "c1", "e1", anna)
	require.NoError(t, err)
	require.Len(t, ev.Bookings, 1)
	assert.Equal(t, "bob@x.io", ev.Bookings[0].ClientEmail)

	_, err = s.UnionBooking(ctx, "c2", "e1", anna)
	assert.ErrorIs(t, err, domainBooking.ErrEventNotFound)
}

func TestStore_ReturnedEventsAreDetached(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	seedEvent(t, s, "c1", "e1")

	_, err := s.UnionBooking(ctx, "c1", "e1", domainBooking.NewRequest("a@x.io", ""))
	require.NoError(t, err)

	ev, err := s.GetEvent(ctx, "c1", "e1")
	require.NoError(t, err)
	ev.Bookings[0].Status = models.BookingAccepted

	again, err := s.GetEvent(ctx, "c1", "e1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, again.Bookings[0].Status)
}

func TestStore_WritesPublishChanges(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	s := New(broker)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, realtime.EventsTopic("c1"))
	require.NoError(t, err)
	defer sub.Close()

	seedEvent(t, s, "c1", "e1")

	select {
	case payload := <-sub.C():
		assert.JSONEq(t, `{"kind":"created","id":"e1"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("no change published")
	}
}

func TestStore_DeleteEventsForCoach(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	seedEvent(t, s, "c1", "e1")
	seedEvent(t, s, "c1", "e2")
	seedEvent(t, s, "c2", "e3")

	n, err := s.DeleteEventsForCoach(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := s.ListAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "e3", all[0].ID)
}
