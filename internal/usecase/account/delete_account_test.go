package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/account"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/infra/memory"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

type nopWriter struct{}

func (nopWriter) Log(context.Context, audit.Event) error { return nil }

type stubVerifier struct {
	password string
	calls    int
}

func (s *stubVerifier) VerifyPassword(_ context.Context, _ string, password string) error {
	s.calls++
	if password != s.password {
		return identity.ErrWrongPassword
	}
	return nil
}

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func claimsAt(uid string, authTime time.Time) *identity.Claims {
	return &identity.Claims{
		SID:              "s1",
		AuthTime:         authTime.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: uid},
	}
}

type fixture struct {
	store    *memory.Store
	broker   *realtime.MemoryBroker
	verifier *stubVerifier
	uc       *DeleteAccount
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	broker := realtime.NewMemoryBroker()
	store := memory.New(broker)

	require.NoError(t, store.CreateAccount(ctx,
		&models.Credential{UserID: "coach-1", Email: "maja@x.io"},
		&models.User{ID: "coach-1", Role: models.RoleCoach},
		&models.Coach{ID: "coach-1", Name: "Maja Berg"},
	))
	for _, id := range []string{"e1", "e2"} {
		require.NoError(t, store.CreateEvent(ctx, &models.Event{ID: id, CoachID: "coach-1", Title: "Yoga", Start: now}))
	}

	d := audit.NewDispatcher(nopWriter{}, 10)
	t.Cleanup(d.Close)

	verifier := &stubVerifier{password: "secret123"}
	uc := NewDeleteAccount(store, verifier, broker, d, 5*time.Minute)
	uc.now = func() time.Time { return now }

	return &fixture{store: store, broker: broker, verifier: verifier, uc: uc}
}

func (f *fixture) assertGone(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	events, err := f.store.ListAllEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	coaches, err := f.store.ListCoaches(ctx)
	require.NoError(t, err)
	assert.Empty(t, coaches)

	_, err = f.store.GetUser(ctx, "coach-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = f.store.GetCredential(ctx, "coach-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteAccount_RecentSessionRunsCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.broker.Subscribe(ctx, realtime.SessionTopic("coach-1"))
	require.NoError(t, err)
	defer sub.Close()

	res, err := f.uc.Execute(ctx, DeleteAccountInput{
		Claims:  claimsAt("coach-1", now.Add(-time.Minute)),
		Confirm: "DELETE",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, res.State)
	assert.Equal(t, int64(2), res.EventsDeleted)
	assert.Zero(t, f.verifier.calls)
	f.assertGone(t)

	select {
	case payload := <-sub.C():
		assert.True(t, realtime.EndsSession(payload, "any"))
	case <-time.After(time.Second):
		t.Fatal("no session change published")
	}
}

func TestDeleteAccount_RequiresConfirmation(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), DeleteAccountInput{
		Claims:  claimsAt("coach-1", now),
		Confirm: "delete",
	})
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Equal(t, domain.StateIdle, res.State)

	_, err = f.store.GetUser(context.Background(), "coach-1")
	assert.NoError(t, err)
}

func TestDeleteAccount_StaleSessionNeedsReauth(t *testing.T) {
	f := newFixture(t)
	stale := claimsAt("coach-1", now.Add(-time.Hour))

	res, err := f.uc.Execute(context.Background(), DeleteAccountInput{Claims: stale, Confirm: "DELETE"})
	assert.ErrorIs(t, err, identity.ErrRequiresRecentLogin)
	assert.Equal(t, domain.StateReauthRequired, res.State)

	res, err = f.uc.Execute(context.Background(), DeleteAccountInput{Claims: stale, Confirm: "DELETE", Password: "bad"})
	assert.True(t, errors.Is(err, identity.ErrWrongPassword))
	assert.Equal(t, domain.StateReauthRequired, res.State)

	_, err = f.store.GetUser(context.Background(), "coach-1")
	require.NoError(t, err)

	res, err = f.uc.Execute(context.Background(), DeleteAccountInput{Claims: stale, Confirm: "DELETE", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, res.State)
	f.assertGone(t)
}

func TestDeleteAccount_ClientHasNoCoachSteps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateAccount(ctx,
		&models.Credential{UserID: "client-1", Email: "anna@x.io"},
		&models.User{ID: "client-1", Role: models.RoleClient},
		nil,
	))

	res, err := f.uc.Execute(ctx, DeleteAccountInput{Claims: claimsAt("client-1", now), Confirm: "DELETE"})
	require.NoError(t, err)
	assert.Zero(t, res.EventsDeleted)

	events, err := f.store.ListAllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
