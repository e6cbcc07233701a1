package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/account"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

// PasswordVerifier re-checks the caller's password when the session is
// too old to delete the account.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, userID, password string) error
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type DeleteAccountInput struct {
	Claims *identity.Claims

	// Confirm must be the literal "DELETE".
	Confirm string

	// Password, when set, re-authenticates a stale session in place.
	Password string
}

type DeleteAccountResult struct {
	State         domain.State `json:"state"`
	EventsDeleted int64        `json:"eventsDeleted"`
}

// ======================================================
// USE CASE
// ======================================================

type DeleteAccount struct {
	repo     domain.Repository
	verifier PasswordVerifier
	broker   realtime.Broker
	audit    *audit.Dispatcher

	recentWindow time.Duration
	now          func() time.Time
}

func NewDeleteAccount(
	repo domain.Repository,
	verifier PasswordVerifier,
	broker realtime.Broker,
	audit *audit.Dispatcher,
	recentWindow time.Duration,
) *DeleteAccount {
	return &DeleteAccount{
		repo:         repo,
		verifier:     verifier,
		broker:       broker,
		audit:        audit,
		recentWindow: recentWindow,
		now:          time.Now,
	}
}

// Execute runs the cascade: events, coach profile, account, identity.
// Each step is its own write; a failure part way leaves the earlier steps
// applied and returns the state reached.
func (uc *DeleteAccount) Execute(
	ctx context.Context,
	in DeleteAccountInput,
) (*DeleteAccountResult, error) {

	d := domain.NewDeletion()
	res := &DeleteAccountResult{}

	if err := d.Confirm(in.Confirm); err != nil {
		res.State = d.State()
		return res, err
	}
	if err := d.Begin(); err != nil {
		res.State = d.State()
		return res, err
	}

	uid := in.Claims.UserID()

	if !in.Claims.RecentLogin(uc.now(), uc.recentWindow) {
		_ = d.RequireReauth()
		res.State = d.State()

		if in.Password == "" {
			return res, identity.ErrRequiresRecentLogin
		}
		if err := uc.verifier.VerifyPassword(ctx, uid, in.Password); err != nil {
			return res, err
		}
		_ = d.Reauthenticated()
	}

	res.State = d.State()

	user, err := uc.repo.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, identity.ErrUserNotFound
		}
		return res, err
	}

	// --------------------------------------------------
	// 1. Events and coach profile
	// --------------------------------------------------
	if user.Role == models.RoleCoach {
		n, err := uc.repo.DeleteEventsForCoach(ctx, uid)
		if err != nil {
			return res, fmt.Errorf("delete events: %w", err)
		}
		res.EventsDeleted = n

		if err := uc.repo.DeleteCoach(ctx, uid); err != nil {
			return res, fmt.Errorf("delete coach profile: %w", err)
		}
	}

	// --------------------------------------------------
	// 2. Account document
	// --------------------------------------------------
	if err := uc.repo.DeleteUser(ctx, uid); err != nil {
		return res, fmt.Errorf("delete account: %w", err)
	}

	// --------------------------------------------------
	// 3. Identity
	// --------------------------------------------------
	if err := uc.repo.DeleteCredential(ctx, uid); err != nil {
		return res, fmt.Errorf("delete identity: %w", err)
	}

	_ = d.Finish()
	res.State = d.State()

	realtime.PublishSession(ctx, uc.broker, uid, realtime.SessionChange{Kind: realtime.SessionDeleted})

	uc.audit.Dispatch(audit.Event{
		CoachID:  coachScope(user),
		ActorID:  uid,
		Action:   "account_deleted",
		Entity:   "account",
		EntityID: uid,
		Metadata: map[string]any{"events_deleted": res.EventsDeleted},
	})

	slog.InfoContext(ctx, "account deleted", "user_id", uid, "role", user.Role, "events_deleted", res.EventsDeleted)

	return res, nil
}

func coachScope(u *models.User) string {
	if u.Role == models.RoleCoach {
		return u.ID
	}
	return ""
}
