package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainAccount "github.com/BruksfildServices01/coach-calendar/internal/domain/account"
	domainBooking "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

// Store keeps every document in process memory. It follows the Postgres
// repositories' error values and change signals.
type Store struct {
	broker realtime.Broker

	mu      sync.RWMutex
	creds   map[string]models.Credential
	users   map[string]models.User
	coaches map[string]models.Coach
	events  map[string]models.Event
	now     func() time.Time
}

func New(broker realtime.Broker) *Store {
	return &Store{
		broker:  broker,
		creds:   make(map[string]models.Credential),
		users:   make(map[string]models.User),
		coaches: make(map[string]models.Coach),
		events:  make(map[string]models.Event),
		now:     time.Now,
	}
}

var (
	_ identity.Store           = (*Store)(nil)
	_ domainAccount.Repository = (*Store)(nil)
	_ domainBooking.Repository = (*Store)(nil)
)

// --------------------------------------------------
// Identity
// --------------------------------------------------

func (s *Store) CreateAccount(_ context.Context, cred *models.Credential, user *models.User, coach *models.Coach) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.creds {
		if c.Email == cred.Email {
			return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
		}
	}

	now := s.now()
	cred.CreatedAt, cred.UpdatedAt = now, now
	user.CreatedAt, user.UpdatedAt = now, now

	s.creds[cred.UserID] = *cred
	s.users[user.ID] = *user
	if coach != nil {
		coach.CreatedAt, coach.UpdatedAt = now, now
		s.coaches[coach.ID] = *coach
	}
	return nil
}

func (s *Store) GetCredentialByEmail(_ context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.creds {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) GetCredential(_ context.Context, userID string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.creds[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

// --------------------------------------------------
// Deletion cascade
// --------------------------------------------------

func (s *Store) DeleteEventsForCoach(ctx context.Context, coachID string) (int64, error) {
	s.mu.Lock()
	var n int64
	for id, ev := range s.events {
		if ev.CoachID == coachID {
			delete(s.events, id)
			n++
		}
	}
	s.mu.Unlock()

	if n > 0 {
		realtime.PublishChange(ctx, s.broker, realtime.Change{Kind: realtime.ChangeDeleted}, realtime.EventsTopic(coachID))
	}
	return n, nil
}

func (s *Store) DeleteCoach(ctx context.Context, coachID string) error {
	s.mu.Lock()
	_, ok := s.coaches[coachID]
	delete(s.coaches, coachID)
	s.mu.Unlock()

	if ok {
		realtime.PublishChange(ctx, s.broker, realtime.Change{Kind: realtime.ChangeDeleted, ID: coachID}, realtime.CoachesTopic)
	}
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

func (s *Store) DeleteCredential(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, userID)
	return nil
}

// --------------------------------------------------
// Coaches
// --------------------------------------------------

func (s *Store) GetCoach(_ context.Context, coachID string) (*models.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.coaches[coachID]
	if !ok {
		return nil, domainBooking.ErrCoachNotFound
	}
	return &c, nil
}

func (s *Store) ListCoaches(_ context.Context) ([]models.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Coach, 0, len(s.coaches))
	for _, c := range s.coaches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (s *Store) ListEvents(_ context.Context, coachID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Event{}
	for _, ev := range s.events {
		if ev.CoachID == coachID {
			out = append(out, detach(ev))
		}
	}
	sortEvents(out)
	return out, nil
}

func (s *Store) ListAllEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, detach(ev))
	}
	sortEvents(out)
	return out, nil
}

func (s *Store) GetEvent(_ context.Context, coachID, eventID string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok || ev.CoachID != coachID {
		return nil, domainBooking.ErrEventNotFound
	}
	out := detach(ev)
	return &out, nil
}

func (s *Store) FindEvent(_ context.Context, eventID string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, domainBooking.ErrEventNotFound
	}
	out := detach(ev)
	return &out, nil
}

func (s *Store) CreateEvent(ctx context.Context, ev *models.Event) error {
	s.mu.Lock()
	now := s.now()
	ev.CreatedAt, ev.UpdatedAt = now, now
	ev.Normalize()
	s.events[ev.ID] = detach(*ev)
	s.mu.Unlock()

	s.publish(ctx, realtime.ChangeCreated, ev.CoachID, ev.ID)
	return nil
}

func (s *Store) UpdateEventFields(ctx context.Context, ev *models.Event) error {
	s.mu.Lock()
	stored, ok := s.events[ev.ID]
	if !ok || stored.CoachID != ev.CoachID {
		s.mu.Unlock()
		return domainBooking.ErrEventNotFound
	}

	stored.Title = ev.Title
	stored.Description = ev.Description
	stored.Start = ev.Start
	stored.End = ev.End
	stored.UpdatedAt = s.now()
	s.events[ev.ID] = stored
	s.mu.Unlock()

	s.publish(ctx, realtime.ChangeUpdated, ev.CoachID, ev.ID)
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, coachID, eventID string) error {
	s.mu.Lock()
	ev, ok := s.events[eventID]
	if !ok || ev.CoachID != coachID {
		s.mu.Unlock()
		return domainBooking.ErrEventNotFound
	}
	delete(s.events, eventID)
	s.mu.Unlock()

	s.publish(ctx, realtime.ChangeDeleted, coachID, eventID)
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *Store) ReplaceBookings(ctx context.Context, coachID, eventID string, bookings []models.Booking) (*models.Event, error) {
	return s.mutate(ctx, coachID, eventID, func([]models.Booking) ([]models.Booking, bool) {
		return bookings, true
	})
}

func (s *Store) UnionBooking(ctx context.Context, coachID, eventID string, b models.Booking) (*models.Event, error) {
	return s.mutate(ctx, coachID, eventID, func(current []models.Booking) ([]models.Booking, bool) {
		return domainBooking.Union(current, b)
	})
}

func (s *Store) RemoveBooking(ctx context.Context, coachID, eventID string, b models.Booking) (*models.Event, error) {
	return s.mutate(ctx, coachID, eventID, func(current []models.Booking) ([]models.Booking, bool) {
		return domainBooking.Remove(current, b)
	})
}

func (s *Store) mutate(
	ctx context.Context,
	coachID string,
	eventID string,
	fn func([]models.Booking) ([]models.Booking, bool),
) (*models.Event, error) {

	s.mu.Lock()
	ev, ok := s.events[eventID]
	if !ok || ev.CoachID != coachID {
		s.mu.Unlock()
		return nil, domainBooking.ErrEventNotFound
	}

	next, changed := fn(ev.BookingsCopy())
	if changed {
		if next == nil {
			next = []models.Booking{}
		}
		ev.Bookings = next
		ev.UpdatedAt = s.now()
		s.events[eventID] = detach(ev)
	}
	out := detach(ev)
	s.mu.Unlock()

	if changed {
		s.publish(ctx, realtime.ChangeUpdated, coachID, eventID)
	}
	return &out, nil
}

func (s *Store) publish(ctx context.Context, kind, coachID, eventID string) {
	realtime.PublishChange(ctx, s.broker,
		realtime.Change{Kind: kind, ID: eventID},
		realtime.EventsTopic(coachID),
		realtime.EventTopic(coachID, eventID),
	)
}

// detach copies ev so callers never share the stored bookings array.
func detach(ev models.Event) models.Event {
	ev.Bookings = ev.BookingsCopy()
	if ev.End != nil {
		end := *ev.End
		ev.End = &end
	}
	return ev
}

func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.CoachID != b.CoachID {
			return strings.Compare(a.CoachID, b.CoachID) < 0
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
