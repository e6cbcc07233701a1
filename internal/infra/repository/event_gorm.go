package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

type EventGormRepository struct {
	db     *gorm.DB
	broker realtime.Broker
}

func NewEventGormRepository(db *gorm.DB, broker realtime.Broker) *EventGormRepository {
	return &EventGormRepository{db: db, broker: broker}
}

var _ domain.Repository = (*EventGormRepository)(nil)

// --------------------------------------------------
// Coach
// --------------------------------------------------

func (r *EventGormRepository) GetCoach(
	ctx context.Context,
	coachID string,
) (*models.Coach, error) {

	var coach models.Coach
	if err := r.db.WithContext(ctx).
		Where("id = ?", coachID).
		First(&coach).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCoachNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *EventGormRepository) ListCoaches(ctx context.Context) ([]models.Coach, error) {
	var coaches []models.Coach
	if err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}

// --------------------------------------------------
// Event (read)
// --------------------------------------------------

func (r *EventGormRepository) ListEvents(
	ctx context.Context,
	coachID string,
) ([]models.Event, error) {

	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("starts_at ASC, created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return normalize(events), nil
}

func (r *EventGormRepository) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Order("coach_id ASC, starts_at ASC, created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return normalize(events), nil
}

func (r *EventGormRepository) GetEvent(
	ctx context.Context,
	coachID string,
	eventID string,
) (*models.Event, error) {

	var ev models.Event
	if err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", eventID, coachID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	ev.Normalize()
	return &ev, nil
}

func (r *EventGormRepository) FindEvent(
	ctx context.Context,
	eventID string,
) (*models.Event, error) {

	var ev models.Event
	if err := r.db.WithContext(ctx).
		Where("id = ?", eventID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	ev.Normalize()
	return &ev, nil
}

// --------------------------------------------------
// Event (write)
// --------------------------------------------------

func (r *EventGormRepository) CreateEvent(ctx context.Context, ev *models.Event) error {
	ev.Normalize()
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return err
	}

	r.publish(ctx, realtime.ChangeCreated, ev.CoachID, ev.ID)
	return nil
}

// UpdateEventFields writes title, description, start and end; bookings are
// left as stored.
func (r *EventGormRepository) UpdateEventFields(ctx context.Context, ev *models.Event) error {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND coach_id = ?", ev.ID, ev.CoachID).
		Updates(map[string]any{
			"title":       ev.Title,
			"description": ev.Description,
			"starts_at":   ev.Start,
			"ends_at":     ev.End,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}

	r.publish(ctx, realtime.ChangeUpdated, ev.CoachID, ev.ID)
	return nil
}

func (r *EventGormRepository) DeleteEvent(
	ctx context.Context,
	coachID string,
	eventID string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", eventID, coachID).
		Delete(&models.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}

	r.publish(ctx, realtime.ChangeDeleted, coachID, eventID)
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *EventGormRepository) ReplaceBookings(
	ctx context.Context,
	coachID string,
	eventID string,
	bookings []models.Booking,
) (*models.Event, error) {
	return r.mutateBookings(ctx, coachID, eventID, func([]models.Booking) ([]models.Booking, bool) {
		return bookings, true
	})
}

func (r *EventGormRepository) UnionBooking(
	ctx context.Context,
	coachID string,
	eventID string,
	b models.Booking,
) (*models.Event, error) {
	return r.mutateBookings(ctx, coachID, eventID, func(current []models.Booking) ([]models.Booking, bool) {
		return domain.Union(current, b)
	})
}

func (r *EventGormRepository) RemoveBooking(
	ctx context.Context,
	coachID string,
	eventID string,
	b models.Booking,
) (*models.Event, error) {
	return r.mutateBookings(ctx, coachID, eventID, func(current []models.Booking) ([]models.Booking, bool) {
		return domain.Remove(current, b)
	})
}

// mutateBookings applies fn to the stored bookings under a row lock.
func (r *EventGormRepository) mutateBookings(
	ctx context.Context,
	coachID string,
	eventID string,
	fn func([]models.Booking) ([]models.Booking, bool),
) (*models.Event, error) {

	var ev models.Event
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND coach_id = ?", eventID, coachID).
			First(&ev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}

		next, ok := fn(ev.BookingsCopy())
		if !ok {
			return nil
		}
		if next == nil {
			next = []models.Booking{}
		}

		ev.Bookings = next
		changed = true

		return tx.Model(&ev).Update("bookings", ev.Bookings).Error
	})
	if err != nil {
		return nil, err
	}

	ev.Normalize()
	if changed {
		r.publish(ctx, realtime.ChangeUpdated, coachID, eventID)
	}
	return &ev, nil
}

func (r *EventGormRepository) publish(ctx context.Context, kind, coachID, eventID string) {
	realtime.PublishChange(ctx, r.broker,
		realtime.Change{Kind: kind, ID: eventID},
		realtime.EventsTopic(coachID),
		realtime.EventTopic(coachID, eventID),
	)
}

func normalize(events []models.Event) []models.Event {
	for i := range events {
		events[i].Normalize()
	}
	return events
}
