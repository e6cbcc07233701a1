package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/account"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
)

type AccountGormRepository struct {
	db     *gorm.DB
	broker realtime.Broker
}

func NewAccountGormRepository(db *gorm.DB, broker realtime.Broker) *AccountGormRepository {
	return &AccountGormRepository{db: db, broker: broker}
}

var (
	_ domain.Repository = (*AccountGormRepository)(nil)
	_ identity.Store    = (*AccountGormRepository)(nil)
)

// --------------------------------------------------
// Sign-up
// --------------------------------------------------

func (r *AccountGormRepository) CreateAccount(
	ctx context.Context,
	cred *models.Credential,
	user *models.User,
	coach *models.Coach,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if coach != nil {
			if err := tx.Create(coach).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *AccountGormRepository) GetCredentialByEmail(
	ctx context.Context,
	email string,
) (*models.Credential, error) {

	var cred models.Credential
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *AccountGormRepository) GetCredential(
	ctx context.Context,
	userID string,
) (*models.Credential, error) {

	var cred models.Credential
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *AccountGormRepository) GetUser(
	ctx context.Context,
	userID string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Deletion cascade
// --------------------------------------------------

func (r *AccountGormRepository) DeleteEventsForCoach(
	ctx context.Context,
	coachID string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Delete(&models.Event{})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		realtime.PublishChange(ctx, r.broker,
			realtime.Change{Kind: realtime.ChangeDeleted},
			realtime.EventsTopic(coachID),
		)
	}
	return res.RowsAffected, nil
}

func (r *AccountGormRepository) DeleteCoach(
	ctx context.Context,
	coachID string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", coachID).
		Delete(&models.Coach{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		realtime.PublishChange(ctx, r.broker,
			realtime.Change{Kind: realtime.ChangeDeleted, ID: coachID},
			realtime.CoachesTopic,
		)
	}
	return nil
}

func (r *AccountGormRepository) DeleteUser(
	ctx context.Context,
	userID string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&models.User{}).Error
}

func (r *AccountGormRepository) DeleteCredential(
	ctx context.Context,
	userID string,
) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Credential{}).Error
}
