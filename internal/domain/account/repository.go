package account

import (
	"context"

	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// Repository holds the documents removed by the deletion cascade. Each
// call is its own write; nothing spans the cascade.
type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)

	DeleteEventsForCoach(ctx context.Context, coachID string) (int64, error)
	DeleteCoach(ctx context.Context, coachID string) error
	DeleteUser(ctx context.Context, userID string) error
	DeleteCredential(ctx context.Context, userID string) error
}
