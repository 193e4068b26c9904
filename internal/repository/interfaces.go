package repository

import (
	"context"
	"time"

	"userhub/internal/models"
)

type UserRepository interface {
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	Count(ctx context.Context, f UserFilter) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	RecordLogin(ctx context.Context, id, token string, at time.Time) error
	Create(ctx context.Context, u models.NewUser) (*models.User, error)
	BulkCreate(ctx context.Context, users []models.NewUser) (int, error)
}
