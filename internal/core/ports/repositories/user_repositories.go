package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	ListUsers(ctx context.Context, tenantID string, limit, offset int) ([]domain.User, error)

	UpdateUser(ctx context.Context, user domain.User) error

	DeactivateUser(ctx context.Context, userID, updatedBy string, now time.Time) error
}
