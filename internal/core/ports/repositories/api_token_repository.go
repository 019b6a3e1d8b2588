package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// APITokenRepository defines persistence operations for API tokens.
type APITokenRepository interface {
	Create(ctx context.Context, token *domain.APIToken) error

	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// FindByTokenHash looks a token up by its stored hash during auth.
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	Update(ctx context.Context, token *domain.APIToken) error

	Delete(ctx context.Context, id string) error

	// DeleteExpired removes tokens expired before the given instant.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
