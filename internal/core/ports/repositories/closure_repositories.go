package repositories

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// ClosureRepository defines persistence operations for cash closures.
type ClosureRepository interface {
	SaveClosure(ctx context.Context, closure domain.CashClosure) error

	FindClosureByID(ctx context.Context, tenantID, closureID string) (*domain.CashClosure, error)

	// FindOpenClosureByAccount returns the closure with a null end date for
	// the account, or ErrNotFound.
	FindOpenClosureByAccount(ctx context.Context, tenantID, accountID string) (*domain.CashClosure, error)

	UpdateClosure(ctx context.Context, closure domain.CashClosure) error

	ListClosures(ctx context.Context, tenantID string, limit, offset int) ([]domain.CashClosure, error)
}
