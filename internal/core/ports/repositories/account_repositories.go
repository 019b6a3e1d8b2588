package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByName resolves an account by its tenant-scoped name.
	FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error)

	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error

	UpdateAccount(ctx context.Context, account domain.Account) error

	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside orchestration
// units of work. Balance reads that precede writes must go through the
// ForUpdate variants so the row stays locked until commit.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects one account FOR UPDATE within tx.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error)

	// FindAccountsByNamesForUpdate selects accounts by tenant-scoped name
	// FOR UPDATE within tx, keyed by name in the result.
	FindAccountsByNamesForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, names []string) (map[string]domain.Account, error)

	// AdjustAccountBalanceInTx applies a signed delta to one account balance.
	AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error

	// UpdateAccountBalancesInTx applies signed deltas keyed by account ID.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
