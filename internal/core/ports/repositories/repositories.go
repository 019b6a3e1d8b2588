package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Multi-step orchestration operations run every write through a single pgx.Tx
// obtained here; any error aborts the whole unit of work.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Safe to call after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider aggregates every repository implementation for wiring.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	PostingRepo   PostingRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	OperationRepo OperationRepositoryFacade
	InvestorRepo  InvestorRepositoryWithTx
	ClosureRepo   ClosureRepository
	PartyRepo     PartyRepository
	CurrencyRepo  CurrencyRepository
	TenantRepo    TenantRepository
	UserRepo      UserRepository
	APITokenRepo  APITokenRepository
	ReportingRepo ReportingRepository
}
