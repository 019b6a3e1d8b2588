package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvestorRepository defines persistence operations for investors.
type InvestorRepository interface {
	SaveInvestor(ctx context.Context, investor domain.Investor) error

	FindInvestorByID(ctx context.Context, tenantID, investorID string) (*domain.Investor, error)

	ListInvestors(ctx context.Context, tenantID string, limit, offset int) ([]domain.Investor, error)

	// ListActiveInvestors returns active investors across all tenants; the
	// accrual sweep is a system-level batch.
	ListActiveInvestors(ctx context.Context) ([]domain.Investor, error)

	UpdateInvestor(ctx context.Context, investor domain.Investor) error

	// UpdateLastInterestDateInTx stamps the accrual gate inside the accrual
	// unit of work.
	UpdateLastInterestDateInTx(ctx context.Context, tx pgx.Tx, investorID string, date time.Time, userID string, now time.Time) error
}

// InvestorRepositoryWithTx extends InvestorRepository with transaction
// management for the accrual sweep.
type InvestorRepositoryWithTx interface {
	InvestorRepository
	TransactionManager
}
