package services

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// InvestorSvcFacade manages capital providers.
type InvestorSvcFacade interface {
	CreateInvestor(ctx context.Context, tenantID string, req dto.CreateInvestorRequest, userID string) (*domain.Investor, error)

	GetInvestorByID(ctx context.Context, tenantID, investorID string) (*domain.Investor, error)

	ListInvestors(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Investor, error)

	UpdateInvestor(ctx context.Context, tenantID, investorID string, req dto.UpdateInvestorRequest, userID string) (*domain.Investor, error)

	// ComputeBalance derives the investor's capital position from internal
	// transactions and payable ledger entries.
	ComputeBalance(ctx context.Context, tenantID, investorID string) (*domain.InvestorBalance, error)
}

// InterestSvcFacade runs the periodic interest accrual.
type InterestSvcFacade interface {
	// RunAccrualSweep processes every eligible investor for the given day and
	// returns how many interest entries were created.
	RunAccrualSweep(ctx context.Context, now time.Time) (int, error)

	// AccrueInvestor accrues interest for a single investor, one entry per
	// currency with a positive capital base. No-op if already processed this
	// calendar month.
	AccrueInvestor(ctx context.Context, investor domain.Investor, now time.Time) (int, error)
}
