package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

// investorService manages capital providers and their computed balances.
type investorService struct {
	investorRepo portsrepo.InvestorRepository
	opRepo       portsrepo.OperationRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
}

// NewInvestorService creates the investor service.
func NewInvestorService(
	investorRepo portsrepo.InvestorRepository,
	opRepo portsrepo.OperationRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
) portssvc.InvestorSvcFacade {
	return &investorService{investorRepo: investorRepo, opRepo: opRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.InvestorSvcFacade = (*investorService)(nil)

// CreateInvestor registers a capital provider.
func (s *investorService) CreateInvestor(ctx context.Context, tenantID string, req dto.CreateInvestorRequest, userID string) (*domain.Investor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	investor := domain.Investor{
		InvestorID:   uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Email:        req.Email,
		InterestRate: req.InterestRate,
		PayoutDay:    req.PayoutDay,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.investorRepo.SaveInvestor(ctx, investor); err != nil {
		return nil, fmt.Errorf("failed to save investor: %w", err)
	}

	logger.Info("Investor created", slog.String("investor_id", investor.InvestorID))
	return &investor, nil
}

// GetInvestorByID retrieves one investor.
func (s *investorService) GetInvestorByID(ctx context.Context, tenantID, investorID string) (*domain.Investor, error) {
	return s.investorRepo.FindInvestorByID(ctx, tenantID, investorID)
}

// ListInvestors returns a page of investors.
func (s *investorService) ListInvestors(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Investor, error) {
	return s.investorRepo.ListInvestors(ctx, tenantID, params.Limit, params.Offset)
}

// UpdateInvestor patches investor terms. Rate changes apply from the next
// accrual onward.
func (s *investorService) UpdateInvestor(ctx context.Context, tenantID, investorID string, req dto.UpdateInvestorRequest, userID string) (*domain.Investor, error) {
	investor, err := s.investorRepo.FindInvestorByID(ctx, tenantID, investorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		investor.Name = *req.Name
	}
	if req.Email != nil {
		investor.Email = *req.Email
	}
	if req.InterestRate != nil {
		if req.InterestRate.IsNegative() {
			return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
		}
		investor.InterestRate = *req.InterestRate
	}
	if req.PayoutDay != nil {
		investor.PayoutDay = *req.PayoutDay
	}
	if req.IsActive != nil {
		investor.IsActive = *req.IsActive
	}
	investor.LastUpdatedAt = time.Now().UTC()
	investor.LastUpdatedBy = userID

	if err := s.investorRepo.UpdateInvestor(ctx, *investor); err != nil {
		return nil, fmt.Errorf("failed to update investor: %w", err)
	}
	return investor, nil
}

// ComputeBalance derives the capital position. Historic capital is the larger
// of the income movement sum and the payable original-amount sum against the
// investor; the available balance subtracts expense movements.
func (s *investorService) ComputeBalance(ctx context.Context, tenantID, investorID string) (*domain.InvestorBalance, error) {
	if _, err := s.investorRepo.FindInvestorByID(ctx, tenantID, investorID); err != nil {
		return nil, err
	}

	entity := domain.PartyRef{Type: domain.PartyInvestor, ID: investorID}

	incomeSum, err := s.opRepo.SumInternalTransactionsByEntity(ctx, tenantID, entity, domain.InternalIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income movements: %w", err)
	}
	expenseSum, err := s.opRepo.SumInternalTransactionsByEntity(ctx, tenantID, entity, domain.InternalExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expense movements: %w", err)
	}
	payableSum, err := s.ledgerRepo.SumPayableOriginalByEntity(ctx, tenantID, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payable entries: %w", err)
	}

	capital := decimal.Max(incomeSum, payableSum)
	return &domain.InvestorBalance{
		InvestorID:       investorID,
		CapitalHistoric:  capital,
		AvailableBalance: capital.Sub(expenseSum),
	}, nil
}
