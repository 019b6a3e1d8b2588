package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

// closureService manages cash register reconciliation windows.
type closureService struct {
	closureRepo portsrepo.ClosureRepository
	accountRepo portsrepo.AccountRepositoryFacade
	postingRepo portsrepo.PostingRepositoryFacade
	opRepo      portsrepo.OperationRepositoryFacade
}

// NewClosureService creates the cash closure service.
func NewClosureService(
	closureRepo portsrepo.ClosureRepository,
	accountRepo portsrepo.AccountRepositoryFacade,
	postingRepo portsrepo.PostingRepositoryFacade,
	opRepo portsrepo.OperationRepositoryFacade,
) portssvc.ClosureSvcFacade {
	return &closureService{
		closureRepo: closureRepo,
		accountRepo: accountRepo,
		postingRepo: postingRepo,
		opRepo:      opRepo,
	}
}

var _ portssvc.ClosureSvcFacade = (*closureService)(nil)

// OpenClosure opens a reconciliation window on a cash account. One open
// window per account.
func (s *closureService) OpenClosure(ctx context.Context, tenantID string, req dto.OpenClosureRequest, userID string) (*domain.CashClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.AccountType != domain.Cash {
		return nil, fmt.Errorf("%w: closures apply to cash accounts only", apperrors.ErrValidation)
	}

	existing, err := s.closureRepo.FindOpenClosureByAccount(ctx, tenantID, req.AccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open closures: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account %s already has an open closure %s",
			apperrors.ErrConflict, req.AccountID, existing.ClosureID)
	}

	now := time.Now().UTC()
	closure := domain.CashClosure{
		ClosureID:      uuid.NewString(),
		TenantID:       tenantID,
		AccountID:      req.AccountID,
		StartDate:      now,
		InitialBalance: req.InitialBalance,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.closureRepo.SaveClosure(ctx, closure); err != nil {
		return nil, fmt.Errorf("failed to save closure: %w", err)
	}

	logger.Info("Cash closure opened",
		slog.String("closure_id", closure.ClosureID),
		slog.String("account_id", closure.AccountID))
	return &closure, nil
}

// CloseClosure computes the theoretical balance from every movement recorded
// against the account since the window opened (journal legs and internal
// movements) and stores the counted difference. The difference is recorded
// as-is; no correcting entry is generated.
func (s *closureService) CloseClosure(ctx context.Context, tenantID, closureID string, req dto.CloseClosureRequest, userID string) (*domain.CashClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	closure, err := s.closureRepo.FindClosureByID(ctx, tenantID, closureID)
	if err != nil {
		return nil, err
	}
	if !closure.IsOpen() {
		return nil, fmt.Errorf("%w: closure %s is already closed", apperrors.ErrConflict, closureID)
	}

	debits, credits, err := s.postingRepo.SumDetailMovementsSince(ctx, closure.AccountID, closure.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum journal movements: %w", err)
	}
	income, expense, err := s.opRepo.SumInternalTransactionsByAccountSince(ctx, tenantID, closure.AccountID, closure.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum internal movements: %w", err)
	}

	// Cash accounts increase on debit.
	theoretical := closure.InitialBalance.Add(debits).Sub(credits).Add(income).Sub(expense)
	difference := req.FinalBalance.Sub(theoretical)

	now := time.Now().UTC()
	closure.EndDate = &now
	closure.FinalBalance = &req.FinalBalance
	closure.TheoreticalBalance = &theoretical
	closure.Difference = &difference
	if req.Notes != "" {
		closure.Notes = req.Notes
	}
	closure.LastUpdatedAt = now
	closure.LastUpdatedBy = userID

	if err := s.closureRepo.UpdateClosure(ctx, *closure); err != nil {
		return nil, fmt.Errorf("failed to update closure: %w", err)
	}

	logger.Info("Cash closure closed",
		slog.String("closure_id", closure.ClosureID),
		slog.String("theoretical", theoretical.String()),
		slog.String("difference", difference.String()))
	return closure, nil
}

// GetOpenClosure returns the open window for an account.
func (s *closureService) GetOpenClosure(ctx context.Context, tenantID, accountID string) (*domain.CashClosure, error) {
	return s.closureRepo.FindOpenClosureByAccount(ctx, tenantID, accountID)
}

// ListClosures returns a page of closures, newest first.
func (s *closureService) ListClosures(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.CashClosure, error) {
	return s.closureRepo.ListClosures(ctx, tenantID, params.Limit, params.Offset)
}
