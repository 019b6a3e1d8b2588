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

// accountService manages the account catalog. Balances are never set through
// this service; they only move inside posting and operation units of work.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepository
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, currencyRepo: currencyRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers an account. The initial balance is the only direct
// balance write an account ever sees.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}
	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		Balance:      req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account name %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
}

// ListAccounts returns a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, tenantID, params.Limit, params.Offset)
}

// UpdateAccount patches descriptive fields. Type, currency and balance are
// immutable here.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive; history is preserved.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now().UTC())
}
