package services

import (
	"context"
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
	"github.com/cambiosoft/exchange_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountingService validates and persists balanced journal entries.
type accountingService struct {
	postingRepo portsrepo.PostingRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountingService creates the accounting service.
func NewAccountingService(postingRepo portsrepo.PostingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountingSvcFacade {
	return &accountingService{postingRepo: postingRepo, accountRepo: accountRepo}
}

var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

// RegisterTransaction posts a balanced journal entry. The balanced-entry
// invariant is checked before the unit of work opens: a violation never
// reaches the database.
func (s *accountingService) RegisterTransaction(ctx context.Context, tenantID string, req dto.RegisterTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movements := req.ToDomainMovements()
	if err := accounting.ValidateBalanced(movements); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	referenceCode := req.ReferenceCode
	if referenceCode == "" {
		referenceCode = uuid.NewString()
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TenantID:      tenantID,
		Date:          req.Date,
		Description:   req.Description,
		ReferenceCode: referenceCode,
		Status:        domain.TransactionCompleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.postingRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.postingRepo.Rollback(ctx, tx)

	names := make([]string, 0, len(movements))
	for _, m := range movements {
		names = append(names, m.AccountName)
	}
	accountsByName, err := s.accountRepo.FindAccountsByNamesForUpdate(ctx, tx, tenantID, uniqueStrings(names))
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}

	details := make([]domain.TransactionDetail, len(movements))
	balanceChanges := make(map[string]decimal.Decimal)
	for i, m := range movements {
		acc, found := accountsByName[m.AccountName]
		if !found {
			return nil, fmt.Errorf("%w: account %q", apperrors.ErrNotFound, m.AccountName)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %q is inactive", apperrors.ErrValidation, m.AccountName)
		}

		details[i] = domain.TransactionDetail{
			DetailID:      uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     acc.AccountID,
			Amount:        m.Amount.Abs(),
			IsDebit:       m.IsDebit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}

		signed, err := accounting.SignedAmount(m.Amount.Abs(), m.IsDebit, acc.AccountType)
		if err != nil {
			return nil, err
		}
		balanceChanges[acc.AccountID] = balanceChanges[acc.AccountID].Add(signed)
	}

	if err := s.postingRepo.SaveTransactionInTx(ctx, tx, txn, details, req.RelatedTransactionID); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, creatorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update account balances: %w", err)
	}

	if err := s.postingRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction registered",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_code", txn.ReferenceCode),
		slog.Int("movement_count", len(details)))

	txn.Details = details
	return &txn, nil
}

// GetTransactionByID retrieves a journal entry with its legs.
func (s *accountingService) GetTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.postingRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}
	details, err := s.postingRepo.FindDetailsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for transaction %s: %w", transactionID, err)
	}
	txn.Details = details
	return txn, nil
}

// ListTransactions returns a page of journal entries without legs.
func (s *accountingService) ListTransactions(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Transaction, error) {
	return s.postingRepo.ListTransactions(ctx, tenantID, params.Limit, params.Offset)
}

// uniqueStrings returns the unique strings from the input, order preserved.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
