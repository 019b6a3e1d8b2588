package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// AccountingSvcFacade validates and persists balanced journal entries.
type AccountingSvcFacade interface {
	// RegisterTransaction posts a balanced set of movements atomically.
	// Fails with apperrors.ErrUnbalanced before any write when the debit and
	// credit sums differ by more than the tolerance.
	RegisterTransaction(ctx context.Context, tenantID string, req dto.RegisterTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	GetTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	ListTransactions(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Transaction, error)
}
