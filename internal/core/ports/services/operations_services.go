package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// OperationsSvcFacade composes ledger primitives and ledger entries into the
// exchange-house business operations. Every method is atomic: any failure
// rolls back all writes of that operation.
type OperationsSvcFacade interface {
	CreateCurrencyExchange(ctx context.Context, tenantID string, req dto.CreateCurrencyExchangeRequest, userID string) (*domain.CurrencyExchange, error)

	CreateDollarPurchase(ctx context.Context, tenantID string, req dto.CreateDollarPurchaseRequest, userID string) (*domain.DollarPurchase, error)

	CreateInternalTransaction(ctx context.Context, tenantID string, req dto.CreateInternalTransactionRequest, userID string) (*domain.InternalTransaction, error)

	// ProcessDebtPayment settles the full pending amount of an entry,
	// atomically with the cash movement and the status flip.
	ProcessDebtPayment(ctx context.Context, tenantID, entryID, accountID, userID string) (*domain.LedgerEntry, error)

	// ProcessLedgerPayment records a partial settlement; the entry flips to
	// paid when payments cover the original amount.
	ProcessLedgerPayment(ctx context.Context, tenantID, entryID string, req dto.LedgerPaymentRequest, userID string) (*domain.LedgerEntry, error)

	// AddBalanceToEntity books a payable obligation for a capital top-up
	// without touching any account balance.
	AddBalanceToEntity(ctx context.Context, tenantID string, req dto.AddBalanceRequest, userID string) (*domain.LedgerEntry, error)

	GetExchangeByID(ctx context.Context, tenantID, exchangeID string) (*domain.CurrencyExchange, error)

	ListExchanges(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.CurrencyExchange, error)

	GetPurchaseByID(ctx context.Context, tenantID, purchaseID string) (*domain.DollarPurchase, error)

	ListPurchases(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.DollarPurchase, error)

	ListInternalTransactions(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.InternalTransaction, error)
}
