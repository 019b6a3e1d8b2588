package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OperationReader defines read operations for exchange operations and
// internal cash movements.
type OperationReader interface {
	FindExchangeByID(ctx context.Context, tenantID, exchangeID string) (*domain.CurrencyExchange, error)

	ListExchanges(ctx context.Context, tenantID string, limit, offset int) ([]domain.CurrencyExchange, error)

	FindPurchaseByID(ctx context.Context, tenantID, purchaseID string) (*domain.DollarPurchase, error)

	ListPurchases(ctx context.Context, tenantID string, limit, offset int) ([]domain.DollarPurchase, error)

	ListInternalTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.InternalTransaction, error)

	// SumInternalTransactionsByEntity sums amounts of the given movement type
	// recorded against a virtual entity. Feeds investor balance computation.
	SumInternalTransactionsByEntity(ctx context.Context, tenantID string, entity domain.PartyRef, txnType domain.InternalTransactionType) (decimal.Decimal, error)

	// SumInternalTransactionsByAccountSince sums income and expense movements
	// recorded against an account after the given instant. Used by cash
	// closure reconciliation.
	SumInternalTransactionsByAccountSince(ctx context.Context, tenantID, accountID string, since time.Time) (income, expense decimal.Decimal, err error)
}

// OperationWriter defines write operations, all scoped to a unit of work.
type OperationWriter interface {
	// NextExchangeNumber allocates the next sequential human-readable number
	// (CE-00001 style) within tx.
	NextExchangeNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error)

	SaveExchangeInTx(ctx context.Context, tx pgx.Tx, exchange domain.CurrencyExchange) error

	// NextPurchaseNumber allocates the next DP-00001 style number within tx.
	NextPurchaseNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error)

	SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.DollarPurchase) error

	SaveInternalTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.InternalTransaction) error
}

// OperationRepositoryFacade combines operation reads and writes.
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
	TransactionManager
}
