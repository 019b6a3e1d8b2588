package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PostingReader defines read operations for journal headers and their legs.
type PostingReader interface {
	FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	FindTransactionByReference(ctx context.Context, tenantID, referenceCode string) (*domain.Transaction, error)

	FindDetailsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionDetail, error)

	ListTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.Transaction, error)

	// SumDetailMovementsSince returns the debit and credit sums posted against
	// one account after the given instant. Used by cash closure reconciliation.
	SumDetailMovementsSince(ctx context.Context, accountID string, since time.Time) (debits, credits decimal.Decimal, err error)
}

// PostingWriter defines write operations for journal entries.
type PostingWriter interface {
	// SaveTransactionInTx inserts the header, its detail legs and the optional
	// related-transaction link within the given database transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, details []domain.TransactionDetail, relatedTransactionID *string) error
}

// PostingRepositoryFacade combines posting reads and writes.
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
	TransactionManager
}
