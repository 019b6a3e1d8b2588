package repositories

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for payable/receivable obligations.
type LedgerReader interface {
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.LedgerEntry, error)

	// ListEntries applies the optional filters with AND semantics.
	ListEntries(ctx context.Context, tenantID string, filter domain.LedgerEntryFilter, limit, offset int) ([]domain.LedgerEntry, error)

	ListPaymentsByEntry(ctx context.Context, tenantID, entryID string) ([]domain.LedgerPayment, error)

	// ListPendingPayablesByInvestor returns pending payable entries owed to
	// one investor, across all currencies. Used by interest accrual.
	ListPendingPayablesByInvestor(ctx context.Context, tenantID, investorID string) ([]domain.LedgerEntry, error)

	// SumPayableOriginalByEntity sums original_amount over payable entries
	// against the entity. Feeds the investor capital computation.
	SumPayableOriginalByEntity(ctx context.Context, tenantID string, entity domain.PartyRef) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for obligations and their payments.
// Entries are never deleted.
type LedgerWriter interface {
	// FindEntryByIDForUpdate selects one entry FOR UPDATE within tx so the
	// settlement transition serializes with concurrent payments.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.LedgerEntry, error)

	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// UpdateEntrySettlementInTx persists paid_amount, pending_amount and
	// status after ApplyPayment.
	UpdateEntrySettlementInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LedgerPayment) error
}

// LedgerRepositoryFacade combines ledger entry reads and writes.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	TransactionManager
}
