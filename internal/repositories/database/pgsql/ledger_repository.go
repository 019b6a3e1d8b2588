package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository persists payable/receivable obligations and their
// payments.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `entry_id, tenant_id, type, status, original_amount, paid_amount, pending_amount, currency_code, entity_type, entity_id, source_type, source_id, description, due_date, accrual_period, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var sourceType, sourceID, accrualPeriod sql.NullString
	var dueDate sql.NullTime
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.Type,
		&e.Status,
		&e.OriginalAmount,
		&e.PaidAmount,
		&e.PendingAmount,
		&e.CurrencyCode,
		&e.Entity.Type,
		&e.Entity.ID,
		&sourceType,
		&sourceID,
		&e.Description,
		&dueDate,
		&accrualPeriod,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return e, err
	}
	if sourceType.Valid && sourceID.Valid {
		e.Source = &domain.OperationRef{Type: domain.OperationType(sourceType.String), ID: sourceID.String}
	}
	if dueDate.Valid {
		e.DueDate = &dueDate.Time
	}
	if accrualPeriod.Valid {
		e.AccrualPeriod = accrualPeriod.String
	}
	return e, nil
}

func ledgerEntryArgs(entry domain.LedgerEntry) []any {
	var sourceType, sourceID, accrualPeriod sql.NullString
	if entry.Source != nil {
		sourceType = sql.NullString{String: string(entry.Source.Type), Valid: true}
		sourceID = sql.NullString{String: entry.Source.ID, Valid: true}
	}
	if entry.AccrualPeriod != "" {
		accrualPeriod = sql.NullString{String: entry.AccrualPeriod, Valid: true}
	}
	var dueDate sql.NullTime
	if entry.DueDate != nil {
		dueDate = sql.NullTime{Time: *entry.DueDate, Valid: true}
	}
	return []any{
		entry.EntryID,
		entry.TenantID,
		entry.Type,
		entry.Status,
		entry.OriginalAmount,
		entry.PaidAmount,
		entry.PendingAmount,
		entry.CurrencyCode,
		entry.Entity.Type,
		entry.Entity.ID,
		sourceType,
		sourceID,
		entry.Description,
		dueDate,
		accrualPeriod,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	}
}

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

func wrapLedgerInsertErr(err error, entry domain.LedgerEntry) error {
	if isUniqueViolation(err) {
		// The unique accrual index also lands here.
		return fmt.Errorf("%w: ledger entry for %s period %s", apperrors.ErrDuplicate, entry.Entity, entry.AccrualPeriod)
	}
	return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
}

// SaveEntry inserts a new ledger entry outside any unit of work.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if _, err := r.Pool.Exec(ctx, insertLedgerEntryQuery, ledgerEntryArgs(entry)...); err != nil {
		return wrapLedgerInsertErr(err, entry)
	}
	return nil
}

// SaveEntryInTx inserts a new ledger entry within tx.
func (r *PgxLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	if _, err := tx.Exec(ctx, insertLedgerEntryQuery, ledgerEntryArgs(entry)...); err != nil {
		return wrapLedgerInsertErr(err, entry)
	}
	return nil
}

// FindEntryByID retrieves a ledger entry by ID within a tenant.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE tenant_id = $1 AND entry_id = $2;`
	entry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// FindEntryByIDForUpdate selects one entry FOR UPDATE within tx so the
// settlement transition serializes with concurrent payments.
func (r *PgxLedgerRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`
	entry, err := scanLedgerEntry(tx.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock ledger entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// ListEntries applies the optional filters with AND semantics, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, tenantID string, filter domain.LedgerEntryFilter, limit, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE tenant_id = $1`
	args := []any{tenantID}

	addFilter := func(column string, value any) {
		args = append(args, value)
		query += " AND " + column + " = $" + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		addFilter("type", *filter.Type)
	}
	if filter.Status != nil {
		addFilter("status", *filter.Status)
	}
	if filter.EntityType != nil {
		addFilter("entity_type", *filter.EntityType)
	}
	if filter.EntityID != nil {
		addFilter("entity_id", *filter.EntityID)
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += " AND created_at <= $" + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, entry_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// ListPendingPayablesByInvestor returns pending payable entries owed to one
// investor, across all currencies.
func (r *PgxLedgerRepository) ListPendingPayablesByInvestor(ctx context.Context, tenantID, investorID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3 AND type = $4 AND status = $5
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, domain.PartyInvestor, investorID, domain.EntryPayable, domain.EntryPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payables for investor %s: %w", investorID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// SumPayableOriginalByEntity sums original_amount over payable entries
// against the entity.
func (r *PgxLedgerRepository) SumPayableOriginalByEntity(ctx context.Context, tenantID string, entity domain.PartyRef) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(original_amount), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3 AND type = $4;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, entity.Type, entity.ID, domain.EntryPayable).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payables for entity %s: %w", entity, err)
	}
	return total, nil
}

// UpdateEntrySettlementInTx persists paid_amount, pending_amount and status
// after a payment has been applied.
func (r *PgxLedgerRepository) UpdateEntrySettlementInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET paid_amount = $1, pending_amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND entry_id = $7;
	`
	tag, err := tx.Exec(ctx, query,
		entry.PaidAmount,
		entry.PendingAmount,
		entry.Status,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.TenantID,
		entry.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement of ledger entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx records one settlement against a ledger entry within tx.
func (r *PgxLedgerRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LedgerPayment) error {
	query := `
		INSERT INTO ledger_payments (payment_id, entry_id, tenant_id, amount, account_id, user_id, payment_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.EntryID,
		payment.TenantID,
		payment.Amount,
		payment.AccountID,
		payment.UserID,
		payment.PaymentDate,
		payment.Description,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// ListPaymentsByEntry retrieves the payment history of one entry.
func (r *PgxLedgerRepository) ListPaymentsByEntry(ctx context.Context, tenantID, entryID string) ([]domain.LedgerPayment, error) {
	query := `
		SELECT payment_id, entry_id, tenant_id, amount, account_id, user_id, payment_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_payments
		WHERE tenant_id = $1 AND entry_id = $2
		ORDER BY payment_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	payments := []domain.LedgerPayment{}
	for rows.Next() {
		var p domain.LedgerPayment
		err := rows.Scan(
			&p.PaymentID,
			&p.EntryID,
			&p.TenantID,
			&p.Amount,
			&p.AccountID,
			&p.UserID,
			&p.PaymentDate,
			&p.Description,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger payment rows: %w", err)
	}
	return payments, nil
}
