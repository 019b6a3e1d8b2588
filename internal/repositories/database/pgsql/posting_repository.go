package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxPostingRepository persists journal headers and their detail legs.
type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for journal postings.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPostingRepository implements portsrepo.PostingRepositoryFacade
var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

const transactionColumns = `transaction_id, tenant_id, date, description, reference_code, status, related_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	var relatedID sql.NullString
	err := row.Scan(
		&txn.TransactionID,
		&txn.TenantID,
		&txn.Date,
		&txn.Description,
		&txn.ReferenceCode,
		&txn.Status,
		&relatedID,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

// SaveTransactionInTx inserts the header, its detail legs and the optional
// related-transaction link within the given database transaction. Balance
// updates are the caller's responsibility; they happen in the same tx through
// the account repository.
func (r *PgxPostingRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, details []domain.TransactionDetail, relatedTransactionID *string) error {
	var relatedID sql.NullString
	if relatedTransactionID != nil {
		relatedID = sql.NullString{String: *relatedTransactionID, Valid: true}
	}

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.TenantID,
		txn.Date,
		txn.Description,
		txn.ReferenceCode,
		txn.Status,
		relatedID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference code %s already used", apperrors.ErrDuplicate, txn.ReferenceCode)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	detailQuery := `
		INSERT INTO transaction_details (detail_id, transaction_id, account_id, amount, is_debit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, d := range details {
		batch.Queue(detailQuery,
			d.DetailID,
			d.TransactionID,
			d.AccountID,
			d.Amount,
			d.IsDebit,
			d.CreatedAt,
			d.CreatedBy,
			d.LastUpdatedAt,
			d.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range details {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert transaction detail: %w", err)
		}
	}
	return nil
}

// FindTransactionByID retrieves a journal header by ID.
func (r *PgxPostingRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tenant_id = $1 AND transaction_id = $2;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, tenantID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindTransactionByReference retrieves a journal header by its reference code.
func (r *PgxPostingRepository) FindTransactionByReference(ctx context.Context, tenantID, referenceCode string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tenant_id = $1 AND reference_code = $2;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, tenantID, referenceCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", referenceCode, err)
	}
	return &txn, nil
}

// FindDetailsByTransactionID retrieves the legs of a transaction.
func (r *PgxPostingRepository) FindDetailsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionDetail, error) {
	query := `
		SELECT detail_id, transaction_id, account_id, amount, is_debit, created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_details
		WHERE transaction_id = $1
		ORDER BY detail_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query details for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	details := []domain.TransactionDetail{}
	for rows.Next() {
		var d domain.TransactionDetail
		err := rows.Scan(
			&d.DetailID,
			&d.TransactionID,
			&d.AccountID,
			&d.Amount,
			&d.IsDebit,
			&d.CreatedAt,
			&d.CreatedBy,
			&d.LastUpdatedAt,
			&d.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction detail row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction detail rows: %w", err)
	}
	return details, nil
}

// ListTransactions retrieves a paginated list of journal headers, newest first.
func (r *PgxPostingRepository) ListTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1
		ORDER BY date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// SumDetailMovementsSince returns the debit and credit sums posted against one
// account after the given instant.
func (r *PgxPostingRepository) SumDetailMovementsSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(d.amount) FILTER (WHERE d.is_debit), 0),
			COALESCE(SUM(d.amount) FILTER (WHERE NOT d.is_debit), 0)
		FROM transaction_details d
		JOIN transactions t ON t.transaction_id = d.transaction_id
		WHERE d.account_id = $1 AND t.date >= $2 AND t.status = $3;
	`
	var debits, credits decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, since, domain.TransactionCompleted).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum detail movements for account %s: %w", accountID, err)
	}
	return debits, credits, nil
}
