package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxClosureRepository persists cash closure windows.
type PgxClosureRepository struct {
	BaseRepository
}

// newPgxClosureRepository creates a new repository for cash closures.
func newPgxClosureRepository(pool *pgxpool.Pool) portsrepo.ClosureRepository {
	return &PgxClosureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClosureRepository implements portsrepo.ClosureRepository
var _ portsrepo.ClosureRepository = (*PgxClosureRepository)(nil)

const closureColumns = `closure_id, tenant_id, account_id, start_date, initial_balance, end_date, final_balance, theoretical_balance, difference, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanClosure(row pgx.Row) (domain.CashClosure, error) {
	var c domain.CashClosure
	var endDate sql.NullTime
	var finalBalance, theoreticalBalance, difference decimal.NullDecimal
	err := row.Scan(
		&c.ClosureID,
		&c.TenantID,
		&c.AccountID,
		&c.StartDate,
		&c.InitialBalance,
		&endDate,
		&finalBalance,
		&theoreticalBalance,
		&difference,
		&c.Notes,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return c, err
	}
	if endDate.Valid {
		c.EndDate = &endDate.Time
	}
	if finalBalance.Valid {
		c.FinalBalance = &finalBalance.Decimal
	}
	if theoreticalBalance.Valid {
		c.TheoreticalBalance = &theoreticalBalance.Decimal
	}
	if difference.Valid {
		c.Difference = &difference.Decimal
	}
	return c, nil
}

// SaveClosure inserts a newly opened closure window.
func (r *PgxClosureRepository) SaveClosure(ctx context.Context, closure domain.CashClosure) error {
	query := `
		INSERT INTO cash_closures (closure_id, tenant_id, account_id, start_date, initial_balance, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		closure.ClosureID,
		closure.TenantID,
		closure.AccountID,
		closure.StartDate,
		closure.InitialBalance,
		closure.Notes,
		closure.CreatedAt,
		closure.CreatedBy,
		closure.LastUpdatedAt,
		closure.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash closure %s: %w", closure.ClosureID, err)
	}
	return nil
}

// FindClosureByID retrieves one closure within a tenant.
func (r *PgxClosureRepository) FindClosureByID(ctx context.Context, tenantID, closureID string) (*domain.CashClosure, error) {
	query := `SELECT ` + closureColumns + ` FROM cash_closures WHERE tenant_id = $1 AND closure_id = $2;`
	c, err := scanClosure(r.Pool.QueryRow(ctx, query, tenantID, closureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash closure %s: %w", closureID, err)
	}
	return &c, nil
}

// FindOpenClosureByAccount returns the closure with a null end date for the
// account, or ErrNotFound.
func (r *PgxClosureRepository) FindOpenClosureByAccount(ctx context.Context, tenantID, accountID string) (*domain.CashClosure, error) {
	query := `SELECT ` + closureColumns + ` FROM cash_closures WHERE tenant_id = $1 AND account_id = $2 AND end_date IS NULL;`
	c, err := scanClosure(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open closure for account %s: %w", accountID, err)
	}
	return &c, nil
}

// UpdateClosure persists the closing fields of a reconciled window.
func (r *PgxClosureRepository) UpdateClosure(ctx context.Context, closure domain.CashClosure) error {
	var endDate sql.NullTime
	if closure.EndDate != nil {
		endDate = sql.NullTime{Time: *closure.EndDate, Valid: true}
	}
	toNullDecimal := func(d *decimal.Decimal) decimal.NullDecimal {
		if d == nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: *d, Valid: true}
	}

	query := `
		UPDATE cash_closures
		SET end_date = $1, final_balance = $2, theoretical_balance = $3, difference = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND closure_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		endDate,
		toNullDecimal(closure.FinalBalance),
		toNullDecimal(closure.TheoreticalBalance),
		toNullDecimal(closure.Difference),
		closure.Notes,
		closure.LastUpdatedAt,
		closure.LastUpdatedBy,
		closure.TenantID,
		closure.ClosureID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash closure %s: %w", closure.ClosureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListClosures retrieves a paginated list of closures, newest first.
func (r *PgxClosureRepository) ListClosures(ctx context.Context, tenantID string, limit, offset int) ([]domain.CashClosure, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + closureColumns + `
		FROM cash_closures
		WHERE tenant_id = $1
		ORDER BY start_date DESC, closure_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash closures: %w", err)
	}
	defer rows.Close()

	closures := []domain.CashClosure{}
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash closure row: %w", err)
		}
		closures = append(closures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash closure rows: %w", err)
	}
	return closures, nil
}
