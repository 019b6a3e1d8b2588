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
)

// PgxInvestorRepository persists investor records.
type PgxInvestorRepository struct {
	BaseRepository
}

// newPgxInvestorRepository creates a new repository for investor data.
func newPgxInvestorRepository(pool *pgxpool.Pool) portsrepo.InvestorRepositoryWithTx {
	return &PgxInvestorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvestorRepository implements portsrepo.InvestorRepositoryWithTx
var _ portsrepo.InvestorRepositoryWithTx = (*PgxInvestorRepository)(nil)

const investorColumns = `investor_id, tenant_id, name, email, interest_rate, payout_day, is_active, last_interest_date, created_at, created_by, last_updated_at, last_updated_by`

func scanInvestor(row pgx.Row) (domain.Investor, error) {
	var inv domain.Investor
	var lastInterest sql.NullTime
	err := row.Scan(
		&inv.InvestorID,
		&inv.TenantID,
		&inv.Name,
		&inv.Email,
		&inv.InterestRate,
		&inv.PayoutDay,
		&inv.IsActive,
		&lastInterest,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return inv, err
	}
	if lastInterest.Valid {
		inv.LastInterestDate = &lastInterest.Time
	}
	return inv, nil
}

// SaveInvestor inserts a new investor.
func (r *PgxInvestorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	query := `
		INSERT INTO investors (` + investorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var lastInterest sql.NullTime
	if investor.LastInterestDate != nil {
		lastInterest = sql.NullTime{Time: *investor.LastInterestDate, Valid: true}
	}
	_, err := r.Pool.Exec(ctx, query,
		investor.InvestorID,
		investor.TenantID,
		investor.Name,
		investor.Email,
		investor.InterestRate,
		investor.PayoutDay,
		investor.IsActive,
		lastInterest,
		investor.CreatedAt,
		investor.CreatedBy,
		investor.LastUpdatedAt,
		investor.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investor %s: %w", investor.InvestorID, err)
	}
	return nil
}

// FindInvestorByID retrieves one investor within a tenant.
func (r *PgxInvestorRepository) FindInvestorByID(ctx context.Context, tenantID, investorID string) (*domain.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investors WHERE tenant_id = $1 AND investor_id = $2;`
	inv, err := scanInvestor(r.Pool.QueryRow(ctx, query, tenantID, investorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find investor %s: %w", investorID, err)
	}
	return &inv, nil
}

// ListInvestors retrieves a paginated list of investors for a tenant.
func (r *PgxInvestorRepository) ListInvestors(ctx context.Context, tenantID string, limit, offset int) ([]domain.Investor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + investorColumns + `
		FROM investors
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query investors for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor row: %w", err)
		}
		investors = append(investors, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor rows: %w", err)
	}
	return investors, nil
}

// ListActiveInvestors returns active investors across all tenants. The
// accrual sweep is a system-level batch, so this query is not tenant-scoped.
func (r *PgxInvestorRepository) ListActiveInvestors(ctx context.Context) ([]domain.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investors
		WHERE is_active = TRUE
		ORDER BY tenant_id, investor_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active investors: %w", err)
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor row: %w", err)
		}
		investors = append(investors, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor rows: %w", err)
	}
	return investors, nil
}

// UpdateInvestor persists editable investor fields.
func (r *PgxInvestorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	query := `
		UPDATE investors
		SET name = $1, email = $2, interest_rate = $3, payout_day = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND investor_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		investor.Name,
		investor.Email,
		investor.InterestRate,
		investor.PayoutDay,
		investor.IsActive,
		investor.LastUpdatedAt,
		investor.LastUpdatedBy,
		investor.TenantID,
		investor.InvestorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor %s: %w", investor.InvestorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastInterestDateInTx stamps the accrual gate inside the accrual unit
// of work.
func (r *PgxInvestorRepository) UpdateLastInterestDateInTx(ctx context.Context, tx pgx.Tx, investorID string, date time.Time, userID string, now time.Time) error {
	query := `
		UPDATE investors
		SET last_interest_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE investor_id = $4;
	`
	tag, err := tx.Exec(ctx, query, date, now, userID, investorID)
	if err != nil {
		return fmt.Errorf("failed to stamp last interest date for investor %s: %w", investorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
