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

// PgxTenantRepository persists tenant records.
type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepository {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepository
var _ portsrepo.TenantRepository = (*PgxTenantRepository)(nil)

const tenantColumns = `tenant_id, name, is_active, expires_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTenant(row pgx.Row) (domain.Tenant, error) {
	var t domain.Tenant
	var expiresAt sql.NullTime
	err := row.Scan(
		&t.TenantID,
		&t.Name,
		&t.IsActive,
		&expiresAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return t, err
	}
	if expiresAt.Valid {
		t.ExpiresAt = &expiresAt.Time
	}
	return t, nil
}

// SaveTenant inserts a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	var expiresAt sql.NullTime
	if tenant.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *tenant.ExpiresAt, Valid: true}
	}

	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		tenant.TenantID,
		tenant.Name,
		tenant.IsActive,
		expiresAt,
		tenant.CreatedAt,
		tenant.CreatedBy,
		tenant.LastUpdatedAt,
		tenant.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant %s: %w", tenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves one tenant.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`
	t, err := scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	return &t, nil
}

// ListTenants retrieves a paginated list of tenants.
func (r *PgxTenantRepository) ListTenants(ctx context.Context, limit, offset int) ([]domain.Tenant, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}

// UpdateTenant persists editable tenant fields.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	var expiresAt sql.NullTime
	if tenant.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *tenant.ExpiresAt, Valid: true}
	}

	query := `
		UPDATE tenants
		SET name = $1, is_active = $2, expires_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		tenant.Name,
		tenant.IsActive,
		expiresAt,
		tenant.LastUpdatedAt,
		tenant.LastUpdatedBy,
		tenant.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant %s: %w", tenant.TenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateExpired marks tenants with expires_at before now as inactive and
// returns how many rows changed.
func (r *PgxTenantRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE tenants
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE is_active = TRUE AND expires_at IS NOT NULL AND expires_at < $1;
	`
	tag, err := r.Pool.Exec(ctx, query, now, domain.SystemUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired tenants: %w", err)
	}
	return tag.RowsAffected(), nil
}
