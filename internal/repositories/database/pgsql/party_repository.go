package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPartyRepository persists counterparty records.
type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for counterparty data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepository {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepository
var _ portsrepo.PartyRepository = (*PgxPartyRepository)(nil)

const partyColumns = `party_id, tenant_id, type, name, email, phone, default_commission_pct, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanParty(row pgx.Row) (domain.Party, error) {
	var p domain.Party
	err := row.Scan(
		&p.PartyID,
		&p.TenantID,
		&p.Type,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.DefaultCommissionPct,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveParty inserts a new counterparty.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		party.PartyID,
		party.TenantID,
		party.Type,
		party.Name,
		party.Email,
		party.Phone,
		party.DefaultCommissionPct,
		party.IsActive,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert party %s: %w", party.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves one counterparty within a tenant.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, tenantID, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE tenant_id = $1 AND party_id = $2;`
	p, err := scanParty(r.Pool.QueryRow(ctx, query, tenantID, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return &p, nil
}

// ListParties retrieves a paginated list of counterparties, optionally
// filtered by type.
func (r *PgxPartyRepository) ListParties(ctx context.Context, tenantID string, partyType *domain.PartyType, limit, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE tenant_id = $1 AND ($2::text IS NULL OR type = $2)
		ORDER BY name
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, partyType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}
	return parties, nil
}

// UpdateParty persists editable counterparty fields.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $1, email = $2, phone = $3, default_commission_pct = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND party_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		party.Name,
		party.Email,
		party.Phone,
		party.DefaultCommissionPct,
		party.IsActive,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
		party.TenantID,
		party.PartyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", party.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateParty soft-deletes a counterparty.
func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, tenantID, partyID, userID string, now time.Time) error {
	query := `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3 AND party_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, tenantID, partyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
