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

// PgxAPITokenRepository persists API tokens.
type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new repository for API token data.
func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAPITokenRepository implements portsrepo.APITokenRepository
var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

const apiTokenColumns = `id, user_id, name, token_hash, last_used_at, expires_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAPIToken(row pgx.Row) (domain.APIToken, error) {
	var t domain.APIToken
	var lastUsedAt, expiresAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.TokenHash,
		&lastUsedAt,
		&expiresAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return t, err
	}
	if lastUsedAt.Valid {
		t.LastUsedAt = &lastUsedAt.Time
	}
	if expiresAt.Valid {
		t.ExpiresAt = &expiresAt.Time
	}
	return t, nil
}

// Create inserts a new API token.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	var expiresAt sql.NullTime
	if token.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *token.ExpiresAt, Valid: true}
	}

	query := `
		INSERT INTO api_tokens (id, user_id, name, token_hash, expires_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Name,
		token.TokenHash,
		expiresAt,
		token.CreatedAt,
		token.CreatedBy,
		token.LastUpdatedAt,
		token.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert api token %s: %w", token.ID, err)
	}
	return nil
}

// FindByID retrieves one token by ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE id = $1;`
	t, err := scanAPIToken(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token %s: %w", id, err)
	}
	return &t, nil
}

// FindByUserID retrieves all tokens owned by a user.
func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api tokens for user %s: %w", userID, err)
	}
	defer rows.Close()

	tokens := []domain.APIToken{}
	for rows.Next() {
		t, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api token row: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api token rows: %w", err)
	}
	return tokens, nil
}

// FindByTokenHash looks a token up by its stored hash during auth.
func (r *PgxAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE token_hash = $1;`
	t, err := scanAPIToken(r.Pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token by hash: %w", err)
	}
	return &t, nil
}

// Update persists mutable token fields (name, last used, expiry).
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	var lastUsedAt, expiresAt sql.NullTime
	if token.LastUsedAt != nil {
		lastUsedAt = sql.NullTime{Time: *token.LastUsedAt, Valid: true}
	}
	if token.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *token.ExpiresAt, Valid: true}
	}

	query := `
		UPDATE api_tokens
		SET name = $1, last_used_at = $2, expires_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		token.Name,
		lastUsedAt,
		expiresAt,
		token.LastUpdatedAt,
		token.LastUpdatedBy,
		token.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update api token %s: %w", token.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a token.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete api token %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes tokens expired before the given instant.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1;`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired api tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
