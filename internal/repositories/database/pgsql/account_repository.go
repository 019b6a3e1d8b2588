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
	"github.com/shopspring/decimal"
)

// PgxAccountRepository implements account persistence using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, name, account_type, currency_code, description, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.TenantID,
		&acc.Name,
		&acc.AccountType,
		&acc.CurrencyCode,
		&acc.Description,
		&acc.IsActive,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	return acc, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.Description,
		account.IsActive,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account name %s already exists in tenant", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves a single account by its ID within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByName resolves an account by its tenant-scoped name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND name = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by name %s: %w", name, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Not every requested ID is guaranteed to be present; the caller checks.
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of active accounts for a tenant.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount persists editable account fields. Balance is never written
// here; it only moves inside posting transactions.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND account_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		account.Description,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.TenantID,
		account.AccountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account name %s already exists in tenant", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3 AND account_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate selects one account FOR UPDATE within tx.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = $2
		FOR UPDATE;
	`
	acc, err := scanAccount(tx.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountsByNamesForUpdate selects accounts by tenant-scoped name FOR
// UPDATE within tx. Names are sorted before locking so concurrent postings
// acquire row locks in the same order.
func (r *PgxAccountRepository) FindAccountsByNamesForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, names []string) (map[string]domain.Account, error) {
	if len(names) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND name = ANY($2)
		ORDER BY name
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID, names)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts by name: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[acc.Name] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, name := range names {
		if _, ok := accountsMap[name]; !ok {
			return nil, fmt.Errorf("%w: account %q", apperrors.ErrNotFound, name)
		}
	}
	return accountsMap, nil
}

// AdjustAccountBalanceInTx applies a signed delta to one account balance.
func (r *PgxAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	tag, err := tx.Exec(ctx, query, delta, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalancesInTx applies signed deltas keyed by account ID using a
// single batch.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(query, delta, now, userID, accountID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range balanceChanges {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply balance change: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
