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

// PgxOperationRepository persists exchange operations, dollar purchases and
// internal cash movements.
type PgxOperationRepository struct {
	BaseRepository
}

// newPgxOperationRepository creates a new repository for exchange operations.
func newPgxOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepositoryFacade {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOperationRepository implements portsrepo.OperationRepositoryFacade
var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

// nextOperationNumber bumps the per-tenant counter for one operation kind and
// formats the new value. The counter row lock makes concurrent allocations
// serialize, which is what keeps numbers gapless per tenant.
func (r *PgxOperationRepository) nextOperationNumber(ctx context.Context, tx pgx.Tx, tenantID, kind, prefix string) (string, error) {
	query := `
		INSERT INTO operation_counters (tenant_id, kind, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, kind) DO UPDATE SET value = operation_counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, tenantID, kind).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", kind, err)
	}
	return fmt.Sprintf("%s-%05d", prefix, value), nil
}

// NextExchangeNumber allocates the next CE-00001 style number within tx.
func (r *PgxOperationRepository) NextExchangeNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error) {
	return r.nextOperationNumber(ctx, tx, tenantID, "currency_exchange", "CE")
}

// NextPurchaseNumber allocates the next DP-00001 style number within tx.
func (r *PgxOperationRepository) NextPurchaseNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error) {
	return r.nextOperationNumber(ctx, tx, tenantID, "dollar_purchase", "DP")
}

const exchangeColumns = `exchange_id, tenant_id, number, date, client_id, broker_id, provider_id, source_account_id, destination_account_id, amount_sent, amount_received, rate, source_currency_code, dest_currency_code, provider_commission_pct, provider_commission_amount, broker_commission_pct, broker_commission_amount, platform_commission_pct, platform_commission_amount, client_commission_pct, client_commission_amount, client_commission_deferred, capital_type, investor_id, investor_profit_pct, created_at, created_by, last_updated_at, last_updated_by`

func scanExchange(row pgx.Row) (domain.CurrencyExchange, error) {
	var ex domain.CurrencyExchange
	var brokerID, providerID, sourceAccountID, investorID sql.NullString
	err := row.Scan(
		&ex.ExchangeID,
		&ex.TenantID,
		&ex.Number,
		&ex.Date,
		&ex.ClientID,
		&brokerID,
		&providerID,
		&sourceAccountID,
		&ex.DestinationAccountID,
		&ex.AmountSent,
		&ex.AmountReceived,
		&ex.Rate,
		&ex.SourceCurrencyCode,
		&ex.DestCurrencyCode,
		&ex.ProviderCommissionPct,
		&ex.ProviderCommissionAmount,
		&ex.BrokerCommissionPct,
		&ex.BrokerCommissionAmount,
		&ex.PlatformCommissionPct,
		&ex.PlatformCommissionAmount,
		&ex.ClientCommissionPct,
		&ex.ClientCommissionAmount,
		&ex.ClientCommissionDeferred,
		&ex.CapitalType,
		&investorID,
		&ex.InvestorProfitPct,
		&ex.CreatedAt,
		&ex.CreatedBy,
		&ex.LastUpdatedAt,
		&ex.LastUpdatedBy,
	)
	if err != nil {
		return ex, err
	}
	ex.BrokerID = brokerID.String
	ex.ProviderID = providerID.String
	ex.SourceAccountID = sourceAccountID.String
	ex.InvestorID = investorID.String
	return ex, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveExchangeInTx inserts a completed exchange operation within tx.
func (r *PgxOperationRepository) SaveExchangeInTx(ctx context.Context, tx pgx.Tx, exchange domain.CurrencyExchange) error {
	query := `
		INSERT INTO currency_exchanges (` + exchangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
	`
	_, err := tx.Exec(ctx, query,
		exchange.ExchangeID,
		exchange.TenantID,
		exchange.Number,
		exchange.Date,
		exchange.ClientID,
		nullIfEmpty(exchange.BrokerID),
		nullIfEmpty(exchange.ProviderID),
		nullIfEmpty(exchange.SourceAccountID),
		exchange.DestinationAccountID,
		exchange.AmountSent,
		exchange.AmountReceived,
		exchange.Rate,
		exchange.SourceCurrencyCode,
		exchange.DestCurrencyCode,
		exchange.ProviderCommissionPct,
		exchange.ProviderCommissionAmount,
		exchange.BrokerCommissionPct,
		exchange.BrokerCommissionAmount,
		exchange.PlatformCommissionPct,
		exchange.PlatformCommissionAmount,
		exchange.ClientCommissionPct,
		exchange.ClientCommissionAmount,
		exchange.ClientCommissionDeferred,
		exchange.CapitalType,
		nullIfEmpty(exchange.InvestorID),
		exchange.InvestorProfitPct,
		exchange.CreatedAt,
		exchange.CreatedBy,
		exchange.LastUpdatedAt,
		exchange.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert currency exchange %s: %w", exchange.ExchangeID, err)
	}
	return nil
}

// FindExchangeByID retrieves one exchange operation.
func (r *PgxOperationRepository) FindExchangeByID(ctx context.Context, tenantID, exchangeID string) (*domain.CurrencyExchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM currency_exchanges WHERE tenant_id = $1 AND exchange_id = $2;`
	ex, err := scanExchange(r.Pool.QueryRow(ctx, query, tenantID, exchangeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency exchange %s: %w", exchangeID, err)
	}
	return &ex, nil
}

// ListExchanges retrieves a paginated list of exchanges, newest first.
func (r *PgxOperationRepository) ListExchanges(ctx context.Context, tenantID string, limit, offset int) ([]domain.CurrencyExchange, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + exchangeColumns + `
		FROM currency_exchanges
		WHERE tenant_id = $1
		ORDER BY date DESC, number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency exchanges: %w", err)
	}
	defer rows.Close()

	exchanges := []domain.CurrencyExchange{}
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency exchange row: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency exchange rows: %w", err)
	}
	return exchanges, nil
}

const purchaseColumns = `purchase_id, tenant_id, number, date, client_id, broker_id, provider_id, source_account_id, destination_account_id, amount_sent, amount_received, buy_rate, received_rate, sent_currency_code, delivery_currency_code, provider_commission_pct, provider_commission_amount, broker_commission_pct, broker_commission_amount, platform_commission_pct, platform_commission_amount, capital_type, investor_id, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchase(row pgx.Row) (domain.DollarPurchase, error) {
	var p domain.DollarPurchase
	var brokerID, providerID, sourceAccountID, investorID sql.NullString
	err := row.Scan(
		&p.PurchaseID,
		&p.TenantID,
		&p.Number,
		&p.Date,
		&p.ClientID,
		&brokerID,
		&providerID,
		&sourceAccountID,
		&p.DestinationAccountID,
		&p.AmountSent,
		&p.AmountReceived,
		&p.BuyRate,
		&p.ReceivedRate,
		&p.SentCurrencyCode,
		&p.DeliveryCurrencyCode,
		&p.ProviderCommissionPct,
		&p.ProviderCommissionAmount,
		&p.BrokerCommissionPct,
		&p.BrokerCommissionAmount,
		&p.PlatformCommissionPct,
		&p.PlatformCommissionAmount,
		&p.CapitalType,
		&investorID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return p, err
	}
	p.BrokerID = brokerID.String
	p.ProviderID = providerID.String
	p.SourceAccountID = sourceAccountID.String
	p.InvestorID = investorID.String
	return p, nil
}

// SavePurchaseInTx inserts a dollar purchase within tx.
func (r *PgxOperationRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.DollarPurchase) error {
	query := `
		INSERT INTO dollar_purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := tx.Exec(ctx, query,
		purchase.PurchaseID,
		purchase.TenantID,
		purchase.Number,
		purchase.Date,
		purchase.ClientID,
		nullIfEmpty(purchase.BrokerID),
		nullIfEmpty(purchase.ProviderID),
		nullIfEmpty(purchase.SourceAccountID),
		purchase.DestinationAccountID,
		purchase.AmountSent,
		purchase.AmountReceived,
		purchase.BuyRate,
		purchase.ReceivedRate,
		purchase.SentCurrencyCode,
		purchase.DeliveryCurrencyCode,
		purchase.ProviderCommissionPct,
		purchase.ProviderCommissionAmount,
		purchase.BrokerCommissionPct,
		purchase.BrokerCommissionAmount,
		purchase.PlatformCommissionPct,
		purchase.PlatformCommissionAmount,
		purchase.CapitalType,
		nullIfEmpty(purchase.InvestorID),
		purchase.CreatedAt,
		purchase.CreatedBy,
		purchase.LastUpdatedAt,
		purchase.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dollar purchase %s: %w", purchase.PurchaseID, err)
	}
	return nil
}

// FindPurchaseByID retrieves one dollar purchase.
func (r *PgxOperationRepository) FindPurchaseByID(ctx context.Context, tenantID, purchaseID string) (*domain.DollarPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM dollar_purchases WHERE tenant_id = $1 AND purchase_id = $2;`
	p, err := scanPurchase(r.Pool.QueryRow(ctx, query, tenantID, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find dollar purchase %s: %w", purchaseID, err)
	}
	return &p, nil
}

// ListPurchases retrieves a paginated list of purchases, newest first.
func (r *PgxOperationRepository) ListPurchases(ctx context.Context, tenantID string, limit, offset int) ([]domain.DollarPurchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + purchaseColumns + `
		FROM dollar_purchases
		WHERE tenant_id = $1
		ORDER BY date DESC, number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query dollar purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.DollarPurchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dollar purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dollar purchase rows: %w", err)
	}
	return purchases, nil
}

const internalTxnColumns = `internal_txn_id, tenant_id, type, amount, currency_code, category, description, date, account_id, entity_type, entity_id, created_at, created_by, last_updated_at, last_updated_by`

func scanInternalTransaction(row pgx.Row) (domain.InternalTransaction, error) {
	var t domain.InternalTransaction
	var accountID, entityType, entityID sql.NullString
	err := row.Scan(
		&t.InternalTxnID,
		&t.TenantID,
		&t.Type,
		&t.Amount,
		&t.CurrencyCode,
		&t.Category,
		&t.Description,
		&t.Date,
		&accountID,
		&entityType,
		&entityID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return t, err
	}
	t.AccountID = accountID.String
	if entityType.Valid && entityID.Valid {
		t.Entity = &domain.PartyRef{Type: domain.PartyType(entityType.String), ID: entityID.String}
	}
	return t, nil
}

// SaveInternalTransactionInTx inserts an internal cash movement within tx.
func (r *PgxOperationRepository) SaveInternalTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.InternalTransaction) error {
	var entityType, entityID sql.NullString
	if txn.Entity != nil {
		entityType = sql.NullString{String: string(txn.Entity.Type), Valid: true}
		entityID = sql.NullString{String: txn.Entity.ID, Valid: true}
	}

	query := `
		INSERT INTO internal_transactions (` + internalTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		txn.InternalTxnID,
		txn.TenantID,
		txn.Type,
		txn.Amount,
		txn.CurrencyCode,
		txn.Category,
		txn.Description,
		txn.Date,
		nullIfEmpty(txn.AccountID),
		entityType,
		entityID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert internal transaction %s: %w", txn.InternalTxnID, err)
	}
	return nil
}

// ListInternalTransactions retrieves a paginated list of cash movements,
// newest first.
func (r *PgxOperationRepository) ListInternalTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.InternalTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + internalTxnColumns + `
		FROM internal_transactions
		WHERE tenant_id = $1
		ORDER BY date DESC, internal_txn_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query internal transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.InternalTransaction{}
	for rows.Next() {
		t, err := scanInternalTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan internal transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internal transaction rows: %w", err)
	}
	return txns, nil
}

// SumInternalTransactionsByEntity sums amounts of the given movement type
// recorded against a virtual entity.
func (r *PgxOperationRepository) SumInternalTransactionsByEntity(ctx context.Context, tenantID string, entity domain.PartyRef, txnType domain.InternalTransactionType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM internal_transactions
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3 AND type = $4;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, entity.Type, entity.ID, txnType).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum internal transactions for entity %s: %w", entity, err)
	}
	return total, nil
}

// SumInternalTransactionsByAccountSince sums income and expense movements
// recorded against an account after the given instant.
func (r *PgxOperationRepository) SumInternalTransactionsByAccountSince(ctx context.Context, tenantID, accountID string, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $2), 0)
		FROM internal_transactions
		WHERE tenant_id = $3 AND account_id = $4 AND date >= $5;
	`
	var income, expense decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, domain.InternalIncome, domain.InternalExpense, tenantID, accountID, since).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum internal transactions for account %s: %w", accountID, err)
	}
	return income, expense, nil
}
