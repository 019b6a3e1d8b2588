package pgsql

import (
	"context"
	"fmt"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository serves read-only aggregate queries for reports.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ExchangeTotals aggregates completed exchange operations by source currency.
func (r *reportingRepository) ExchangeTotals(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.ExchangeTotals, error) {
	query := `
		SELECT
			source_currency_code,
			COUNT(*),
			COALESCE(SUM(amount_sent), 0),
			COALESCE(SUM(amount_received), 0),
			COALESCE(SUM(provider_commission_amount + broker_commission_amount + platform_commission_amount + client_commission_amount), 0)
		FROM currency_exchanges
		WHERE tenant_id = $1 AND date >= $2 AND date <= $3
		GROUP BY source_currency_code
		ORDER BY source_currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.ExchangeTotals{}
	for rows.Next() {
		var t domain.ExchangeTotals
		err := rows.Scan(
			&t.CurrencyCode,
			&t.OperationCount,
			&t.TotalSent,
			&t.TotalReceived,
			&t.TotalCommissions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange totals rows: %w", err)
	}
	return totals, nil
}

// InternalTransactionTotals aggregates cash movements by currency and type.
func (r *reportingRepository) InternalTransactionTotals(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.InternalTransactionTotals, error) {
	query := `
		SELECT currency_code, type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM internal_transactions
		WHERE tenant_id = $1 AND date >= $2 AND date <= $3
		GROUP BY currency_code, type
		ORDER BY currency_code, type;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query internal transaction totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.InternalTransactionTotals{}
	for rows.Next() {
		var t domain.InternalTransactionTotals
		if err := rows.Scan(&t.CurrencyCode, &t.Type, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan internal transaction totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internal transaction totals rows: %w", err)
	}
	return totals, nil
}

// LedgerTotals aggregates obligations by currency, type and status.
func (r *reportingRepository) LedgerTotals(ctx context.Context, tenantID string) ([]domain.LedgerTotals, error) {
	query := `
		SELECT
			currency_code,
			type,
			status,
			COALESCE(SUM(original_amount), 0),
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(pending_amount), 0)
		FROM ledger_entries
		WHERE tenant_id = $1
		GROUP BY currency_code, type, status
		ORDER BY currency_code, type, status;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.LedgerTotals{}
	for rows.Next() {
		var t domain.LedgerTotals
		err := rows.Scan(
			&t.CurrencyCode,
			&t.Type,
			&t.Status,
			&t.Original,
			&t.Paid,
			&t.Pending,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger totals rows: %w", err)
	}
	return totals, nil
}
