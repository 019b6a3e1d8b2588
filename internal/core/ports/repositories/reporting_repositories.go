package repositories

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries for reports.
type ReportingRepository interface {
	ExchangeTotals(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.ExchangeTotals, error)

	InternalTransactionTotals(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.InternalTransactionTotals, error)

	LedgerTotals(ctx context.Context, tenantID string) ([]domain.LedgerTotals, error)
}
