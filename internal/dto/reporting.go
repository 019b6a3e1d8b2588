package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// ReportPeriodParams bound the reporting queries.
type ReportPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ToPeriod converts query params to the domain period.
func (p ReportPeriodParams) ToPeriod() domain.ReportPeriod {
	return domain.ReportPeriod{From: p.From, To: p.To}
}

// ExchangeReportResponse wraps exchange totals per currency.
type ExchangeReportResponse struct {
	Totals []domain.ExchangeTotals `json:"totals"`
}

// InternalTransactionReportResponse wraps cash movement totals.
type InternalTransactionReportResponse struct {
	Totals []domain.InternalTransactionTotals `json:"totals"`
}

// LedgerReportResponse wraps obligation totals.
type LedgerReportResponse struct {
	Totals []domain.LedgerTotals `json:"totals"`
}
