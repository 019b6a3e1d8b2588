package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeTotals aggregates completed exchange operations for a period.
type ExchangeTotals struct {
	CurrencyCode        string          `json:"currencyCode"`
	OperationCount      int64           `json:"operationCount"`
	TotalSent           decimal.Decimal `json:"totalSent"`
	TotalReceived       decimal.Decimal `json:"totalReceived"`
	TotalCommissions    decimal.Decimal `json:"totalCommissions"`
}

// InternalTransactionTotals aggregates cash movements by type.
type InternalTransactionTotals struct {
	CurrencyCode string          `json:"currencyCode"`
	Type         InternalTransactionType `json:"type"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// LedgerTotals aggregates obligations by type and status.
type LedgerTotals struct {
	CurrencyCode string          `json:"currencyCode"`
	Type         EntryType       `json:"type"`
	Status       EntryStatus     `json:"status"`
	Original     decimal.Decimal `json:"original"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// ReportPeriod bounds a reporting query.
type ReportPeriod struct {
	From time.Time
	To   time.Time
}
