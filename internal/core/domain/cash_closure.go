package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosure bounds a cash register's open/close reconciliation window.
// Open: EndDate nil. Closed: EndDate, FinalBalance, TheoreticalBalance and
// Difference set. The difference is recorded, never auto-corrected.
type CashClosure struct {
	ClosureID      string          `json:"closureID"` // Primary Key (UUID)
	TenantID       string          `json:"tenantID"`
	AccountID      string          `json:"accountID"` // Linked cash account
	StartDate      time.Time       `json:"startDate"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	// FinalBalance is the counted amount declared at close.
	FinalBalance       *decimal.Decimal `json:"finalBalance,omitempty"`
	TheoreticalBalance *decimal.Decimal `json:"theoreticalBalance,omitempty"`
	Difference         *decimal.Decimal `json:"difference,omitempty"`
	Notes              string           `json:"notes"`
	AuditFields
}

// IsOpen reports whether the closure window is still open.
func (c CashClosure) IsOpen() bool {
	return c.EndDate == nil
}
