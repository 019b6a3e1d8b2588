package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor is a capital provider. Its balance is computed, never stored:
// historic capital is the larger of the income internal-transaction sum and
// the payable original-amount sum, and available balance subtracts expenses.
type Investor struct {
	InvestorID   string          `json:"investorID"` // Primary Key (UUID)
	TenantID     string          `json:"tenantID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	InterestRate decimal.Decimal `json:"interestRate"` // Monthly percentage, e.g. 5 => 5%
	PayoutDay    int             `json:"payoutDay"`    // Day of month interest accrues
	IsActive     bool            `json:"isActive"`
	// LastInterestDate gates duplicate accrual within a calendar month.
	LastInterestDate *time.Time `json:"lastInterestDate,omitempty"`
	AuditFields
}

// InvestorBalance is the computed capital position of an investor.
type InvestorBalance struct {
	InvestorID       string          `json:"investorID"`
	CapitalHistoric  decimal.Decimal `json:"capitalHistoric"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}
