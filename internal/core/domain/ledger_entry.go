package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Settlement transition errors.
var (
	ErrNonPositivePayment    = errors.New("payment amount must be positive")
	ErrEntryAlreadyPaid      = errors.New("ledger entry is already settled")
	ErrPaymentExceedsPending = errors.New("payment exceeds pending amount")
)

// EntryType distinguishes payable obligations (the house owes the entity)
// from receivables (the entity owes the house).
type EntryType string

const (
	EntryPayable    EntryType = "payable"
	EntryReceivable EntryType = "receivable"
)

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntryPaid    EntryStatus = "paid"
)

// OperationType identifies the kind of exchange operation that originated a
// ledger entry. Entries created manually carry no operation reference.
type OperationType string

const (
	OpCurrencyExchange OperationType = "currency_exchange"
	OpDollarPurchase   OperationType = "dollar_purchase"
)

// OperationRef links a ledger entry to the operation that created it.
type OperationRef struct {
	Type OperationType `json:"type"`
	ID   string        `json:"id"`
}

// LedgerEntry is a payable or receivable obligation tracked independently of
// the double-entry ledger. Entries are never deleted (audit requirement);
// settlement happens through ApplyPayment.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	TenantID       string          `json:"tenantID"`
	Type           EntryType       `json:"type"`
	Status         EntryStatus     `json:"status"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	CurrencyCode   string          `json:"currencyCode"`
	Entity         PartyRef        `json:"entity"`           // Who owes / is owed
	Source         *OperationRef   `json:"source,omitempty"` // Originating operation, nil for manual entries
	Description    string          `json:"description"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	// AccrualPeriod is set ("YYYY-MM") only on interest entries generated by
	// the accrual job; unique per (investor, period, currency).
	AccrualPeriod string `json:"accrualPeriod,omitempty"`
	AuditFields
}

// ApplyPayment is the single settlement transition used by both the full and
// the partial payment paths. It returns a copy with the payment applied;
// status flips to paid exactly when payments cover the original amount.
// Payments may never exceed the pending amount.
func (e LedgerEntry) ApplyPayment(amount decimal.Decimal) (LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return e, ErrNonPositivePayment
	}
	if e.Status == EntryPaid {
		return e, ErrEntryAlreadyPaid
	}
	if amount.GreaterThan(e.PendingAmount) {
		return e, ErrPaymentExceedsPending
	}

	e.PaidAmount = e.PaidAmount.Add(amount)
	e.PendingAmount = e.OriginalAmount.Sub(e.PaidAmount)
	if e.PaidAmount.GreaterThanOrEqual(e.OriginalAmount) {
		e.Status = EntryPaid
	}
	return e, nil
}

// LedgerPayment records one partial or full settlement against a LedgerEntry.
type LedgerPayment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	EntryID     string          `json:"entryID"`
	TenantID    string          `json:"tenantID"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID"` // Funding source (payable) or deposit target (receivable)
	UserID      string          `json:"userID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Description string          `json:"description"`
	AuditFields
}

// LedgerEntryFilter composes optional AND filters for listing entries.
type LedgerEntryFilter struct {
	Type       *EntryType
	Status     *EntryStatus
	EntityType *PartyType
	EntityID   *string
	DateFrom   *time.Time
	DateTo     *time.Time
}
