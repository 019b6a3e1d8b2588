package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a journal-entry header.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCanceled  TransactionStatus = "CANCELED"
	TransactionDraft     TransactionStatus = "DRAFT"
)

// Transaction is an immutable-once-created journal entry header.
// It owns a balanced set of TransactionDetail rows.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	TenantID      string            `json:"tenantID"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	ReferenceCode string            `json:"referenceCode"` // Unique; auto-generated UUID if absent
	Status        TransactionStatus `json:"status"`
	Details       []TransactionDetail `json:"details,omitempty"` // Usually loaded separately
	AuditFields
}

// TransactionDetail is one leg of a double-entry posting.
// Amount is always stored positive; IsDebit carries the polarity.
type TransactionDetail struct {
	DetailID      string          `json:"detailID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"` // > 0
	IsDebit       bool            `json:"isDebit"`
	AuditFields
}

// Movement is the caller-facing input for one posting leg: the account is
// addressed by its tenant-scoped name, not its ID.
type Movement struct {
	AccountName string
	Amount      decimal.Decimal
	IsDebit     bool
}
