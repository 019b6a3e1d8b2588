package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the accounting class of an account.
// Master account types (ReceivableMaster/PayableMaster) aggregate a whole
// obligation class for the tenant; the rest are regular ledger accounts.
type AccountType string

const (
	Cash             AccountType = "CASH"
	ReceivableMaster AccountType = "CXC"
	PayableMaster    AccountType = "CXP"
	Ingress          AccountType = "INGRESS"
	Egress           AccountType = "EGRESS"
	Equity           AccountType = "EQUITY"
	Asset            AccountType = "ASSET"
	Liability        AccountType = "LIABILITY"
)

// Account represents a named ledger account scoped to a tenant.
// Balance is a denormalized cache: it is only ever mutated by repository code
// inside the same database transaction that records the movement causing the
// change (a TransactionDetail or an InternalTransaction row).
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	TenantID     string          `json:"tenantID"`     // FK -> tenants.tenant_id (NOT NULL)
	Name         string          `json:"name"`         // Unique per tenant
	AccountType  AccountType     `json:"accountType"`  // CASH, CXC, CXP, ...
	CurrencyCode string          `json:"currencyCode"` // FK -> currencies.code
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}
