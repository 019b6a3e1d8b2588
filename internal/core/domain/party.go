package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartyType is the discriminant of the tagged union over every entity kind
// that can owe, or be owed by, the house.
type PartyType string

const (
	PartyProvider PartyType = "provider"
	PartyBroker   PartyType = "broker"
	PartyClient   PartyType = "client"
	PartyInvestor PartyType = "investor"
	PartyEmployee PartyType = "employee"
	// PartyPlatform is the software platform itself as a commission
	// beneficiary of exchange operations.
	PartyPlatform PartyType = "platform"
)

// PlatformPartyID is the fixed identifier for platform commission entries;
// the platform is not a row in the parties table.
const PlatformPartyID = "platform"

// ValidPartyType reports whether t is one of the known party kinds.
func ValidPartyType(t PartyType) bool {
	switch t {
	case PartyProvider, PartyBroker, PartyClient, PartyInvestor, PartyEmployee, PartyPlatform:
		return true
	}
	return false
}

// PartyRef identifies a counterparty: who owes or is owed.
// Investor refs point at the investors table; all other kinds at parties.
type PartyRef struct {
	Type PartyType `json:"type"`
	ID   string    `json:"id"`
}

func (p PartyRef) String() string {
	return fmt.Sprintf("%s:%s", p.Type, p.ID)
}

// IsZero reports whether the reference is unset.
func (p PartyRef) IsZero() bool {
	return p.Type == "" && p.ID == ""
}

// Party is a counterparty record (provider, broker, client or employee).
// Investors have their own entity since they carry interest terms.
type Party struct {
	PartyID              string          `json:"partyID"` // Primary Key (UUID)
	TenantID             string          `json:"tenantID"`
	Type                 PartyType       `json:"type"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	DefaultCommissionPct decimal.Decimal `json:"defaultCommissionPct"` // Percentage, e.g. 1.5
	IsActive             bool            `json:"isActive"`
	AuditFields
}
