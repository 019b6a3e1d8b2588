package domain

import "time"

// Tenant is an isolated exchange-house organization. Every tenant-scoped
// entity carries its TenantID; repositories always filter by it.
type Tenant struct {
	TenantID string `json:"tenantID"` // Primary Key (UUID)
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	// ExpiresAt is the end of the paid period; the daily sweep deactivates
	// tenants past it. An external payment confirmation extends it.
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}
