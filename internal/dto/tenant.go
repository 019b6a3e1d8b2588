package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// CreateTenantRequest registers a new exchange-house organization.
type CreateTenantRequest struct {
	Name      string     `json:"name" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// UpdateTenantRequest updates tenant details.
type UpdateTenantRequest struct {
	Name      *string    `json:"name"`
	IsActive  *bool      `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ConfirmTenantPaymentRequest is the payload the payment webhook translator
// posts once an external payment settles.
type ConfirmTenantPaymentRequest struct {
	PaidThrough time.Time `json:"paidThrough" binding:"required"`
	Reference   string    `json:"reference" binding:"required"`
}

// TenantResponse mirrors domain.Tenant.
type TenantResponse struct {
	TenantID  string     `json:"tenantID"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to its DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:  t.TenantID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
