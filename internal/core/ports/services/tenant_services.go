package services

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// TenantSvcFacade manages exchange-house organizations.
type TenantSvcFacade interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	ListTenants(ctx context.Context, params dto.ListParams) ([]domain.Tenant, error)

	UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error)

	// ConfirmPayment reactivates a tenant and extends its paid period once an
	// external payment settles.
	ConfirmPayment(ctx context.Context, tenantID string, req dto.ConfirmTenantPaymentRequest) (*domain.Tenant, error)

	// DeactivateExpired sweeps tenants whose paid period ended.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
