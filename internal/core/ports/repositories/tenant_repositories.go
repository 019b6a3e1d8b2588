package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// TenantRepository defines persistence operations for tenants.
type TenantRepository interface {
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	ListTenants(ctx context.Context, limit, offset int) ([]domain.Tenant, error)

	UpdateTenant(ctx context.Context, tenant domain.Tenant) error

	// DeactivateExpired marks tenants with expires_at before now as inactive
	// and returns how many rows changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
