package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

// tenantService manages exchange-house organizations and their paid periods.
type tenantService struct {
	tenantRepo portsrepo.TenantRepository
}

// NewTenantService creates the tenant service.
func NewTenantService(tenantRepo portsrepo.TenantRepository) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant registers an organization.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID:  uuid.NewString(),
		Name:      req.Name,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID))
	return &tenant, nil
}

// GetTenantByID retrieves one tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// ListTenants returns a page of tenants.
func (s *tenantService) ListTenants(ctx context.Context, params dto.ListParams) ([]domain.Tenant, error) {
	return s.tenantRepo.ListTenants(ctx, params.Limit, params.Offset)
}

// UpdateTenant patches tenant details.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		tenant.ExpiresAt = req.ExpiresAt
	}
	tenant.LastUpdatedAt = time.Now().UTC()
	tenant.LastUpdatedBy = userID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

// ConfirmPayment reactivates the tenant and extends its paid period. The
// payment itself settles on an external platform; only the confirmation
// reaches this API.
func (s *tenantService) ConfirmPayment(ctx context.Context, tenantID string, req dto.ConfirmTenantPaymentRequest) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.ExpiresAt != nil && req.PaidThrough.Before(*tenant.ExpiresAt) {
		return nil, fmt.Errorf("%w: paidThrough %s precedes current expiry %s",
			apperrors.ErrValidation, req.PaidThrough.Format(time.DateOnly), tenant.ExpiresAt.Format(time.DateOnly))
	}

	now := time.Now().UTC()
	paidThrough := req.PaidThrough
	tenant.IsActive = true
	tenant.ExpiresAt = &paidThrough
	tenant.LastUpdatedAt = now
	tenant.LastUpdatedBy = domain.SystemUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	logger.Info("Tenant payment confirmed",
		slog.String("tenant_id", tenantID),
		slog.String("reference", req.Reference),
		slog.Time("paid_through", paidThrough))
	return tenant, nil
}

// DeactivateExpired sweeps tenants whose paid period ended.
func (s *tenantService) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.tenantRepo.DeactivateExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired tenants: %w", err)
	}
	if count > 0 {
		logger.Info("Expired tenants deactivated", slog.Int64("count", count))
	}
	return count, nil
}
