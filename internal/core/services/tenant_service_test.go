package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/core/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	service        portssvc.TenantSvcFacade

	tenant domain.Tenant
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.service = services.NewTenantService(suite.mockTenantRepo)

	expired := time.Now().Add(-24 * time.Hour)
	suite.tenant = domain.Tenant{
		TenantID:  uuid.NewString(),
		Name:      "Casa de Cambio Norte",
		IsActive:  false,
		ExpiresAt: &expired,
	}
}

func (suite *TenantServiceTestSuite) TestConfirmPayment_ReactivatesAndExtends() {
	ctx := context.Background()
	paidThrough := time.Now().Add(30 * 24 * time.Hour)
	req := dto.ConfirmTenantPaymentRequest{PaidThrough: paidThrough, Reference: "pay-123"}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenant.TenantID).Return(&suite.tenant, nil).Once()

	var updated domain.Tenant
	suite.mockTenantRepo.On("UpdateTenant", ctx, mock.AnythingOfType("domain.Tenant")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Tenant) }).Return(nil).Once()

	tenant, err := suite.service.ConfirmPayment(ctx, suite.tenant.TenantID, req)

	suite.NoError(err)
	suite.True(tenant.IsActive)
	suite.True(updated.IsActive)
	suite.True(updated.ExpiresAt.Equal(paidThrough))
}

func (suite *TenantServiceTestSuite) TestConfirmPayment_CannotShortenPeriod() {
	ctx := context.Background()
	future := time.Now().Add(60 * 24 * time.Hour)
	suite.tenant.ExpiresAt = &future
	req := dto.ConfirmTenantPaymentRequest{PaidThrough: time.Now(), Reference: "pay-124"}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenant.TenantID).Return(&suite.tenant, nil).Once()

	_, err := suite.service.ConfirmPayment(ctx, suite.tenant.TenantID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "UpdateTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestDeactivateExpired_ReturnsCount() {
	ctx := context.Background()
	now := time.Now()
	suite.mockTenantRepo.On("DeactivateExpired", ctx, now).Return(int64(3), nil).Once()

	count, err := suite.service.DeactivateExpired(ctx, now)

	suite.NoError(err)
	suite.Equal(int64(3), count)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
