package services_test

import (
	"context"
	"strings"
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
	"github.com/cambiosoft/exchange_backend/internal/utils"
)

type APITokenServiceTestSuite struct {
	suite.Suite
	mockTokenRepo *MockAPITokenRepository
	service       portssvc.APITokenSvcFacade

	userID string
}

func (suite *APITokenServiceTestSuite) SetupTest() {
	suite.mockTokenRepo = new(MockAPITokenRepository)
	suite.service = services.NewAPITokenService(suite.mockTokenRepo)
	suite.userID = uuid.NewString()
}

func (suite *APITokenServiceTestSuite) TestCreateToken_StoresHashReturnsPlaintextOnce() {
	ctx := context.Background()

	var saved *domain.APIToken
	suite.mockTokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.APIToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.APIToken) }).Return(nil).Once()

	resp, err := suite.service.CreateToken(ctx, suite.userID, dto.CreateAPITokenRequest{Name: "ci"})

	suite.NoError(err)
	suite.True(strings.HasPrefix(resp.PlainToken, services.TokenPrefix))
	suite.NotEqual(resp.PlainToken, saved.TokenHash)
	suite.Equal(utils.HashToken(resp.PlainToken), saved.TokenHash)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_RoundTrip() {
	ctx := context.Background()

	var saved *domain.APIToken
	suite.mockTokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.APIToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.APIToken) }).Return(nil).Once()
	resp, err := suite.service.CreateToken(ctx, suite.userID, dto.CreateAPITokenRequest{Name: "ci"})
	suite.Require().NoError(err)

	suite.mockTokenRepo.On("FindByTokenHash", ctx, saved.TokenHash).Return(saved, nil).Once()
	suite.mockTokenRepo.On("Update", ctx, mock.AnythingOfType("*domain.APIToken")).Return(nil).Once()

	token, err := suite.service.ValidateToken(ctx, resp.PlainToken)

	suite.NoError(err)
	suite.Equal(suite.userID, token.UserID)
	suite.NotNil(token.LastUsedAt)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_ExpiredRejected() {
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	plain := services.TokenPrefix + "deadbeef"
	stored := &domain.APIToken{
		ID:        uuid.NewString(),
		UserID:    suite.userID,
		TokenHash: utils.HashToken(plain),
		ExpiresAt: &past,
	}

	suite.mockTokenRepo.On("FindByTokenHash", ctx, stored.TokenHash).Return(stored, nil).Once()

	_, err := suite.service.ValidateToken(ctx, plain)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestValidateToken_MissingPrefixRejected() {
	_, err := suite.service.ValidateToken(context.Background(), "plain-looking-token")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "FindByTokenHash", mock.Anything, mock.Anything)
}

func (suite *APITokenServiceTestSuite) TestRevokeToken_OtherOwnerHidden() {
	ctx := context.Background()
	stored := &domain.APIToken{ID: uuid.NewString(), UserID: uuid.NewString()}

	suite.mockTokenRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()

	err := suite.service.RevokeToken(ctx, suite.userID, stored.ID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func TestAPITokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(APITokenServiceTestSuite))
}
