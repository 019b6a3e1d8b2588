package services_test

import (
	"context"
	"testing"

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

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade

	tenantID string
	user     domain.User
	password string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)

	suite.tenantID = uuid.NewString()
	suite.password = "correct horse battery"
	hash, err := utils.HashPassword(suite.password)
	suite.Require().NoError(err)

	suite.user = domain.User{
		UserID:       uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Operator",
		Username:     "operator",
		PasswordHash: hash,
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "New User",
		Username: "newuser",
		Password: "a strong password",
		Role:     domain.RoleMember,
	}

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.tenantID, req, suite.user.UserID)

	suite.NoError(err)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, suite.user.Username).Return(&suite.user, nil).Once()

	user, err := suite.service.Authenticate(ctx, suite.user.Username, suite.password)

	suite.NoError(err)
	suite.Equal(suite.user.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, suite.user.Username).Return(&suite.user, nil).Once()

	user, err := suite.service.Authenticate(ctx, suite.user.Username, "wrong")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUserSameError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthorizeUserAction_WrongTenant() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(&suite.user, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.user.UserID, uuid.NewString(), domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthorizeUserAction_ReadOnlyCannotWrite() {
	ctx := context.Background()
	readonly := suite.user
	readonly.Role = domain.RoleReadOnly
	suite.mockUserRepo.On("FindUserByID", ctx, readonly.UserID).Return(&readonly, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, readonly.UserID, suite.tenantID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthorizeUserAction_MemberCanWrite() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(&suite.user, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.user.UserID, suite.tenantID, domain.RoleMember)

	suite.NoError(err)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
