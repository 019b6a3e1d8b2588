package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a signed JWT carrying tenant and role claims.
func (suite *AccountHandlerTestSuite) generateTestToken(role domain.UserRole) string {
	claims := middleware.AuthClaims{
		TenantID: suite.tenantID,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "exchange-test",
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url, body string, role domain.UserRole) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(role))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	accountID := uuid.NewString()
	expected := &domain.Account{
		AccountID:    accountID,
		TenantID:     suite.tenantID,
		Name:         "Caja Principal",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.NewFromInt(1500),
	}

	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, suite.tenantID, accountID,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, "", domain.RoleReadOnly)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err)
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(1500)))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, suite.tenantID, accountID,
	).Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, "", domain.RoleMember)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	body := `{"name":"Caja USD","accountType":"CASH","currencyCode":"USD"}`
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Caja USD",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Name == "Caja USD" && req.AccountType == domain.Cash
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body, domain.RoleMember)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ReadOnlyRoleForbidden() {
	body := `{"name":"Caja USD","accountType":"CASH","currencyCode":"USD"}`

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body, domain.RoleReadOnly)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateName() {
	body := `{"name":"Caja USD","accountType":"CASH","currencyCode":"USD"}`

	suite.mockAccountService.On("CreateAccount",
		mock.Anything, suite.tenantID, mock.Anything, suite.userID,
	).Return(nil, fmt.Errorf("%w: account name already exists in tenant", apperrors.ErrDuplicate)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body, domain.RoleAdmin)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
