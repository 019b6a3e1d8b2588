package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/core/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

type ClosureServiceTestSuite struct {
	suite.Suite
	mockClosureRepo *MockClosureRepository
	mockAccountRepo *MockAccountRepository
	mockPostingRepo *MockPostingRepository
	mockOpRepo      *MockOperationRepository
	service         portssvc.ClosureSvcFacade

	tenantID    string
	userID      string
	cashAccount domain.Account
}

func (suite *ClosureServiceTestSuite) SetupTest() {
	suite.mockClosureRepo = new(MockClosureRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockOpRepo = new(MockOperationRepository)
	suite.service = services.NewClosureService(
		suite.mockClosureRepo, suite.mockAccountRepo, suite.mockPostingRepo, suite.mockOpRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Caja Principal",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *ClosureServiceTestSuite) TestOpenClosure_Success() {
	ctx := context.Background()
	req := dto.OpenClosureRequest{
		AccountID:      suite.cashAccount.AccountID,
		InitialBalance: decimal.NewFromInt(100),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, suite.cashAccount.AccountID).
		Return(&suite.cashAccount, nil).Once()
	suite.mockClosureRepo.On("FindOpenClosureByAccount", ctx, suite.tenantID, suite.cashAccount.AccountID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosureRepo.On("SaveClosure", ctx, mock.AnythingOfType("domain.CashClosure")).Return(nil).Once()

	closure, err := suite.service.OpenClosure(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.True(closure.IsOpen())
	suite.True(closure.InitialBalance.Equal(decimal.NewFromInt(100)))
}

func (suite *ClosureServiceTestSuite) TestOpenClosure_AlreadyOpenConflicts() {
	ctx := context.Background()
	req := dto.OpenClosureRequest{AccountID: suite.cashAccount.AccountID}
	open := domain.CashClosure{ClosureID: uuid.NewString(), AccountID: suite.cashAccount.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, suite.cashAccount.AccountID).
		Return(&suite.cashAccount, nil).Once()
	suite.mockClosureRepo.On("FindOpenClosureByAccount", ctx, suite.tenantID, suite.cashAccount.AccountID).
		Return(&open, nil).Once()

	closure, err := suite.service.OpenClosure(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(closure)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveClosure", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestOpenClosure_NonCashAccountRejected() {
	ctx := context.Background()
	bank := suite.cashAccount
	bank.AccountType = domain.Ingress
	req := dto.OpenClosureRequest{AccountID: bank.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, bank.AccountID).Return(&bank, nil).Once()

	_, err := suite.service.OpenClosure(ctx, suite.tenantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosureServiceTestSuite) TestCloseClosure_RecordsDifference() {
	ctx := context.Background()
	start := time.Now().Add(-8 * time.Hour)
	closure := domain.CashClosure{
		ClosureID:      uuid.NewString(),
		TenantID:       suite.tenantID,
		AccountID:      suite.cashAccount.AccountID,
		StartDate:      start,
		InitialBalance: decimal.NewFromInt(100),
	}

	suite.mockClosureRepo.On("FindClosureByID", ctx, suite.tenantID, closure.ClosureID).
		Return(&closure, nil).Once()
	// No journal postings during the window.
	suite.mockPostingRepo.On("SumDetailMovementsSince", ctx, suite.cashAccount.AccountID, start).
		Return(decimal.Zero, decimal.Zero, nil).Once()
	// Income 150, expense 30: theoretical = 100 + 150 - 30 = 220.
	suite.mockOpRepo.On("SumInternalTransactionsByAccountSince", ctx, suite.tenantID, suite.cashAccount.AccountID, start).
		Return(decimal.NewFromInt(150), decimal.NewFromInt(30), nil).Once()

	var updated domain.CashClosure
	suite.mockClosureRepo.On("UpdateClosure", ctx, mock.AnythingOfType("domain.CashClosure")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.CashClosure) }).Return(nil).Once()

	req := dto.CloseClosureRequest{FinalBalance: decimal.NewFromInt(215)}
	result, err := suite.service.CloseClosure(ctx, suite.tenantID, closure.ClosureID, req, suite.userID)

	suite.NoError(err)
	suite.False(result.IsOpen())
	suite.True(updated.TheoreticalBalance.Equal(decimal.NewFromInt(220)))
	suite.True(updated.Difference.Equal(decimal.NewFromInt(-5)))
	// The shortfall is recorded, not corrected.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestCloseClosure_AlreadyClosedConflicts() {
	ctx := context.Background()
	end := time.Now()
	closure := domain.CashClosure{
		ClosureID: uuid.NewString(),
		TenantID:  suite.tenantID,
		AccountID: suite.cashAccount.AccountID,
		EndDate:   &end,
	}

	suite.mockClosureRepo.On("FindClosureByID", ctx, suite.tenantID, closure.ClosureID).
		Return(&closure, nil).Once()

	_, err := suite.service.CloseClosure(ctx, suite.tenantID, closure.ClosureID,
		dto.CloseClosureRequest{FinalBalance: decimal.NewFromInt(10)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestClosureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosureServiceTestSuite))
}
