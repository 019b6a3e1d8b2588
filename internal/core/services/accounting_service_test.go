package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/core/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

type AccountingServiceTestSuite struct {
	suite.Suite
	mockPostingRepo *MockPostingRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountingSvcFacade

	tenantID    string
	userID      string
	cashAccount domain.Account
	bankAccount domain.Account
}

func (suite *AccountingServiceTestSuite) SetupTest() {
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountingService(suite.mockPostingRepo, suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Caja Principal",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.NewFromInt(500),
	}
	suite.bankAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Banco USD",
		AccountType:  domain.Ingress,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *AccountingServiceTestSuite) balancedRequest(amount int64) dto.RegisterTransactionRequest {
	return dto.RegisterTransactionRequest{
		Date:        time.Now(),
		Description: "cash sale",
		Movements: []dto.MovementRequest{
			{AccountName: suite.cashAccount.Name, Amount: decimal.NewFromInt(amount), IsDebit: true},
			{AccountName: suite.bankAccount.Name, Amount: decimal.NewFromInt(amount), IsDebit: false},
		},
	}
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	accounts := map[string]domain.Account{
		suite.cashAccount.Name: suite.cashAccount,
		suite.bankAccount.Name: suite.bankAccount,
	}

	suite.mockPostingRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNamesForUpdate", ctx, mock.Anything, suite.tenantID,
		[]string{suite.cashAccount.Name, suite.bankAccount.Name}).Return(accounts, nil).Once()
	suite.mockPostingRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("[]domain.TransactionDetail"), (*string)(nil)).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Cash debits up, ingress credits up.
			return changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)) &&
				changes[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(100))
		}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPostingRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockPostingRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	txn, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(txn)
	suite.Equal(domain.TransactionCompleted, txn.Status)
	suite.Len(txn.Details, 2)
	suite.mockPostingRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_UnbalancedRejectedBeforeWrites() {
	ctx := context.Background()
	req := dto.RegisterTransactionRequest{
		Date:        time.Now(),
		Description: "lopsided",
		Movements: []dto.MovementRequest{
			{AccountName: suite.cashAccount.Name, Amount: decimal.NewFromInt(100), IsDebit: true},
			{AccountName: suite.bankAccount.Name, Amount: decimal.NewFromInt(90), IsDebit: false},
		},
	}

	txn, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	// Nothing may reach the database.
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_ToleranceAccepted() {
	ctx := context.Background()
	req := dto.RegisterTransactionRequest{
		Date:        time.Now(),
		Description: "rounding residue",
		Movements: []dto.MovementRequest{
			{AccountName: suite.cashAccount.Name, Amount: decimal.RequireFromString("100.0005"), IsDebit: true},
			{AccountName: suite.bankAccount.Name, Amount: decimal.NewFromInt(100), IsDebit: false},
		},
	}

	accounts := map[string]domain.Account{
		suite.cashAccount.Name: suite.cashAccount,
		suite.bankAccount.Name: suite.bankAccount,
	}
	suite.mockPostingRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNamesForUpdate", ctx, mock.Anything, suite.tenantID, mock.Anything).Return(accounts, nil).Once()
	suite.mockPostingRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.Anything, (*string)(nil)).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, mock.Anything, mock.Anything, suite.userID, mock.Anything).Return(nil).Once()
	suite.mockPostingRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockPostingRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	_, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_SaveFailureRollsBack() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	accounts := map[string]domain.Account{
		suite.cashAccount.Name: suite.cashAccount,
		suite.bankAccount.Name: suite.bankAccount,
	}
	saveErr := errors.New("insert failed")

	suite.mockPostingRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNamesForUpdate", ctx, mock.Anything, suite.tenantID, mock.Anything).Return(accounts, nil).Once()
	suite.mockPostingRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything, mock.Anything, (*string)(nil)).Return(saveErr).Once()
	suite.mockPostingRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, saveErr)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	// Only one of the two names resolves.
	accounts := map[string]domain.Account{
		suite.cashAccount.Name: suite.cashAccount,
	}
	suite.mockPostingRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNamesForUpdate", ctx, mock.Anything, suite.tenantID, mock.Anything).Return(accounts, nil).Once()
	suite.mockPostingRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestRegisterTransaction_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	inactive := suite.bankAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.cashAccount.Name: suite.cashAccount,
		suite.bankAccount.Name: inactive,
	}
	suite.mockPostingRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByNamesForUpdate", ctx, mock.Anything, suite.tenantID, mock.Anything).Return(accounts, nil).Once()
	suite.mockPostingRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RegisterTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountingServiceTestSuite) TestGetTransactionByID_LoadsDetails() {
	ctx := context.Background()
	txnID := uuid.NewString()
	header := &domain.Transaction{TransactionID: txnID, TenantID: suite.tenantID}
	details := []domain.TransactionDetail{{DetailID: uuid.NewString(), TransactionID: txnID}}

	suite.mockPostingRepo.On("FindTransactionByID", ctx, suite.tenantID, txnID).Return(header, nil).Once()
	suite.mockPostingRepo.On("FindDetailsByTransactionID", ctx, txnID).Return(details, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.tenantID, txnID)

	suite.NoError(err)
	suite.Len(txn.Details, 1)
}

func TestAccountingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingServiceTestSuite))
}

func TestAccountingService_Assertions(t *testing.T) {
	assert.NotNil(t, services.NewAccountingService(new(MockPostingRepository), new(MockAccountRepository)))
}
