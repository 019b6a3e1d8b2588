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

type OperationsServiceTestSuite struct {
	suite.Suite
	mockOpRepo       *MockOperationRepository
	mockAccountRepo  *MockAccountRepository
	mockLedgerRepo   *MockLedgerRepository
	mockPartyRepo    *MockPartyRepository
	mockInvestorRepo *MockInvestorRepository
	service          portssvc.OperationsSvcFacade

	tenantID    string
	userID      string
	sourceAcc   domain.Account
	destAcc     domain.Account
	providerID  string
	brokerID    string
	clientID    string
}

func (suite *OperationsServiceTestSuite) SetupTest() {
	suite.mockOpRepo = new(MockOperationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockInvestorRepo = new(MockInvestorRepository)
	suite.service = services.NewOperationsService(
		suite.mockOpRepo, suite.mockAccountRepo, suite.mockLedgerRepo,
		suite.mockPartyRepo, suite.mockInvestorRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.providerID = uuid.NewString()
	suite.brokerID = uuid.NewString()
	suite.clientID = uuid.NewString()

	suite.sourceAcc = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Caja VES",
		AccountType:  domain.Cash,
		CurrencyCode: "VES",
		IsActive:     true,
		Balance:      decimal.NewFromInt(100000),
	}
	suite.destAcc = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Banco USD",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.NewFromInt(2000),
	}
}

func (suite *OperationsServiceTestSuite) exchangeRequest() dto.CreateCurrencyExchangeRequest {
	return dto.CreateCurrencyExchangeRequest{
		Date:                 time.Now(),
		ClientID:             suite.clientID,
		BrokerID:             suite.brokerID,
		ProviderID:           suite.providerID,
		SourceAccountID:      suite.sourceAcc.AccountID,
		DestinationAccountID: suite.destAcc.AccountID,
		AmountSent:           decimal.NewFromInt(10000),
		AmountReceived:       decimal.NewFromInt(250),
		Rate:                 decimal.NewFromInt(40),
		SourceCurrencyCode:   "VES",
		DestCurrencyCode:     "USD",

		ProviderCommissionPct: decimal.NewFromInt(1),
		BrokerCommissionPct:   decimal.RequireFromString("0.5"),
		PlatformCommissionPct: decimal.RequireFromString("0.25"),
		ClientCommissionPct:   decimal.NewFromInt(2),

		CapitalType: domain.CapitalOwn,
	}
}

func (suite *OperationsServiceTestSuite) purchaseRequest() dto.CreateDollarPurchaseRequest {
	return dto.CreateDollarPurchaseRequest{
		Date:                  time.Now(),
		ClientID:              suite.clientID,
		ProviderID:            suite.providerID,
		SourceAccountID:       suite.sourceAcc.AccountID,
		DestinationAccountID:  suite.destAcc.AccountID,
		AmountSent:            decimal.NewFromInt(10000),
		AmountReceived:        decimal.NewFromInt(250),
		BuyRate:               decimal.NewFromInt(40),
		ReceivedRate:          decimal.NewFromInt(40),
		SentCurrencyCode:      "VES",
		DeliveryCurrencyCode:  "USD",
		ProviderCommissionPct: decimal.NewFromInt(1),
		CapitalType:           domain.CapitalOwn,
	}
}

func (suite *OperationsServiceTestSuite) TestCreateCurrencyExchange_OwnCapitalFullFlow() {
	ctx := context.Background()
	req := suite.exchangeRequest()

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockOpRepo.On("NextExchangeNumber", ctx, mock.Anything, suite.tenantID).Return("CE-00001", nil).Once()

	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.sourceAcc.AccountID).
		Return(&suite.sourceAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.sourceAcc.AccountID,
		decimal.NewFromInt(-10000), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.destAcc.AccountID,
		decimal.NewFromInt(250), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(t domain.InternalTransaction) bool {
			return t.Type == domain.InternalExpense && t.AccountID == suite.sourceAcc.AccountID
		})).Return(nil).Once()
	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(t domain.InternalTransaction) bool {
			return t.Type == domain.InternalIncome && t.AccountID == suite.destAcc.AccountID
		})).Return(nil).Once()
	suite.mockOpRepo.On("SaveExchangeInTx", ctx, mock.Anything, mock.AnythingOfType("domain.CurrencyExchange")).Return(nil).Once()

	var savedEntries []domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			savedEntries = append(savedEntries, args.Get(2).(domain.LedgerEntry))
		}).Return(nil).Times(4)

	suite.mockOpRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	exchange, err := suite.service.CreateCurrencyExchange(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Equal("CE-00001", exchange.Number)
	suite.True(exchange.ProviderCommissionAmount.Equal(decimal.NewFromInt(100)))
	suite.True(exchange.BrokerCommissionAmount.Equal(decimal.NewFromInt(50)))
	suite.True(exchange.PlatformCommissionAmount.Equal(decimal.NewFromInt(25)))
	suite.True(exchange.ClientCommissionAmount.Equal(decimal.NewFromInt(200)))

	// Three payables plus the client receivable, all in the source currency
	// and linked back to the operation.
	suite.Len(savedEntries, 4)
	byType := map[domain.PartyType]domain.LedgerEntry{}
	for _, e := range savedEntries {
		suite.Equal("VES", e.CurrencyCode)
		suite.NotNil(e.Source)
		suite.Equal(domain.OpCurrencyExchange, e.Source.Type)
		byType[e.Entity.Type] = e
	}
	suite.Equal(domain.EntryPayable, byType[domain.PartyProvider].Type)
	suite.Equal(domain.EntryPayable, byType[domain.PartyBroker].Type)
	suite.Equal(domain.EntryPayable, byType[domain.PartyPlatform].Type)
	client := byType[domain.PartyClient]
	suite.Equal(domain.EntryReceivable, client.Type)
	// Not deferred: collected as part of the operation.
	suite.Equal(domain.EntryPaid, client.Status)
	suite.True(client.PendingAmount.IsZero())

	suite.mockOpRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *OperationsServiceTestSuite) TestCreateCurrencyExchange_DeferredClientCommissionStaysPending() {
	ctx := context.Background()
	req := suite.exchangeRequest()
	req.ClientCommissionDeferred = true
	req.ProviderCommissionPct = decimal.Zero
	req.BrokerCommissionPct = decimal.Zero
	req.PlatformCommissionPct = decimal.Zero
	req.ProviderID = ""
	req.BrokerID = ""

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockOpRepo.On("NextExchangeNumber", ctx, mock.Anything, suite.tenantID).Return("CE-00002", nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.sourceAcc.AccountID).
		Return(&suite.sourceAcc, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, mock.Anything, mock.Anything, suite.userID, mock.Anything).Return(nil).Twice()
	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockOpRepo.On("SaveExchangeInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	var entry domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) { entry = args.Get(2).(domain.LedgerEntry) }).Return(nil).Once()
	suite.mockOpRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateCurrencyExchange(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.EntryReceivable, entry.Type)
	suite.Equal(domain.EntryPending, entry.Status)
	suite.True(entry.PendingAmount.Equal(decimal.NewFromInt(200)))
}

func (suite *OperationsServiceTestSuite) TestCreateCurrencyExchange_InsufficientFundsRollsBack() {
	ctx := context.Background()
	req := suite.exchangeRequest()

	poor := suite.sourceAcc
	poor.Balance = decimal.NewFromInt(500)

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("NextExchangeNumber", ctx, mock.Anything, suite.tenantID).Return("CE-00003", nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.sourceAcc.AccountID).
		Return(&poor, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	exchange, err := suite.service.CreateCurrencyExchange(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(exchange)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockOpRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationsServiceTestSuite) TestCreateCurrencyExchange_InvestorCapitalSkipsSourceAccount() {
	ctx := context.Background()
	req := suite.exchangeRequest()
	req.CapitalType = domain.CapitalInvestor
	req.InvestorID = uuid.NewString()
	req.InvestorProfitPct = decimal.NewFromInt(3)
	req.SourceAccountID = ""
	req.ProviderCommissionPct = decimal.Zero
	req.BrokerCommissionPct = decimal.Zero
	req.PlatformCommissionPct = decimal.Zero
	req.ClientCommissionPct = decimal.Zero
	req.ProviderID = ""
	req.BrokerID = ""

	investor := domain.Investor{InvestorID: req.InvestorID, TenantID: suite.tenantID, IsActive: true}
	suite.mockInvestorRepo.On("FindInvestorByID", ctx, suite.tenantID, req.InvestorID).Return(&investor, nil).Once()

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockOpRepo.On("NextExchangeNumber", ctx, mock.Anything, suite.tenantID).Return("CE-00004", nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.destAcc.AccountID,
		decimal.NewFromInt(250), suite.userID, mock.Anything).Return(nil).Once()

	// Capital outflow tracked against the investor, not an account.
	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(t domain.InternalTransaction) bool {
			return t.Type == domain.InternalExpense && t.Entity != nil &&
				t.Entity.Type == domain.PartyInvestor && t.Entity.ID == req.InvestorID
		})).Return(nil).Once()
	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(t domain.InternalTransaction) bool {
			return t.Type == domain.InternalIncome
		})).Return(nil).Once()
	suite.mockOpRepo.On("SaveExchangeInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockOpRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	exchange, err := suite.service.CreateCurrencyExchange(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Empty(exchange.SourceAccountID)
	suite.True(exchange.InvestorProfitPct.Equal(decimal.NewFromInt(3)))
	// The profit share is realized by the monthly interest accrual, never as
	// a payable on the operation itself.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	// No real account was ever debited.
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "AdjustAccountBalanceInTx", 1)
}

func (suite *OperationsServiceTestSuite) TestCreateDollarPurchase_CommissionsBookedInSentCurrency() {
	ctx := context.Background()
	req := suite.purchaseRequest()

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockOpRepo.On("NextPurchaseNumber", ctx, mock.Anything, suite.tenantID).Return("DP-00001", nil).Once()

	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.sourceAcc.AccountID).
		Return(&suite.sourceAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.sourceAcc.AccountID,
		decimal.NewFromInt(-10000), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.destAcc.AccountID,
		decimal.NewFromInt(250), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOpRepo.On("SavePurchaseInTx", ctx, mock.Anything, mock.AnythingOfType("domain.DollarPurchase")).Return(nil).Once()

	var entry domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) { entry = args.Get(2).(domain.LedgerEntry) }).Return(nil).Once()
	suite.mockOpRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	purchase, err := suite.service.CreateDollarPurchase(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Equal("DP-00001", purchase.Number)
	suite.Equal("VES", purchase.SentCurrencyCode)
	suite.True(purchase.ProviderCommissionAmount.Equal(decimal.NewFromInt(100)))

	// The commission is a percentage of the amount sent, so the payable is
	// denominated in the sent currency, same as an exchange.
	suite.Equal(domain.EntryPayable, entry.Type)
	suite.Equal("VES", entry.CurrencyCode)
	suite.True(entry.OriginalAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.PartyProvider, entry.Entity.Type)
	suite.NotNil(entry.Source)
	suite.Equal(domain.OpDollarPurchase, entry.Source.Type)

	suite.mockOpRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *OperationsServiceTestSuite) TestCreateDollarPurchase_SourceCurrencyMismatchRejected() {
	ctx := context.Background()
	req := suite.purchaseRequest()
	req.SentCurrencyCode = "USD" // source account holds VES

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOpRepo.On("NextPurchaseNumber", ctx, mock.Anything, suite.tenantID).Return("DP-00002", nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.sourceAcc.AccountID).
		Return(&suite.sourceAcc, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	purchase, err := suite.service.CreateDollarPurchase(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOpRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationsServiceTestSuite) TestProcessDebtPayment_FullSettlement() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := domain.LedgerEntry{
		EntryID:        entryID,
		TenantID:       suite.tenantID,
		Type:           domain.EntryPayable,
		Status:         domain.EntryPending,
		OriginalAmount: decimal.NewFromInt(100),
		PaidAmount:     decimal.Zero,
		PendingAmount:  decimal.NewFromInt(100),
		CurrencyCode:   "USD",
		Entity:         domain.PartyRef{Type: domain.PartyProvider, ID: suite.providerID},
	}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockLedgerRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, suite.tenantID, entryID).Return(&entry, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.destAcc.AccountID,
		decimal.NewFromInt(-100), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("UpdateEntrySettlementInTx", ctx, mock.Anything,
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Status == domain.EntryPaid && e.PendingAmount.IsZero()
		})).Return(nil).Once()
	suite.mockLedgerRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerPayment")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ProcessDebtPayment(ctx, suite.tenantID, entryID, suite.destAcc.AccountID, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.EntryPaid, updated.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *OperationsServiceTestSuite) TestProcessLedgerPayment_PartialKeepsPending() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := domain.LedgerEntry{
		EntryID:        entryID,
		TenantID:       suite.tenantID,
		Type:           domain.EntryReceivable,
		Status:         domain.EntryPending,
		OriginalAmount: decimal.NewFromInt(200),
		PaidAmount:     decimal.Zero,
		PendingAmount:  decimal.NewFromInt(200),
		CurrencyCode:   "USD",
		Entity:         domain.PartyRef{Type: domain.PartyClient, ID: suite.clientID},
	}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockLedgerRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, suite.tenantID, entryID).Return(&entry, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	// Receivable: cash comes in.
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", ctx, mock.Anything, suite.destAcc.AccountID,
		decimal.NewFromInt(80), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("UpdateEntrySettlementInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	req := dto.LedgerPaymentRequest{AccountID: suite.destAcc.AccountID, Amount: decimal.NewFromInt(80)}
	updated, err := suite.service.ProcessLedgerPayment(ctx, suite.tenantID, entryID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.EntryPending, updated.Status)
	suite.True(updated.PendingAmount.Equal(decimal.NewFromInt(120)))
}

func (suite *OperationsServiceTestSuite) TestProcessLedgerPayment_OverpaymentRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := domain.LedgerEntry{
		EntryID:        entryID,
		TenantID:       suite.tenantID,
		Type:           domain.EntryPayable,
		Status:         domain.EntryPending,
		OriginalAmount: decimal.NewFromInt(50),
		PendingAmount:  decimal.NewFromInt(50),
		CurrencyCode:   "USD",
	}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, suite.tenantID, entryID).Return(&entry, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	req := dto.LedgerPaymentRequest{AccountID: suite.destAcc.AccountID, Amount: decimal.NewFromInt(60)}
	updated, err := suite.service.ProcessLedgerPayment(ctx, suite.tenantID, entryID, req, suite.userID)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationsServiceTestSuite) TestCreateInternalTransaction_ExpenseChecksFunds() {
	ctx := context.Background()
	req := dto.CreateInternalTransactionRequest{
		Type:         domain.InternalExpense,
		Amount:       decimal.NewFromInt(5000),
		CurrencyCode: "USD",
		Description:  "office rent",
		Date:         time.Now(),
		AccountID:    suite.destAcc.AccountID,
	}

	suite.mockOpRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.tenantID, suite.destAcc.AccountID).
		Return(&suite.destAcc, nil).Once()
	suite.mockOpRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateInternalTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *OperationsServiceTestSuite) TestCreateInternalTransaction_AccountAndEntityExclusive() {
	ctx := context.Background()
	entityType := domain.PartyProvider
	entityID := suite.providerID
	req := dto.CreateInternalTransactionRequest{
		Type:         domain.InternalIncome,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		Description:  "ambiguous",
		Date:         time.Now(),
		AccountID:    suite.destAcc.AccountID,
		EntityType:   &entityType,
		EntityID:     &entityID,
	}

	_, err := suite.service.CreateInternalTransaction(ctx, suite.tenantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOpRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *OperationsServiceTestSuite) TestAddBalanceToEntity_BooksPayableWithoutAccountWrites() {
	ctx := context.Background()
	investorID := uuid.NewString()
	investor := domain.Investor{InvestorID: investorID, TenantID: suite.tenantID, IsActive: true}
	req := dto.AddBalanceRequest{
		EntityType:   domain.PartyInvestor,
		EntityID:     investorID,
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "USD",
		Description:  "capital deposit",
	}

	suite.mockInvestorRepo.On("FindInvestorByID", ctx, suite.tenantID, investorID).Return(&investor, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything,
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Type == domain.EntryPayable && e.OriginalAmount.Equal(decimal.NewFromInt(1000)) &&
				e.Entity.Type == domain.PartyInvestor
		})).Return(nil).Once()
	suite.mockOpRepo.On("SaveInternalTransactionInTx", ctx, mock.Anything,
		mock.MatchedBy(func(t domain.InternalTransaction) bool {
			return t.Type == domain.InternalIncome && t.Entity != nil && t.Entity.ID == investorID
		})).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.AddBalanceToEntity(ctx, suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.EntryPending, entry.Status)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOperationsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OperationsServiceTestSuite))
}
