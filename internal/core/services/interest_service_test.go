package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/core/services"
)

type InterestServiceTestSuite struct {
	suite.Suite
	mockInvestorRepo *MockInvestorRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.InterestSvcFacade

	tenantID string
	investor domain.Investor
}

func (suite *InterestServiceTestSuite) SetupTest() {
	suite.mockInvestorRepo = new(MockInvestorRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewInterestService(suite.mockInvestorRepo, suite.mockLedgerRepo)

	suite.tenantID = uuid.NewString()
	suite.investor = domain.Investor{
		InvestorID:   uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Capital Partner",
		InterestRate: decimal.NewFromInt(5),
		PayoutDay:    1,
		IsActive:     true,
	}
}

func pendingPayable(tenantID, investorID, currency, amount string) domain.LedgerEntry {
	value := decimal.RequireFromString(amount)
	return domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		TenantID:       tenantID,
		Type:           domain.EntryPayable,
		Status:         domain.EntryPending,
		OriginalAmount: value,
		PendingAmount:  value,
		CurrencyCode:   currency,
		Entity:         domain.PartyRef{Type: domain.PartyInvestor, ID: investorID},
	}
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_FirstMonth() {
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	pending := []domain.LedgerEntry{
		pendingPayable(suite.tenantID, suite.investor.InvestorID, "USD", "1000"),
	}

	suite.mockLedgerRepo.On("ListPendingPayablesByInvestor", ctx, suite.tenantID, suite.investor.InvestorID).
		Return(pending, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.LedgerEntry) }).Return(nil).Once()
	suite.mockInvestorRepo.On("UpdateLastInterestDateInTx", ctx, mock.Anything, suite.investor.InvestorID,
		mock.AnythingOfType("time.Time"), domain.SystemUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Equal(1, created)
	suite.True(saved.OriginalAmount.Equal(decimal.NewFromInt(50)))
	suite.Equal("2025-03", saved.AccrualPeriod)
	suite.Equal(domain.EntryPayable, saved.Type)
	suite.Equal(domain.PartyInvestor, saved.Entity.Type)
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_SecondMonthCompounds() {
	ctx := context.Background()
	now := time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.investor.LastInterestDate = &lastMonth

	// The March interest entry is still pending, so April's base is 1050.
	pending := []domain.LedgerEntry{
		pendingPayable(suite.tenantID, suite.investor.InvestorID, "USD", "1000"),
		pendingPayable(suite.tenantID, suite.investor.InvestorID, "USD", "50"),
	}

	suite.mockLedgerRepo.On("ListPendingPayablesByInvestor", ctx, suite.tenantID, suite.investor.InvestorID).
		Return(pending, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.LedgerEntry) }).Return(nil).Once()
	suite.mockInvestorRepo.On("UpdateLastInterestDateInTx", ctx, mock.Anything, suite.investor.InvestorID,
		mock.Anything, domain.SystemUserID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Equal(1, created)
	suite.True(saved.OriginalAmount.Equal(decimal.RequireFromString("52.5")),
		"expected 52.5, got %s", saved.OriginalAmount)
	suite.Equal("2025-04", saved.AccrualPeriod)
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_SameMonthIsNoOp() {
	ctx := context.Background()
	suite.investor.PayoutDay = 20
	now := time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	stamped := time.Date(2025, time.March, 20, 8, 0, 0, 0, time.UTC)
	suite.investor.LastInterestDate = &stamped

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Zero(created)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_BeforePayoutDay() {
	ctx := context.Background()
	suite.investor.PayoutDay = 20
	now := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Zero(created)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListPendingPayablesByInvestor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_AfterPayoutDayIsNotDue() {
	ctx := context.Background()
	suite.investor.PayoutDay = 5
	now := time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC)

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Zero(created)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListPendingPayablesByInvestor", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InterestServiceTestSuite) TestAccrueInvestor_PayoutDayClampedInShortMonth() {
	ctx := context.Background()
	suite.investor.PayoutDay = 31
	now := time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC)
	pending := []domain.LedgerEntry{
		pendingPayable(suite.tenantID, suite.investor.InvestorID, "USD", "1000"),
	}

	suite.mockLedgerRepo.On("ListPendingPayablesByInvestor", ctx, suite.tenantID, suite.investor.InvestorID).
		Return(pending, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockInvestorRepo.On("UpdateLastInterestDateInTx", ctx, mock.Anything, suite.investor.InvestorID,
		mock.Anything, domain.SystemUserID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.AccrueInvestor(ctx, suite.investor, now)

	suite.NoError(err)
	suite.Equal(1, created)
}

func (suite *InterestServiceTestSuite) TestRunAccrualSweep_OneFailureDoesNotBlockOthers() {
	ctx := context.Background()
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	other := suite.investor
	other.InvestorID = uuid.NewString()

	suite.mockInvestorRepo.On("ListActiveInvestors", ctx).
		Return([]domain.Investor{suite.investor, other}, nil).Once()

	// First investor's listing fails; the second accrues normally.
	suite.mockLedgerRepo.On("ListPendingPayablesByInvestor", ctx, suite.tenantID, suite.investor.InvestorID).
		Return(nil, context.DeadlineExceeded).Once()
	suite.mockLedgerRepo.On("ListPendingPayablesByInvestor", ctx, suite.tenantID, other.InvestorID).
		Return([]domain.LedgerEntry{pendingPayable(suite.tenantID, other.InvestorID, "USD", "1000")}, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockLedgerRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockInvestorRepo.On("UpdateLastInterestDateInTx", ctx, mock.Anything, other.InvestorID,
		mock.Anything, domain.SystemUserID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.RunAccrualSweep(ctx, now)

	suite.Error(err)
	suite.Equal(1, created)
}

func TestInterestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InterestServiceTestSuite))
}
