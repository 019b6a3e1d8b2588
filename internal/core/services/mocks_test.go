package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
)

// txManagerMock implements the unit-of-work methods shared by the repository
// facades. Begin returns a nil pgx.Tx; services only pass it through.
type txManagerMock struct {
	mock.Mock
}

func (m *txManagerMock) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *txManagerMock) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *txManagerMock) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNamesForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, names []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock PostingRepository ---

type MockPostingRepository struct {
	txManagerMock
}

var _ portsrepo.PostingRepositoryFacade = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) FindTransactionByReference(ctx context.Context, tenantID, referenceCode string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) FindDetailsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionDetail, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionDetail), args.Error(1)
}

func (m *MockPostingRepository) ListTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) SumDetailMovementsSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, since)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockPostingRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, details []domain.TransactionDetail, relatedTransactionID *string) error {
	args := m.Called(ctx, tx, txn, details, relatedTransactionID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	txManagerMock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, tenantID string, filter domain.LedgerEntryFilter, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListPaymentsByEntry(ctx context.Context, tenantID, entryID string) ([]domain.LedgerPayment, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPayment), args.Error(1)
}

func (m *MockLedgerRepository) ListPendingPayablesByInvestor(ctx context.Context, tenantID, investorID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumPayableOriginalByEntity(ctx context.Context, tenantID string, entity domain.PartyRef) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, entity)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntrySettlementInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LedgerPayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// --- Mock OperationRepository ---

type MockOperationRepository struct {
	txManagerMock
}

var _ portsrepo.OperationRepositoryFacade = (*MockOperationRepository)(nil)

func (m *MockOperationRepository) FindExchangeByID(ctx context.Context, tenantID, exchangeID string) (*domain.CurrencyExchange, error) {
	args := m.Called(ctx, tenantID, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyExchange), args.Error(1)
}

func (m *MockOperationRepository) ListExchanges(ctx context.Context, tenantID string, limit, offset int) ([]domain.CurrencyExchange, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyExchange), args.Error(1)
}

func (m *MockOperationRepository) FindPurchaseByID(ctx context.Context, tenantID, purchaseID string) (*domain.DollarPurchase, error) {
	args := m.Called(ctx, tenantID, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DollarPurchase), args.Error(1)
}

func (m *MockOperationRepository) ListPurchases(ctx context.Context, tenantID string, limit, offset int) ([]domain.DollarPurchase, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DollarPurchase), args.Error(1)
}

func (m *MockOperationRepository) ListInternalTransactions(ctx context.Context, tenantID string, limit, offset int) ([]domain.InternalTransaction, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InternalTransaction), args.Error(1)
}

func (m *MockOperationRepository) SumInternalTransactionsByEntity(ctx context.Context, tenantID string, entity domain.PartyRef, txnType domain.InternalTransactionType) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, entity, txnType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOperationRepository) SumInternalTransactionsByAccountSince(ctx context.Context, tenantID, accountID string, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, since)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockOperationRepository) NextExchangeNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error) {
	args := m.Called(ctx, tx, tenantID)
	return args.String(0), args.Error(1)
}

func (m *MockOperationRepository) SaveExchangeInTx(ctx context.Context, tx pgx.Tx, exchange domain.CurrencyExchange) error {
	args := m.Called(ctx, tx, exchange)
	return args.Error(0)
}

func (m *MockOperationRepository) NextPurchaseNumber(ctx context.Context, tx pgx.Tx, tenantID string) (string, error) {
	args := m.Called(ctx, tx, tenantID)
	return args.String(0), args.Error(1)
}

func (m *MockOperationRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.DollarPurchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockOperationRepository) SaveInternalTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.InternalTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Mock InvestorRepository ---

type MockInvestorRepository struct {
	txManagerMock
}

var _ portsrepo.InvestorRepositoryWithTx = (*MockInvestorRepository)(nil)

func (m *MockInvestorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	args := m.Called(ctx, investor)
	return args.Error(0)
}

func (m *MockInvestorRepository) FindInvestorByID(ctx context.Context, tenantID, investorID string) (*domain.Investor, error) {
	args := m.Called(ctx, tenantID, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investor), args.Error(1)
}

func (m *MockInvestorRepository) ListInvestors(ctx context.Context, tenantID string, limit, offset int) ([]domain.Investor, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investor), args.Error(1)
}

func (m *MockInvestorRepository) ListActiveInvestors(ctx context.Context) ([]domain.Investor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investor), args.Error(1)
}

func (m *MockInvestorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	args := m.Called(ctx, investor)
	return args.Error(0)
}

func (m *MockInvestorRepository) UpdateLastInterestDateInTx(ctx context.Context, tx pgx.Tx, investorID string, date time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, tx, investorID, date, userID, now)
	return args.Error(0)
}

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepository = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, tenantID, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, tenantID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, tenantID string, partyType *domain.PartyType, limit, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, tenantID, partyType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, tenantID, partyID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, partyID, userID, now)
	return args.Error(0)
}

// --- Mock ClosureRepository ---

type MockClosureRepository struct {
	mock.Mock
}

var _ portsrepo.ClosureRepository = (*MockClosureRepository)(nil)

func (m *MockClosureRepository) SaveClosure(ctx context.Context, closure domain.CashClosure) error {
	args := m.Called(ctx, closure)
	return args.Error(0)
}

func (m *MockClosureRepository) FindClosureByID(ctx context.Context, tenantID, closureID string) (*domain.CashClosure, error) {
	args := m.Called(ctx, tenantID, closureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashClosure), args.Error(1)
}

func (m *MockClosureRepository) FindOpenClosureByAccount(ctx context.Context, tenantID, accountID string) (*domain.CashClosure, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashClosure), args.Error(1)
}

func (m *MockClosureRepository) UpdateClosure(ctx context.Context, closure domain.CashClosure) error {
	args := m.Called(ctx, closure)
	return args.Error(0)
}

func (m *MockClosureRepository) ListClosures(ctx context.Context, tenantID string, limit, offset int) ([]domain.CashClosure, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashClosure), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, tenantID string, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, updatedBy, now)
	return args.Error(0)
}

// --- Mock TenantRepository ---

type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepository = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenants(ctx context.Context, limit, offset int) ([]domain.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock APITokenRepository ---

type MockAPITokenRepository struct {
	mock.Mock
}

var _ portsrepo.APITokenRepository = (*MockAPITokenRepository)(nil)

func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
