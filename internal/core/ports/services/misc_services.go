package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// AccountSvcFacade manages ledger accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	ListAccounts(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.Account, error)

	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
}

// CurrencySvcFacade manages the currency catalog.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// PartySvcFacade manages counterparties.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, tenantID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	GetPartyByID(ctx context.Context, tenantID, partyID string) (*domain.Party, error)

	ListParties(ctx context.Context, tenantID string, partyType *domain.PartyType, params dto.ListParams) ([]domain.Party, error)

	UpdateParty(ctx context.Context, tenantID, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	DeactivateParty(ctx context.Context, tenantID, partyID, userID string) error
}

// ReportingSvcFacade exposes read-only aggregates.
type ReportingSvcFacade interface {
	ExchangeReport(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.ExchangeTotals, error)

	InternalTransactionReport(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.InternalTransactionTotals, error)

	LedgerReport(ctx context.Context, tenantID string) ([]domain.LedgerTotals, error)
}

// APITokenSvcFacade manages automation tokens.
type APITokenSvcFacade interface {
	CreateToken(ctx context.Context, userID string, req dto.CreateAPITokenRequest) (*dto.APITokenResponse, error)

	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	RevokeToken(ctx context.Context, userID, tokenID string) error

	// ValidateToken resolves a presented plaintext token to its owner.
	ValidateToken(ctx context.Context, plainToken string) (*domain.APIToken, error)
}
