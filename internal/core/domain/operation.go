package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalType states where the funds for an operation originate.
type CapitalType string

const (
	CapitalOwn      CapitalType = "own"      // House funds, debited from a real account
	CapitalInvestor CapitalType = "investor" // Virtual capital, tracked on the investor only
)

// CurrencyExchange is the immutable record of a completed exchange operation.
// Creating one mutates the two involved account balances and derives one
// payable LedgerEntry per commission beneficiary.
type CurrencyExchange struct {
	ExchangeID           string          `json:"exchangeID"` // Primary Key (UUID)
	TenantID             string          `json:"tenantID"`
	Number               string          `json:"number"` // Sequential, CE-00001 style
	Date                 time.Time       `json:"date"`
	ClientID             string          `json:"clientID"`
	BrokerID             string          `json:"brokerID"`   // Optional
	ProviderID           string          `json:"providerID"` // Optional
	SourceAccountID      string          `json:"sourceAccountID"` // Empty for investor capital
	DestinationAccountID string          `json:"destinationAccountID"`
	AmountSent           decimal.Decimal `json:"amountSent"`
	AmountReceived       decimal.Decimal `json:"amountReceived"`
	Rate                 decimal.Decimal `json:"rate"`
	SourceCurrencyCode   string          `json:"sourceCurrencyCode"`
	DestCurrencyCode     string          `json:"destCurrencyCode"`

	ProviderCommissionPct    decimal.Decimal `json:"providerCommissionPct"`
	ProviderCommissionAmount decimal.Decimal `json:"providerCommissionAmount"`
	BrokerCommissionPct      decimal.Decimal `json:"brokerCommissionPct"`
	BrokerCommissionAmount   decimal.Decimal `json:"brokerCommissionAmount"`
	PlatformCommissionPct    decimal.Decimal `json:"platformCommissionPct"`
	PlatformCommissionAmount decimal.Decimal `json:"platformCommissionAmount"`
	ClientCommissionPct      decimal.Decimal `json:"clientCommissionPct"`
	ClientCommissionAmount   decimal.Decimal `json:"clientCommissionAmount"`
	ClientCommissionDeferred bool            `json:"clientCommissionDeferred"`

	CapitalType       CapitalType     `json:"capitalType"`
	InvestorID        string          `json:"investorID"` // Set when CapitalType == investor
	InvestorProfitPct decimal.Decimal `json:"investorProfitPct"`
	AuditFields
}

// DollarPurchase records a dollar buy operation: local currency out, dollars
// in at a buy/received rate pair, delivered in DeliveryCurrencyCode.
type DollarPurchase struct {
	PurchaseID           string          `json:"purchaseID"` // Primary Key (UUID)
	TenantID             string          `json:"tenantID"`
	Number               string          `json:"number"` // Sequential, DP-00001 style
	Date                 time.Time       `json:"date"`
	ClientID             string          `json:"clientID"`
	BrokerID             string          `json:"brokerID"`
	ProviderID           string          `json:"providerID"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID"`
	AmountSent           decimal.Decimal `json:"amountSent"`     // Local currency
	AmountReceived       decimal.Decimal `json:"amountReceived"` // USD
	BuyRate              decimal.Decimal `json:"buyRate"`
	ReceivedRate         decimal.Decimal `json:"receivedRate"`
	SentCurrencyCode     string          `json:"sentCurrencyCode"`
	DeliveryCurrencyCode string          `json:"deliveryCurrencyCode"`

	ProviderCommissionPct    decimal.Decimal `json:"providerCommissionPct"`
	ProviderCommissionAmount decimal.Decimal `json:"providerCommissionAmount"`
	BrokerCommissionPct      decimal.Decimal `json:"brokerCommissionPct"`
	BrokerCommissionAmount   decimal.Decimal `json:"brokerCommissionAmount"`
	PlatformCommissionPct    decimal.Decimal `json:"platformCommissionPct"`
	PlatformCommissionAmount decimal.Decimal `json:"platformCommissionAmount"`

	CapitalType CapitalType `json:"capitalType"`
	InvestorID  string      `json:"investorID"`
	AuditFields
}

// InternalTransactionType classifies a cash-register movement.
type InternalTransactionType string

const (
	InternalIncome  InternalTransactionType = "income"
	InternalExpense InternalTransactionType = "expense"
)

// InternalTransaction is a cash-register-level movement against either a real
// Account or a virtual counterparty (provider wallet, investor capital) when
// no bank account applies. Exactly one of AccountID / Entity is set.
type InternalTransaction struct {
	InternalTxnID string                  `json:"internalTxnID"` // Primary Key (UUID)
	TenantID      string                  `json:"tenantID"`
	Type          InternalTransactionType `json:"type"`
	Amount        decimal.Decimal         `json:"amount"` // > 0
	CurrencyCode  string                  `json:"currencyCode"`
	Category      string                  `json:"category"`
	Description   string                  `json:"description"`
	Date          time.Time               `json:"date"`
	AccountID     string                  `json:"accountID,omitempty"`
	Entity        *PartyRef               `json:"entity,omitempty"`
	AuditFields
}
