package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyExchangeRequest defines the data for an exchange operation.
type CreateCurrencyExchangeRequest struct {
	Date                 time.Time       `json:"date" binding:"required"`
	ClientID             string          `json:"clientID" binding:"required"`
	BrokerID             string          `json:"brokerID"`
	ProviderID           string          `json:"providerID"`
	SourceAccountID      string          `json:"sourceAccountID"` // Required for own capital
	DestinationAccountID string          `json:"destinationAccountID" binding:"required"`
	AmountSent           decimal.Decimal `json:"amountSent" binding:"required"`
	AmountReceived       decimal.Decimal `json:"amountReceived" binding:"required"`
	Rate                 decimal.Decimal `json:"rate" binding:"required"`
	SourceCurrencyCode   string          `json:"sourceCurrencyCode" binding:"required,len=3"`
	DestCurrencyCode     string          `json:"destCurrencyCode" binding:"required,len=3"`

	ProviderCommissionPct    decimal.Decimal `json:"providerCommissionPct"`
	BrokerCommissionPct      decimal.Decimal `json:"brokerCommissionPct"`
	PlatformCommissionPct    decimal.Decimal `json:"platformCommissionPct"`
	ClientCommissionPct      decimal.Decimal `json:"clientCommissionPct"`
	ClientCommissionDeferred bool            `json:"clientCommissionDeferred"`

	CapitalType       domain.CapitalType `json:"capitalType" binding:"required,oneof=own investor"`
	InvestorID        string             `json:"investorID"` // Required for investor capital
	InvestorProfitPct decimal.Decimal    `json:"investorProfitPct"`
}

// CreateDollarPurchaseRequest defines the data for a dollar purchase.
type CreateDollarPurchaseRequest struct {
	Date                 time.Time       `json:"date" binding:"required"`
	ClientID             string          `json:"clientID"`
	BrokerID             string          `json:"brokerID"`
	ProviderID           string          `json:"providerID"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID" binding:"required"`
	AmountSent           decimal.Decimal `json:"amountSent" binding:"required"`
	AmountReceived       decimal.Decimal `json:"amountReceived" binding:"required"`
	BuyRate              decimal.Decimal `json:"buyRate" binding:"required"`
	ReceivedRate         decimal.Decimal `json:"receivedRate" binding:"required"`
	SentCurrencyCode     string          `json:"sentCurrencyCode" binding:"required,len=3"`
	DeliveryCurrencyCode string          `json:"deliveryCurrencyCode" binding:"required,len=3"`

	ProviderCommissionPct decimal.Decimal `json:"providerCommissionPct"`
	BrokerCommissionPct   decimal.Decimal `json:"brokerCommissionPct"`
	PlatformCommissionPct decimal.Decimal `json:"platformCommissionPct"`

	CapitalType domain.CapitalType `json:"capitalType" binding:"required,oneof=own investor"`
	InvestorID  string             `json:"investorID"`
}

// CreateInternalTransactionRequest records a cash-register movement.
type CreateInternalTransactionRequest struct {
	Type         domain.InternalTransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount       decimal.Decimal                `json:"amount" binding:"required"`
	CurrencyCode string                         `json:"currencyCode" binding:"required,len=3"`
	Category     string                         `json:"category"`
	Description  string                         `json:"description" binding:"required"`
	Date         time.Time                      `json:"date" binding:"required"`
	// Exactly one of AccountID / EntityType+EntityID must be provided.
	AccountID  string            `json:"accountID"`
	EntityType *domain.PartyType `json:"entityType" binding:"omitempty,partytype"`
	EntityID   *string           `json:"entityID"`
}

// AddBalanceRequest tops up a provider wallet or investor capital.
type AddBalanceRequest struct {
	EntityType  domain.PartyType `json:"entityType" binding:"required,oneof=provider investor"`
	EntityID    string           `json:"entityID" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Description string           `json:"description"`
}

// CurrencyExchangeResponse mirrors domain.CurrencyExchange.
type CurrencyExchangeResponse struct {
	ExchangeID           string          `json:"exchangeID"`
	Number               string          `json:"number"`
	Date                 time.Time       `json:"date"`
	ClientID             string          `json:"clientID"`
	BrokerID             string          `json:"brokerID,omitempty"`
	ProviderID           string          `json:"providerID,omitempty"`
	SourceAccountID      string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID"`
	AmountSent           decimal.Decimal `json:"amountSent"`
	AmountReceived       decimal.Decimal `json:"amountReceived"`
	Rate                 decimal.Decimal `json:"rate"`
	SourceCurrencyCode   string          `json:"sourceCurrencyCode"`
	DestCurrencyCode     string          `json:"destCurrencyCode"`

	ProviderCommissionAmount decimal.Decimal `json:"providerCommissionAmount"`
	BrokerCommissionAmount   decimal.Decimal `json:"brokerCommissionAmount"`
	PlatformCommissionAmount decimal.Decimal `json:"platformCommissionAmount"`
	ClientCommissionAmount   decimal.Decimal `json:"clientCommissionAmount"`

	CapitalType domain.CapitalType `json:"capitalType"`
	InvestorID  string             `json:"investorID,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToCurrencyExchangeResponse converts a domain.CurrencyExchange to its DTO.
func ToCurrencyExchangeResponse(e *domain.CurrencyExchange) CurrencyExchangeResponse {
	return CurrencyExchangeResponse{
		ExchangeID:           e.ExchangeID,
		Number:               e.Number,
		Date:                 e.Date,
		ClientID:             e.ClientID,
		BrokerID:             e.BrokerID,
		ProviderID:           e.ProviderID,
		SourceAccountID:      e.SourceAccountID,
		DestinationAccountID: e.DestinationAccountID,
		AmountSent:           e.AmountSent,
		AmountReceived:       e.AmountReceived,
		Rate:                 e.Rate,
		SourceCurrencyCode:   e.SourceCurrencyCode,
		DestCurrencyCode:     e.DestCurrencyCode,

		ProviderCommissionAmount: e.ProviderCommissionAmount,
		BrokerCommissionAmount:   e.BrokerCommissionAmount,
		PlatformCommissionAmount: e.PlatformCommissionAmount,
		ClientCommissionAmount:   e.ClientCommissionAmount,

		CapitalType: e.CapitalType,
		InvestorID:  e.InvestorID,
		CreatedAt:   e.CreatedAt,
	}
}

// DollarPurchaseResponse mirrors domain.DollarPurchase.
type DollarPurchaseResponse struct {
	PurchaseID           string             `json:"purchaseID"`
	Number               string             `json:"number"`
	Date                 time.Time          `json:"date"`
	AmountSent           decimal.Decimal    `json:"amountSent"`
	AmountReceived       decimal.Decimal    `json:"amountReceived"`
	BuyRate              decimal.Decimal    `json:"buyRate"`
	ReceivedRate         decimal.Decimal    `json:"receivedRate"`
	SentCurrencyCode     string             `json:"sentCurrencyCode"`
	DeliveryCurrencyCode string             `json:"deliveryCurrencyCode"`
	CapitalType          domain.CapitalType `json:"capitalType"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// ToDollarPurchaseResponse converts a domain.DollarPurchase to its DTO.
func ToDollarPurchaseResponse(p *domain.DollarPurchase) DollarPurchaseResponse {
	return DollarPurchaseResponse{
		PurchaseID:           p.PurchaseID,
		Number:               p.Number,
		Date:                 p.Date,
		AmountSent:           p.AmountSent,
		AmountReceived:       p.AmountReceived,
		BuyRate:              p.BuyRate,
		ReceivedRate:         p.ReceivedRate,
		SentCurrencyCode:     p.SentCurrencyCode,
		DeliveryCurrencyCode: p.DeliveryCurrencyCode,
		CapitalType:          p.CapitalType,
		CreatedAt:            p.CreatedAt,
	}
}

// InternalTransactionResponse mirrors domain.InternalTransaction.
type InternalTransactionResponse struct {
	InternalTxnID string                         `json:"internalTxnID"`
	Type          domain.InternalTransactionType `json:"type"`
	Amount        decimal.Decimal                `json:"amount"`
	CurrencyCode  string                         `json:"currencyCode"`
	Category      string                         `json:"category"`
	Description   string                         `json:"description"`
	Date          time.Time                      `json:"date"`
	AccountID     string                         `json:"accountID,omitempty"`
	Entity        *domain.PartyRef               `json:"entity,omitempty"`
}

// ToInternalTransactionResponse converts a domain.InternalTransaction.
func ToInternalTransactionResponse(t *domain.InternalTransaction) InternalTransactionResponse {
	return InternalTransactionResponse{
		InternalTxnID: t.InternalTxnID,
		Type:          t.Type,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
		AccountID:     t.AccountID,
		Entity:        t.Entity,
	}
}
