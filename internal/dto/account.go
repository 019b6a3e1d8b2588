package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH CXC CXP INGRESS EGRESS EQUITY ASSET LIABILITY"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Description    string             `json:"description"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

// UpdateAccountRequest defines the fields that may change on an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Description  string             `json:"description"`
	IsActive     bool               `json:"isActive"`
	Balance      decimal.Decimal    `json:"balance"`
	CreatedAt    time.Time          `json:"createdAt"`
	CreatedBy    string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		Name:         acc.Name,
		AccountType:  acc.AccountType,
		CurrencyCode: acc.CurrencyCode,
		Description:  acc.Description,
		IsActive:     acc.IsActive,
		Balance:      acc.Balance,
		CreatedAt:    acc.CreatedAt,
		CreatedBy:    acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListParams are common limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
