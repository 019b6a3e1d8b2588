package dto

import "github.com/cambiosoft/exchange_backend/internal/core/domain"

// CreateCurrencyRequest adds a currency to the catalog.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse mirrors domain.Currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to its DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{CurrencyCode: c.CurrencyCode, Symbol: c.Symbol, Name: c.Name}
}

// ToListCurrencyResponse converts a slice of currencies.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = ToCurrencyResponse(&c)
	}
	return res
}
