package repositories

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// CurrencyRepository defines persistence operations for currencies.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
