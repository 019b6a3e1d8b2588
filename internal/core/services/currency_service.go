package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

// currencyService manages the shared currency catalog.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepository
}

// NewCurrencyService creates the currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency adds a currency to the catalog.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(req.CurrencyCode)
	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: currency %q already exists", apperrors.ErrDuplicate, code)
		}
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_code", code))
	return &currency, nil
}

// GetCurrencyByCode retrieves one currency.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
}

// ListCurrencies returns the full catalog.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
