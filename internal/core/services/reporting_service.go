package services

import (
	"context"
	"fmt"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
)

// reportingService exposes read-only aggregates over operations and
// obligations.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ExchangeReport aggregates exchange operations per currency for a period.
func (s *reportingService) ExchangeReport(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.ExchangeTotals, error) {
	if period.To.Before(period.From) {
		return nil, fmt.Errorf("%w: period end precedes start", apperrors.ErrValidation)
	}
	return s.reportingRepo.ExchangeTotals(ctx, tenantID, period)
}

// InternalTransactionReport aggregates cash movements by type and currency.
func (s *reportingService) InternalTransactionReport(ctx context.Context, tenantID string, period domain.ReportPeriod) ([]domain.InternalTransactionTotals, error) {
	if period.To.Before(period.From) {
		return nil, fmt.Errorf("%w: period end precedes start", apperrors.ErrValidation)
	}
	return s.reportingRepo.InternalTransactionTotals(ctx, tenantID, period)
}

// LedgerReport aggregates obligations by type, status and currency.
func (s *reportingService) LedgerReport(ctx context.Context, tenantID string) ([]domain.LedgerTotals, error) {
	return s.reportingRepo.LedgerTotals(ctx, tenantID)
}
