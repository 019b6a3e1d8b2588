package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ledgerService manages payable/receivable obligations independent of the
// double-entry ledger. Entries are never deleted.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates the ledger entry service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry registers a manual obligation with status pending.
func (s *ledgerService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidPartyType(req.EntityType) {
		return nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, req.EntityType)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		TenantID:       tenantID,
		Type:           req.Type,
		Status:         domain.EntryPending,
		OriginalAmount: req.Amount,
		PaidAmount:     decimal.Zero,
		PendingAmount:  req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Entity:         domain.PartyRef{Type: req.EntityType, ID: req.EntityID},
		Description:    req.Description,
		DueDate:        req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	logger.Info("Ledger entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("entity", entry.Entity.String()))
	return &entry, nil
}

// GetEntryByID retrieves one obligation.
func (s *ledgerService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.FindEntryByID(ctx, tenantID, entryID)
}

// ListEntries applies the optional filters with AND semantics.
func (s *ledgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.ledgerRepo.ListEntries(ctx, tenantID, params.ToFilter(), limit, params.Offset)
}

// ListPayments returns the settlement history of an entry.
func (s *ledgerService) ListPayments(ctx context.Context, tenantID, entryID string) ([]domain.LedgerPayment, error) {
	if _, err := s.ledgerRepo.FindEntryByID(ctx, tenantID, entryID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListPaymentsByEntry(ctx, tenantID, entryID)
}
