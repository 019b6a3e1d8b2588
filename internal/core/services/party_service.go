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
)

// partyService manages counterparties.
type partyService struct {
	partyRepo portsrepo.PartyRepository
}

// NewPartyService creates the party service.
func NewPartyService(partyRepo portsrepo.PartyRepository) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty registers a counterparty.
func (s *partyService) CreateParty(ctx context.Context, tenantID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultCommissionPct.IsNegative() {
		return nil, fmt.Errorf("%w: commission percentage cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:              uuid.NewString(),
		TenantID:             tenantID,
		Type:                 req.Type,
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		DefaultCommissionPct: req.DefaultCommissionPct,
		IsActive:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party created",
		slog.String("party_id", party.PartyID),
		slog.String("type", string(party.Type)))
	return &party, nil
}

// GetPartyByID retrieves one counterparty.
func (s *partyService) GetPartyByID(ctx context.Context, tenantID, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, tenantID, partyID)
}

// ListParties returns a page of counterparties, optionally by type.
func (s *partyService) ListParties(ctx context.Context, tenantID string, partyType *domain.PartyType, params dto.ListParams) ([]domain.Party, error) {
	return s.partyRepo.ListParties(ctx, tenantID, partyType, params.Limit, params.Offset)
}

// UpdateParty patches counterparty details.
func (s *partyService) UpdateParty(ctx context.Context, tenantID, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.DefaultCommissionPct != nil {
		if req.DefaultCommissionPct.IsNegative() {
			return nil, fmt.Errorf("%w: commission percentage cannot be negative", apperrors.ErrValidation)
		}
		party.DefaultCommissionPct = *req.DefaultCommissionPct
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}
	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		return nil, fmt.Errorf("failed to update party: %w", err)
	}
	return party, nil
}

// DeactivateParty marks a counterparty inactive; ledger history stays.
func (s *partyService) DeactivateParty(ctx context.Context, tenantID, partyID, userID string) error {
	if _, err := s.partyRepo.FindPartyByID(ctx, tenantID, partyID); err != nil {
		return err
	}
	return s.partyRepo.DeactivateParty(ctx, tenantID, partyID, userID, time.Now().UTC())
}
