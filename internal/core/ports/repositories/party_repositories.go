package repositories

import (
	"context"
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// PartyRepository defines persistence operations for counterparties
// (providers, brokers, clients, employees).
type PartyRepository interface {
	SaveParty(ctx context.Context, party domain.Party) error

	FindPartyByID(ctx context.Context, tenantID, partyID string) (*domain.Party, error)

	// ListParties filters by type when partyType is non-nil.
	ListParties(ctx context.Context, tenantID string, partyType *domain.PartyType, limit, offset int) ([]domain.Party, error)

	UpdateParty(ctx context.Context, party domain.Party) error

	DeactivateParty(ctx context.Context, tenantID, partyID, userID string, now time.Time) error
}
