package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
)

// CreateAPITokenRequest issues a new automation token.
type CreateAPITokenRequest struct {
	Name      string     `json:"name" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// APITokenResponse describes a stored token; PlainToken is only set on
// creation and never retrievable again.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PlainToken string     `json:"token,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToAPITokenResponse converts a domain.APIToken to its DTO.
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}
