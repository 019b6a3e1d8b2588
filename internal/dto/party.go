package dto

import (
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest registers a counterparty.
type CreatePartyRequest struct {
	Type                 domain.PartyType `json:"type" binding:"required,oneof=provider broker client employee"`
	Name                 string           `json:"name" binding:"required"`
	Email                string           `json:"email" binding:"omitempty,email"`
	Phone                string           `json:"phone"`
	DefaultCommissionPct decimal.Decimal  `json:"defaultCommissionPct"`
}

// UpdatePartyRequest updates counterparty details.
type UpdatePartyRequest struct {
	Name                 *string          `json:"name"`
	Email                *string          `json:"email"`
	Phone                *string          `json:"phone"`
	DefaultCommissionPct *decimal.Decimal `json:"defaultCommissionPct"`
	IsActive             *bool            `json:"isActive"`
}

// PartyResponse mirrors domain.Party.
type PartyResponse struct {
	PartyID              string           `json:"partyID"`
	Type                 domain.PartyType `json:"type"`
	Name                 string           `json:"name"`
	Email                string           `json:"email"`
	Phone                string           `json:"phone"`
	DefaultCommissionPct decimal.Decimal  `json:"defaultCommissionPct"`
	IsActive             bool             `json:"isActive"`
}

// ToPartyResponse converts a domain.Party to its DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:              p.PartyID,
		Type:                 p.Type,
		Name:                 p.Name,
		Email:                p.Email,
		Phone:                p.Phone,
		DefaultCommissionPct: p.DefaultCommissionPct,
		IsActive:             p.IsActive,
	}
}

// ToListPartyResponse converts a slice of parties.
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p)
	}
	return res
}
