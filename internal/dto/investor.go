package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvestorRequest registers a capital provider.
type CreateInvestorRequest struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"omitempty,email"`
	InterestRate decimal.Decimal `json:"interestRate" binding:"required"`
	PayoutDay    int             `json:"payoutDay" binding:"required,min=1,max=31"`
}

// UpdateInvestorRequest updates investor terms.
type UpdateInvestorRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	PayoutDay    *int             `json:"payoutDay" binding:"omitempty,min=1,max=31"`
	IsActive     *bool            `json:"isActive"`
}

// InvestorResponse mirrors domain.Investor plus the computed balance.
type InvestorResponse struct {
	InvestorID       string           `json:"investorID"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	InterestRate     decimal.Decimal  `json:"interestRate"`
	PayoutDay        int              `json:"payoutDay"`
	IsActive         bool             `json:"isActive"`
	LastInterestDate *time.Time       `json:"lastInterestDate,omitempty"`
	CapitalHistoric  *decimal.Decimal `json:"capitalHistoric,omitempty"`
	AvailableBalance *decimal.Decimal `json:"availableBalance,omitempty"`
}

// ToInvestorResponse converts a domain.Investor, optionally attaching the
// computed balance.
func ToInvestorResponse(inv *domain.Investor, balance *domain.InvestorBalance) InvestorResponse {
	resp := InvestorResponse{
		InvestorID:       inv.InvestorID,
		Name:             inv.Name,
		Email:            inv.Email,
		InterestRate:     inv.InterestRate,
		PayoutDay:        inv.PayoutDay,
		IsActive:         inv.IsActive,
		LastInterestDate: inv.LastInterestDate,
	}
	if balance != nil {
		resp.CapitalHistoric = &balance.CapitalHistoric
		resp.AvailableBalance = &balance.AvailableBalance
	}
	return resp
}
