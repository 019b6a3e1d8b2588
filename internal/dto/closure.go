package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenClosureRequest opens a cash register reconciliation window.
type OpenClosureRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Notes          string          `json:"notes"`
}

// CloseClosureRequest closes the window with the counted balance.
type CloseClosureRequest struct {
	FinalBalance decimal.Decimal `json:"finalBalance" binding:"required"`
	Notes        string          `json:"notes"`
}

// CashClosureResponse mirrors domain.CashClosure.
type CashClosureResponse struct {
	ClosureID          string           `json:"closureID"`
	AccountID          string           `json:"accountID"`
	StartDate          time.Time        `json:"startDate"`
	InitialBalance     decimal.Decimal  `json:"initialBalance"`
	EndDate            *time.Time       `json:"endDate,omitempty"`
	FinalBalance       *decimal.Decimal `json:"finalBalance,omitempty"`
	TheoreticalBalance *decimal.Decimal `json:"theoreticalBalance,omitempty"`
	Difference         *decimal.Decimal `json:"difference,omitempty"`
	Notes              string           `json:"notes"`
}

// ToCashClosureResponse converts a domain.CashClosure to its DTO.
func ToCashClosureResponse(c *domain.CashClosure) CashClosureResponse {
	return CashClosureResponse{
		ClosureID:          c.ClosureID,
		AccountID:          c.AccountID,
		StartDate:          c.StartDate,
		InitialBalance:     c.InitialBalance,
		EndDate:            c.EndDate,
		FinalBalance:       c.FinalBalance,
		TheoreticalBalance: c.TheoreticalBalance,
		Difference:         c.Difference,
		Notes:              c.Notes,
	}
}
