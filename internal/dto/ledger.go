package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest registers a manual payable/receivable obligation.
type CreateLedgerEntryRequest struct {
	Type         domain.EntryType `json:"type" binding:"required,oneof=payable receivable"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3"`
	EntityType   domain.PartyType `json:"entityType" binding:"required,partytype"`
	EntityID     string           `json:"entityID" binding:"required"`
	Description  string           `json:"description"`
	DueDate      *time.Time       `json:"dueDate"`
}

// ListLedgerEntriesParams are the composable AND filters for listing entries.
type ListLedgerEntriesParams struct {
	Type       *domain.EntryType   `form:"type"`
	Status     *domain.EntryStatus `form:"status"`
	EntityType *domain.PartyType   `form:"entityType"`
	EntityID   *string             `form:"entityID"`
	DateFrom   *time.Time          `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time          `form:"dateTo" time_format:"2006-01-02"`
	Limit      int                 `form:"limit,default=20"`
	Offset     int                 `form:"offset,default=0"`
}

// ToFilter converts query params to the repository filter.
func (p ListLedgerEntriesParams) ToFilter() domain.LedgerEntryFilter {
	return domain.LedgerEntryFilter{
		Type:       p.Type,
		Status:     p.Status,
		EntityType: p.EntityType,
		EntityID:   p.EntityID,
		DateFrom:   p.DateFrom,
		DateTo:     p.DateTo,
	}
}

// DebtPaymentRequest settles a ledger entry in full from an account.
type DebtPaymentRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}

// LedgerPaymentRequest records a partial settlement against an entry.
type LedgerPaymentRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// LedgerEntryResponse mirrors domain.LedgerEntry.
type LedgerEntryResponse struct {
	EntryID        string               `json:"entryID"`
	Type           domain.EntryType     `json:"type"`
	Status         domain.EntryStatus   `json:"status"`
	OriginalAmount decimal.Decimal      `json:"originalAmount"`
	PaidAmount     decimal.Decimal      `json:"paidAmount"`
	PendingAmount  decimal.Decimal      `json:"pendingAmount"`
	CurrencyCode   string               `json:"currencyCode"`
	Entity         domain.PartyRef      `json:"entity"`
	Source         *domain.OperationRef `json:"source,omitempty"`
	Description    string               `json:"description"`
	DueDate        *time.Time           `json:"dueDate,omitempty"`
	AccrualPeriod  string               `json:"accrualPeriod,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		Type:           e.Type,
		Status:         e.Status,
		OriginalAmount: e.OriginalAmount,
		PaidAmount:     e.PaidAmount,
		PendingAmount:  e.PendingAmount,
		CurrencyCode:   e.CurrencyCode,
		Entity:         e.Entity,
		Source:         e.Source,
		Description:    e.Description,
		DueDate:        e.DueDate,
		AccrualPeriod:  e.AccrualPeriod,
		CreatedAt:      e.CreatedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of entries.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(&e)
	}
	return res
}

// LedgerPaymentResponse mirrors domain.LedgerPayment.
type LedgerPaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	EntryID     string          `json:"entryID"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Description string          `json:"description"`
}

// ToLedgerPaymentResponses converts a slice of payments.
func ToLedgerPaymentResponses(payments []domain.LedgerPayment) []LedgerPaymentResponse {
	res := make([]LedgerPaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = LedgerPaymentResponse{
			PaymentID:   p.PaymentID,
			EntryID:     p.EntryID,
			Amount:      p.Amount,
			AccountID:   p.AccountID,
			UserID:      p.UserID,
			PaymentDate: p.PaymentDate,
			Description: p.Description,
		}
	}
	return res
}
