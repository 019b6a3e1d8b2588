package dto

import (
	"time"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementRequest is one posting leg addressed by account name.
type MovementRequest struct {
	AccountName string          `json:"accountName" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IsDebit     bool            `json:"isDebit"`
}

// RegisterTransactionRequest defines the data needed to post a balanced
// journal entry.
type RegisterTransactionRequest struct {
	Date          time.Time         `json:"date" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	ReferenceCode string            `json:"referenceCode"` // Optional, UUID generated if empty
	Movements     []MovementRequest `json:"movements" binding:"required,min=2,dive"`
	// RelatedTransactionID links a payment to the obligation it settles.
	RelatedTransactionID *string `json:"relatedTransactionID"`
}

// ToDomainMovements converts request legs to domain movements.
func (r RegisterTransactionRequest) ToDomainMovements() []domain.Movement {
	out := make([]domain.Movement, len(r.Movements))
	for i, m := range r.Movements {
		out[i] = domain.Movement{AccountName: m.AccountName, Amount: m.Amount, IsDebit: m.IsDebit}
	}
	return out
}

// TransactionDetailResponse mirrors one posting leg.
type TransactionDetailResponse struct {
	DetailID  string          `json:"detailID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	IsDebit   bool            `json:"isDebit"`
}

// TransactionResponse mirrors a journal entry header with optional legs.
type TransactionResponse struct {
	TransactionID string                      `json:"transactionID"`
	Date          time.Time                   `json:"date"`
	Description   string                      `json:"description"`
	ReferenceCode string                      `json:"referenceCode"`
	Status        domain.TransactionStatus    `json:"status"`
	Details       []TransactionDetailResponse `json:"details,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
	CreatedBy     string                      `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Description:   t.Description,
		ReferenceCode: t.ReferenceCode,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
	for _, d := range t.Details {
		resp.Details = append(resp.Details, TransactionDetailResponse{
			DetailID:  d.DetailID,
			AccountID: d.AccountID,
			Amount:    d.Amount,
			IsDebit:   d.IsDebit,
		})
	}
	return resp
}

// ListTransactionsResponse wraps a page of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
