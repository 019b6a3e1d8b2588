package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// LedgerSvcFacade manages payable/receivable obligations.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.LedgerEntry, error)

	ListEntries(ctx context.Context, tenantID string, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, error)

	ListPayments(ctx context.Context, tenantID, entryID string) ([]domain.LedgerPayment, error)
}
