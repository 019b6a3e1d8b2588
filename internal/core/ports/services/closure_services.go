package services

import (
	"context"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/dto"
)

// ClosureSvcFacade manages cash register reconciliation windows.
type ClosureSvcFacade interface {
	// OpenClosure opens a window; fails with apperrors.ErrConflict when the
	// account already has an open closure.
	OpenClosure(ctx context.Context, tenantID string, req dto.OpenClosureRequest, userID string) (*domain.CashClosure, error)

	// CloseClosure computes the theoretical balance from postings since the
	// window opened and records the difference against the counted amount.
	CloseClosure(ctx context.Context, tenantID, closureID string, req dto.CloseClosureRequest, userID string) (*domain.CashClosure, error)

	GetOpenClosure(ctx context.Context, tenantID, accountID string) (*domain.CashClosure, error)

	ListClosures(ctx context.Context, tenantID string, params dto.ListParams) ([]domain.CashClosure, error)
}
