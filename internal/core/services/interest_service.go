package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

const accrualPeriodLayout = "2006-01"

// interestService accrues monthly compound interest on investor capital.
// Interest compounds because the base includes previously accrued, still
// pending interest entries.
type interestService struct {
	investorRepo portsrepo.InvestorRepositoryWithTx
	ledgerRepo   portsrepo.LedgerRepositoryFacade
}

// NewInterestService creates the interest accrual service.
func NewInterestService(investorRepo portsrepo.InvestorRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.InterestSvcFacade {
	return &interestService{investorRepo: investorRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.InterestSvcFacade = (*interestService)(nil)

// RunAccrualSweep accrues interest for every eligible active investor. Each
// investor is its own unit of work: one failure never blocks the rest.
func (s *interestService) RunAccrualSweep(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	investors, err := s.investorRepo.ListActiveInvestors(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active investors: %w", err)
	}

	total := 0
	var sweepErr error
	for _, investor := range investors {
		created, err := s.AccrueInvestor(ctx, investor, now)
		if err != nil {
			logger.Error("Interest accrual failed for investor",
				slog.String("investor_id", investor.InvestorID),
				slog.String("error", err.Error()))
			sweepErr = errors.Join(sweepErr, fmt.Errorf("investor %s: %w", investor.InvestorID, err))
			continue
		}
		total += created
	}

	logger.Info("Interest accrual sweep finished",
		slog.Int("investors", len(investors)),
		slog.Int("entries_created", total))
	return total, sweepErr
}

// AccrueInvestor creates one interest entry per currency with a positive
// pending capital base. The calendar-month gate plus the unique accrual
// period constraint make the operation idempotent: re-running for the same
// month creates nothing.
func (s *interestService) AccrueInvestor(ctx context.Context, investor domain.Investor, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !investor.IsActive || !accrualDue(investor, now) {
		return 0, nil
	}

	pending, err := s.ledgerRepo.ListPendingPayablesByInvestor(ctx, investor.TenantID, investor.InvestorID)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending payables: %w", err)
	}

	// Compound base per currency: capital entries plus prior interest still
	// pending.
	baseByCurrency := make(map[string]decimal.Decimal)
	for _, entry := range pending {
		baseByCurrency[entry.CurrencyCode] = baseByCurrency[entry.CurrencyCode].Add(entry.PendingAmount)
	}
	if len(baseByCurrency) == 0 {
		return 0, nil
	}

	period := now.Format(accrualPeriodLayout)
	accrualTime := now.UTC()
	audit := domain.AuditFields{
		CreatedAt:     accrualTime,
		CreatedBy:     domain.SystemUserID,
		LastUpdatedAt: accrualTime,
		LastUpdatedBy: domain.SystemUserID,
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	created := 0
	for currency, base := range baseByCurrency {
		if !base.IsPositive() {
			continue
		}
		interest := pctOf(base, investor.InterestRate)
		entry := domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			TenantID:       investor.TenantID,
			Type:           domain.EntryPayable,
			Status:         domain.EntryPending,
			OriginalAmount: interest,
			PaidAmount:     decimal.Zero,
			PendingAmount:  interest,
			CurrencyCode:   currency,
			Entity:         domain.PartyRef{Type: domain.PartyInvestor, ID: investor.InvestorID},
			Description:    fmt.Sprintf("Monthly interest %s (%s%% on %s %s)", period, investor.InterestRate, base, currency),
			AccrualPeriod:  period,
			AuditFields:    audit,
		}
		if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// A concurrent run already booked this period.
				logger.Warn("Interest entry already exists for period",
					slog.String("investor_id", investor.InvestorID),
					slog.String("period", period),
					slog.String("currency", currency))
				continue
			}
			return 0, fmt.Errorf("failed to save interest entry: %w", err)
		}
		created++
	}

	if created > 0 {
		if err := s.investorRepo.UpdateLastInterestDateInTx(ctx, tx, investor.InvestorID, accrualTime, domain.SystemUserID, accrualTime); err != nil {
			return 0, fmt.Errorf("failed to stamp last interest date: %w", err)
		}
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to commit accrual: %w", err)
	}

	if created > 0 {
		logger.Info("Interest accrued",
			slog.String("investor_id", investor.InvestorID),
			slog.String("period", period),
			slog.Int("entries", created))
	}
	return created, nil
}

// accrualDue reports whether the investor is due for accrual: today is the
// payout day and no accrual has been stamped this calendar month.
func accrualDue(investor domain.Investor, now time.Time) bool {
	if now.Day() != payoutDayFor(investor.PayoutDay, now) {
		return false
	}
	if investor.LastInterestDate == nil {
		return true
	}
	last := investor.LastInterestDate
	return last.Year() != now.Year() || last.Month() != now.Month()
}

// payoutDayFor clamps the configured day to the last day of the current
// month, so day-31 investors still accrue in February.
func payoutDayFor(configured int, now time.Time) int {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if configured > lastDay {
		return lastDay
	}
	return configured
}
