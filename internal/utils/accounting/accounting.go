package accounting

import (
	"fmt"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute tolerance for the balanced-entry check.
var BalanceTolerance = decimal.RequireFromString("0.001")

// DetermineDebitCredit encodes accounting polarity: given the account type and
// whether the source document shows a positive movement, it returns true when
// the posting leg must be a debit.
//
// Asset-like accounts (CASH, CXC, ASSET, EGRESS) increase with debit;
// liability/income-like accounts (CXP, INGRESS, EQUITY, LIABILITY) increase
// with credit.
func DetermineDebitCredit(accountType domain.AccountType, isPositive bool) (bool, error) {
	switch accountType {
	case domain.Cash, domain.ReceivableMaster, domain.Asset, domain.Egress:
		return isPositive, nil
	case domain.PayableMaster, domain.Ingress, domain.Equity, domain.Liability:
		return !isPositive, nil
	default:
		return false, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, accountType)
	}
}

// SignedAmount applies the polarity convention to one posting leg: debits to
// asset-like accounts are positive balance changes, credits negative, and the
// reverse for liability-like accounts.
func SignedAmount(amount decimal.Decimal, isDebit bool, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Cash, domain.ReceivableMaster, domain.Asset, domain.Egress:
		if !isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	case domain.PayableMaster, domain.Ingress, domain.Equity, domain.Liability:
		if isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, accountType)
	}
}

// ValidateBalanced checks the double-entry invariant over a set of movements:
// the debit and credit sums must match within BalanceTolerance and every
// amount must be positive.
func ValidateBalanced(movements []domain.Movement) error {
	if len(movements) < 2 {
		return fmt.Errorf("%w: at least two movements are required", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, m := range movements {
		if m.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: movement amount must be positive for account %q", apperrors.ErrValidation, m.AccountName)
		}
		if m.IsDebit {
			debits = debits.Add(m.Amount)
		} else {
			credits = credits.Add(m.Amount)
		}
	}

	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}
