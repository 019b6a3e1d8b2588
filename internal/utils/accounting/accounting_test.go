package accounting_test

import (
	"testing"

	"github.com/cambiosoft/exchange_backend/internal/apperrors"
	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/cambiosoft/exchange_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineDebitCredit(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		isPositive  bool
		wantDebit   bool
	}{
		{"cash increase is debit", domain.Cash, true, true},
		{"cash decrease is credit", domain.Cash, false, false},
		{"receivable master increase is debit", domain.ReceivableMaster, true, true},
		{"payable master increase is credit", domain.PayableMaster, true, false},
		{"payable master decrease is debit", domain.PayableMaster, false, true},
		{"ingress increase is credit", domain.Ingress, true, false},
		{"egress increase is debit", domain.Egress, true, true},
		{"equity increase is credit", domain.Equity, true, false},
		{"asset increase is debit", domain.Asset, true, true},
		{"liability increase is credit", domain.Liability, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.DetermineDebitCredit(tt.accountType, tt.isPositive)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebit, got)
		})
	}
}

func TestDetermineDebitCredit_UnknownType(t *testing.T) {
	_, err := accounting.DetermineDebitCredit(domain.AccountType("BOGUS"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	got, err := accounting.SignedAmount(hundred, true, domain.Cash)
	require.NoError(t, err)
	assert.True(t, got.Equal(hundred))

	got, err = accounting.SignedAmount(hundred, false, domain.Cash)
	require.NoError(t, err)
	assert.True(t, got.Equal(hundred.Neg()))

	got, err = accounting.SignedAmount(hundred, true, domain.PayableMaster)
	require.NoError(t, err)
	assert.True(t, got.Equal(hundred.Neg()))

	got, err = accounting.SignedAmount(hundred, false, domain.Ingress)
	require.NoError(t, err)
	assert.True(t, got.Equal(hundred))
}

func TestValidateBalanced(t *testing.T) {
	mv := func(name string, amount string, debit bool) domain.Movement {
		return domain.Movement{AccountName: name, Amount: decimal.RequireFromString(amount), IsDebit: debit}
	}

	t.Run("balanced pair passes", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.Movement{
			mv("Caja USD", "100", true),
			mv("Ingresos", "100", false),
		})
		assert.NoError(t, err)
	})

	t.Run("within tolerance passes", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.Movement{
			mv("Caja USD", "100.0005", true),
			mv("Ingresos", "100", false),
		})
		assert.NoError(t, err)
	})

	t.Run("beyond tolerance fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.Movement{
			mv("Caja USD", "100.01", true),
			mv("Ingresos", "100", false),
		})
		assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
	})

	t.Run("single movement fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.Movement{mv("Caja USD", "100", true)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("non-positive amount fails", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.Movement{
			mv("Caja USD", "0", true),
			mv("Ingresos", "0", false),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
