package domain_test

import (
	"testing"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEntry(original string) domain.LedgerEntry {
	amount := decimal.RequireFromString(original)
	return domain.LedgerEntry{
		EntryID:        "entry-1",
		Type:           domain.EntryPayable,
		Status:         domain.EntryPending,
		OriginalAmount: amount,
		PaidAmount:     decimal.Zero,
		PendingAmount:  amount,
		CurrencyCode:   "USD",
		Entity:         domain.PartyRef{Type: domain.PartyProvider, ID: "prov-1"},
	}
}

func TestApplyPayment_Partial(t *testing.T) {
	entry := pendingEntry("100")

	updated, err := entry.ApplyPayment(decimal.RequireFromString("40"))
	require.NoError(t, err)

	assert.Equal(t, domain.EntryPending, updated.Status)
	assert.True(t, updated.PaidAmount.Equal(decimal.RequireFromString("40")))
	assert.True(t, updated.PendingAmount.Equal(decimal.RequireFromString("60")))
}

func TestApplyPayment_PartialReachesFullFlipsStatus(t *testing.T) {
	entry := pendingEntry("100")

	updated, err := entry.ApplyPayment(decimal.RequireFromString("60"))
	require.NoError(t, err)
	updated, err = updated.ApplyPayment(decimal.RequireFromString("40"))
	require.NoError(t, err)

	assert.Equal(t, domain.EntryPaid, updated.Status)
	assert.True(t, updated.PendingAmount.IsZero())
}

func TestApplyPayment_FullSettlement(t *testing.T) {
	entry := pendingEntry("250.50")

	updated, err := entry.ApplyPayment(entry.PendingAmount)
	require.NoError(t, err)

	assert.Equal(t, domain.EntryPaid, updated.Status)
	assert.True(t, updated.PaidAmount.Equal(entry.OriginalAmount))
}

func TestApplyPayment_Overpayment(t *testing.T) {
	entry := pendingEntry("100")

	_, err := entry.ApplyPayment(decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsPending)
}

func TestApplyPayment_AlreadyPaid(t *testing.T) {
	entry := pendingEntry("100")
	updated, err := entry.ApplyPayment(decimal.RequireFromString("100"))
	require.NoError(t, err)

	_, err = updated.ApplyPayment(decimal.RequireFromString("1"))
	assert.ErrorIs(t, err, domain.ErrEntryAlreadyPaid)
}

func TestApplyPayment_NonPositive(t *testing.T) {
	entry := pendingEntry("100")

	_, err := entry.ApplyPayment(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNonPositivePayment)
}
