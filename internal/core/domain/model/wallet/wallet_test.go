package wallet_test

import (
	"testing"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newWallet(t *testing.T, balance string) *wallet.Wallet {
	t.Helper()
	w, err := wallet.RestoreWallet(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(balance), kernel.MustMoney(balance))
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Run("should start empty", func(t *testing.T) {
		w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		assert.True(t, w.Balance().IsZero())
		assert.True(t, w.IsCacheConsistent())
		assert.Empty(t, w.PendingEntries())
	})

	t.Run("should require owner", func(t *testing.T) {
		_, err := wallet.NewWallet(kernel.NewUUID(), kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative ledger balance on restore", func(t *testing.T) {
		_, err := wallet.RestoreWallet(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney("-0.01"), kernel.ZeroMoney())

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should flag zero value wallet", func(t *testing.T) {
		var w wallet.Wallet

		_, err := w.Credit(kernel.MustMoney("1"), "", wallet.MethodPaypal, nil, testNow)

		require.ErrorIs(t, err, wallet.ErrWalletIsNotConstructed)
	})
}

func TestWallet_Credit(t *testing.T) {
	t.Run("should append a completed credit", func(t *testing.T) {
		w := newWallet(t, "10.00")
		orderID := kernel.NewUUID()

		entry, err := w.Credit(kernel.MustMoney("25.50"), "refund", wallet.MethodRefund, &orderID, testNow)

		require.NoError(t, err)
		assert.Equal(t, wallet.KindCredit, entry.Kind())
		assert.Equal(t, wallet.EntryCompleted, entry.Status())
		assert.Equal(t, wallet.MethodRefund, entry.Method())
		assert.True(t, entry.OrderID().IsEqual(orderID))
		assert.True(t, entry.WalletID().IsEqual(w.ID()))
		assert.Equal(t, "35.50", w.Balance().String())
		assert.False(t, w.IsCacheConsistent())
		assert.Len(t, w.PendingEntries(), 1)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		w := newWallet(t, "0")

		for _, amount := range []string{"0", "-5.00"} {
			_, err := w.Credit(kernel.MustMoney(amount), "", wallet.MethodPaypal, nil, testNow)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, amount)
		}
		assert.Empty(t, w.PendingEntries())
	})

	t.Run("should reject unknown method", func(t *testing.T) {
		w := newWallet(t, "0")

		_, err := w.Credit(kernel.MustMoney("1"), "", wallet.Method("crypto"), nil, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWallet_Debit(t *testing.T) {
	t.Run("should allow debiting the whole balance", func(t *testing.T) {
		w := newWallet(t, "30.00")

		entry, err := w.Debit(kernel.MustMoney("30.00"), "order payment", wallet.MethodWallet, nil, testNow)

		require.NoError(t, err)
		assert.Equal(t, wallet.KindDebit, entry.Kind())
		assert.True(t, w.Balance().IsZero())
	})

	t.Run("should fail with insufficient funds and append nothing", func(t *testing.T) {
		w := newWallet(t, "40.00")

		_, err := w.Debit(kernel.MustMoney("40.01"), "", wallet.MethodWallet, nil, testNow)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		var fundsErr *errs.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
		assert.Equal(t, "40.01", fundsErr.Required)
		assert.Equal(t, "40.00", fundsErr.Available)
		assert.Equal(t, "40.00", w.Balance().String())
		assert.Empty(t, w.PendingEntries())
		assert.Empty(t, w.PullEvents())
	})

	t.Run("second debit sees the first", func(t *testing.T) {
		w := newWallet(t, "30.00")

		_, err := w.Debit(kernel.MustMoney("30.00"), "", wallet.MethodWallet, nil, testNow)
		require.NoError(t, err)
		_, err = w.Debit(kernel.MustMoney("30.00"), "", wallet.MethodWallet, nil, testNow)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.True(t, w.Balance().IsZero())
	})
}

func TestWallet_MarkSaved(t *testing.T) {
	w := newWallet(t, "5.00")
	_, err := w.Credit(kernel.MustMoney("5.00"), "", wallet.MethodPaypal, nil, testNow)
	require.NoError(t, err)

	w.MarkSaved()

	assert.Empty(t, w.PendingEntries())
	assert.True(t, w.IsCacheConsistent())
	assert.Equal(t, "10.00", w.CachedBalance().String())
}

func TestWallet_Events(t *testing.T) {
	w := newWallet(t, "50.00")
	orderID := kernel.NewUUID()

	_, err := w.Debit(kernel.MustMoney("20.00"), "", wallet.MethodHybrid, &orderID, testNow)
	require.NoError(t, err)

	evts := w.PullEvents()
	require.Len(t, evts, 1)
	appended, ok := evts[0].(wallet.EntryAppended)
	require.True(t, ok)
	assert.Equal(t, wallet.KindDebit, appended.Kind)
	assert.Equal(t, wallet.MethodHybrid, appended.Method)
	assert.True(t, appended.UserID.IsEqual(w.UserID()))
	assert.True(t, appended.OrderID.IsEqual(orderID))
	assert.Equal(t, "wallet.entry_appended", appended.EventName())
}

func TestBalance_LedgerProperties(t *testing.T) {
	walletID := kernel.NewUUID()
	entry := func(kind wallet.Kind, amount string, status wallet.EntryStatus) wallet.Transaction {
		tx, err := wallet.RestoreTransaction(
			kernel.NewUUID(), walletID, kind, kernel.MustMoney(amount), "", nil, nil, wallet.MethodWallet, status, testNow,
		)
		require.NoError(t, err)
		return tx
	}

	t.Run("should be zero for an empty ledger", func(t *testing.T) {
		assert.True(t, wallet.Balance(nil).IsZero())
	})

	t.Run("should count only completed entries", func(t *testing.T) {
		ledger := []wallet.Transaction{
			entry(wallet.KindCredit, "100.00", wallet.EntryCompleted),
			entry(wallet.KindDebit, "40.00", wallet.EntryCompleted),
			entry(wallet.KindCredit, "999.00", wallet.EntryPending),
			entry(wallet.KindDebit, "50.00", wallet.EntryFailed),
			entry(wallet.KindCredit, "0.50", wallet.EntryCompleted),
			entry(wallet.KindDebit, "10.00", wallet.EntryCancelled),
		}

		assert.Equal(t, "60.50", wallet.Balance(ledger).String())
	})

	t.Run("should equal credits minus debits for any wallet-produced ledger", func(t *testing.T) {
		w := newWallet(t, "0")
		steps := []struct {
			credit bool
			amount string
		}{
			{true, "12.34"}, {false, "2.34"}, {false, "11.00"}, {true, "0.01"}, {false, "10.01"}, {true, "7.77"},
		}

		credits, debits := kernel.ZeroMoney(), kernel.ZeroMoney()
		for _, s := range steps {
			amount := kernel.MustMoney(s.amount)
			if s.credit {
				_, err := w.Credit(amount, "", wallet.MethodPaypal, nil, testNow)
				require.NoError(t, err)
				credits = credits.Add(amount)
				continue
			}
			if _, err := w.Debit(amount, "", wallet.MethodWallet, nil, testNow); err == nil {
				debits = debits.Add(amount)
			}
			assert.False(t, w.Balance().IsNegative())
		}

		assert.True(t, w.Balance().Equal(credits.Sub(debits)))
		assert.True(t, wallet.Balance(w.PendingEntries()).Equal(w.Balance()))
	})
}

func TestRestoreTransaction(t *testing.T) {
	t.Run("should reject zero amount", func(t *testing.T) {
		_, err := wallet.RestoreTransaction(
			kernel.NewUUID(), kernel.NewUUID(), wallet.KindCredit, kernel.ZeroMoney(), "", nil, nil,
			wallet.MethodPaypal, wallet.EntryCompleted, testNow,
		)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unknown kind and status", func(t *testing.T) {
		_, err := wallet.RestoreTransaction(
			kernel.NewUUID(), kernel.NewUUID(), wallet.Kind("transfer"), kernel.MustMoney("1"), "", nil, nil,
			wallet.MethodPaypal, wallet.EntryStatus("settled"), testNow,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"transfer"`)
		assert.Contains(t, err.Error(), `"settled"`)
	})
}

func TestWallet_TopUp(t *testing.T) {
	t.Run("should record the gateway confirmation on the entry", func(t *testing.T) {
		w := newWallet(t, "10.00")

		entry, err := w.TopUp(kernel.MustMoney("100.00"), "TOPUP-42", testNow)

		require.NoError(t, err)
		assert.Equal(t, wallet.KindCredit, entry.Kind())
		assert.Equal(t, wallet.MethodPaypal, entry.Method())
		require.NotNil(t, entry.ExternalTxnID())
		assert.Equal(t, "TOPUP-42", *entry.ExternalTxnID())
		assert.Contains(t, entry.Description(), "TOPUP-42")
		assert.Equal(t, "110.00", w.Balance().String())
	})

	t.Run("should reject a malformed confirmation without appending", func(t *testing.T) {
		w := newWallet(t, "10.00")

		_, err := w.TopUp(kernel.MustMoney("5.00"), "bad id!", testNow)

		require.ErrorIs(t, err, errs.ErrExternalConfirmation)
		assert.Empty(t, w.PendingEntries())
		assert.Empty(t, w.PullEvents())
		assert.Equal(t, "10.00", w.Balance().String())
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		w := newWallet(t, "0")

		_, err := w.TopUp(kernel.ZeroMoney(), "TOPUP-1", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should leave credits and debits without confirmation", func(t *testing.T) {
		w := newWallet(t, "10.00")

		entry, err := w.Credit(kernel.MustMoney("1.00"), "", wallet.MethodPaypal, nil, testNow)

		require.NoError(t, err)
		assert.Nil(t, entry.ExternalTxnID())
	})
}

func TestRestoreTransaction_ExternalTxnID(t *testing.T) {
	ref := "PAYID-7"

	tx, err := wallet.RestoreTransaction(
		kernel.NewUUID(), kernel.NewUUID(), wallet.KindCredit, kernel.MustMoney("1"), "", nil, &ref,
		wallet.MethodPaypal, wallet.EntryCompleted, testNow,
	)

	require.NoError(t, err)
	ref = "changed"
	assert.Equal(t, "PAYID-7", *tx.ExternalTxnID())
}
