package wallet

import (
	"errors"
	"fmt"
	"time"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet instance was not created through
	// NewWallet or RestoreWallet.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")
)

// Wallet is the per-user balance aggregate.
//
// The balance is never stored as truth: it is the fold of the completed
// ledger entries (see Balance). cachedBalance mirrors the wallets table
// column and is refreshed whenever the repository saves the wallet.
//
// Wallet follows these invariants:
//   - A debit never takes the balance below zero
//   - Every entry amount is positive
//   - Entries are appended, never changed
type Wallet struct {
	id            kernel.UUID
	userID        kernel.UUID
	balance       kernel.Money
	cachedBalance kernel.Money
	pending       []Transaction

	events.Recorder
	isConstructed bool
}

// NewWallet creates an empty wallet for userID.
//
// Parameters:
//   - id: identifier of the wallet
//   - userID: owner of the wallet; a user has at most one wallet
//
// Returns:
//   - *Wallet: a wallet with zero ledger and cached balance
//   - error: a validation error if either identifier is empty
//
// Example:
//
//	w, err := wallet.NewWallet(kernel.NewUUID(), userID)
//	if err != nil {
//	    return err
//	}
//	_, err = w.Credit(kernel.MustMoney("25.00"), "refund of cancelled order", wallet.MethodRefund, &orderID, time.Now())
func NewWallet(id, userID kernel.UUID) (*Wallet, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:            id,
		userID:        userID,
		balance:       kernel.ZeroMoney(),
		cachedBalance: kernel.ZeroMoney(),
		isConstructed: true,
	}, nil
}

// RestoreWallet rebuilds a wallet whose ledger balance was computed by the
// repository from the transaction log.
//
// Parameters:
//   - id, userID: identifiers read from the wallets row
//   - ledgerBalance: sum of the signed completed entries
//   - cachedBalance: the denormalized balance column, possibly stale
//
// Returns:
//   - *Wallet: the restored wallet; IsCacheConsistent reports a drift
//   - error: a validation error, or ErrValueIsOutOfRange for a negative ledger
func RestoreWallet(id, userID kernel.UUID, ledgerBalance, cachedBalance kernel.Money) (*Wallet, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	if ledgerBalance.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("balance", ledgerBalance, "0.00", "unbounded")
	}

	return &Wallet{
		id:            id,
		userID:        userID,
		balance:       ledgerBalance,
		cachedBalance: cachedBalance,
		isConstructed: true,
	}, nil
}

func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

func (w *Wallet) ID() kernel.UUID {
	return w.id
}

func (w *Wallet) UserID() kernel.UUID {
	return w.userID
}

// Balance is the ledger-derived balance including unsaved entries.
func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

func (w *Wallet) CachedBalance() kernel.Money {
	return w.cachedBalance
}

// IsCacheConsistent reports whether the cached column agrees with the ledger.
func (w *Wallet) IsCacheConsistent() bool {
	return w.cachedBalance.Equal(w.balance)
}

// Credit appends a completed credit entry.
func (w *Wallet) Credit(
	amount kernel.Money,
	description string,
	method Method,
	orderID *kernel.UUID,
	now time.Time,
) (Transaction, error) {
	if err := w.Validate(); err != nil {
		return Transaction{}, err
	}
	if err := errors.Join(amount.ValidatePositive("amount"), method.Validate()); err != nil {
		return Transaction{}, err
	}

	return w.append(KindCredit, amount, description, method, orderID, nil, now)
}

// TopUp appends a completed paypal credit backed by a gateway confirmation.
//
// Parameters:
//   - amount: positive amount paid in through the gateway
//   - externalTxnID: the gateway confirmation; the repository rejects one
//     already recorded on any ledger entry or payment
//   - now: entry timestamp
//
// Returns:
//   - Transaction: the appended entry
//   - error: *errs.ExternalConfirmationError for a malformed confirmation,
//     a validation error for a non-positive amount
//
// Example:
//
//	entry, err := w.TopUp(kernel.MustMoney("50.00"), "PAYID-42", time.Now())
func (w *Wallet) TopUp(amount kernel.Money, externalTxnID string, now time.Time) (Transaction, error) {
	if err := w.Validate(); err != nil {
		return Transaction{}, err
	}
	if err := amount.ValidatePositive("amount"); err != nil {
		return Transaction{}, err
	}

	description := fmt.Sprintf("wallet top-up via gateway %s", externalTxnID)
	return w.append(KindCredit, amount, description, MethodPaypal, nil, &externalTxnID, now)
}

// Debit appends a completed debit entry.
//
// Returns an *errs.InsufficientFundsError when amount exceeds the balance.
// The caller must hold the wallet row lock for the check to be meaningful.
func (w *Wallet) Debit(
	amount kernel.Money,
	description string,
	method Method,
	orderID *kernel.UUID,
	now time.Time,
) (Transaction, error) {
	if err := w.Validate(); err != nil {
		return Transaction{}, err
	}
	if err := errors.Join(amount.ValidatePositive("amount"), method.Validate()); err != nil {
		return Transaction{}, err
	}
	if amount.GreaterThan(w.balance) {
		return Transaction{}, errs.NewInsufficientFundsError(amount, w.balance)
	}

	return w.append(KindDebit, amount, description, method, orderID, nil, now)
}

func (w *Wallet) append(
	kind Kind,
	amount kernel.Money,
	description string,
	method Method,
	orderID *kernel.UUID,
	externalTxnID *string,
	now time.Time,
) (Transaction, error) {
	entry, err := RestoreTransaction(
		kernel.NewUUID(), w.id, kind, amount, description, orderID, externalTxnID, method, EntryCompleted, now.UTC(),
	)
	if err != nil {
		return Transaction{}, err
	}

	w.pending = append(w.pending, entry)
	w.balance = w.balance.Add(entry.Signed())
	w.Record(EntryAppended{
		WalletID: w.id,
		UserID:   w.userID,
		EntryID:  entry.ID(),
		Kind:     kind,
		Method:   method,
		Amount:   amount,
		OrderID:  copyUUID(orderID),
		At:       entry.CreatedAt(),
	})

	return entry, nil
}

// PendingEntries returns the entries appended since the wallet was loaded or
// last saved.
func (w *Wallet) PendingEntries() []Transaction {
	out := make([]Transaction, len(w.pending))
	copy(out, w.pending)
	return out
}

// MarkSaved is called by the repository once pending entries and the cached
// balance were written.
func (w *Wallet) MarkSaved() {
	w.pending = nil
	w.cachedBalance = w.balance
}
