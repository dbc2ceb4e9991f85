package wallet

import (
	"errors"
	"fmt"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrTransactionIsNotConstructed = errors.New("Transaction must be created by a Wallet or RestoreTransaction")

// Kind is the direction of a ledger entry.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

func (k Kind) Validate() error {
	switch k {
	case KindCredit, KindDebit:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a ledger entry kind", string(k)))
	}
}

// Method tells how the money moved.
type Method string

const (
	MethodWallet Method = "wallet"
	MethodPaypal Method = "paypal"
	MethodHybrid Method = "hybrid"
	MethodRefund Method = "refund"
)

func (m Method) Validate() error {
	switch m {
	case MethodWallet, MethodPaypal, MethodHybrid, MethodRefund:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a wallet method", string(m)))
	}
}

// EntryStatus of a ledger entry. Only completed entries count toward the
// balance.
type EntryStatus string

const (
	EntryPending   EntryStatus = "pending"
	EntryCompleted EntryStatus = "completed"
	EntryFailed    EntryStatus = "failed"
	EntryCancelled EntryStatus = "cancelled"
)

func (s EntryStatus) Validate() error {
	switch s {
	case EntryPending, EntryCompleted, EntryFailed, EntryCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an entry status", string(s)))
	}
}

// Transaction is one append-only wallet ledger entry.
type Transaction struct {
	id          kernel.UUID
	walletID    kernel.UUID
	kind        Kind
	amount      kernel.Money
	description string
	orderID     *kernel.UUID
	externalID  *string
	method      Method
	status      EntryStatus
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// RestoreTransaction rebuilds a ledger entry read from persistence.
//
// Parameters:
//   - id, walletID: entry and owning wallet identifiers
//   - kind, amount: direction and positive amount of the entry
//   - orderID: optional order the money moved for
//   - externalTxnID: optional gateway confirmation backing a top-up
//   - method, status: how the money moved and whether it counts
//
// Returns:
//   - Transaction: the restored entry
//   - error: a validation error naming the first invalid field
func RestoreTransaction(
	id, walletID kernel.UUID,
	kind Kind,
	amount kernel.Money,
	description string,
	orderID *kernel.UUID,
	externalTxnID *string,
	method Method,
	status EntryStatus,
	createdAt time.Time,
) (Transaction, error) {
	if err := errors.Join(
		id.Validate(),
		walletID.Validate(),
		kind.Validate(),
		amount.ValidatePositive("amount"),
		method.Validate(),
		status.Validate(),
		validateExternalID(externalTxnID),
	); err != nil {
		return Transaction{}, err
	}

	return Transaction{
		id:          id,
		walletID:    walletID,
		kind:        kind,
		amount:      amount,
		description: description,
		orderID:     copyUUID(orderID),
		externalID:  copyString(externalTxnID),
		method:      method,
		status:      status,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (t Transaction) Validate() error {
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

func (t Transaction) ID() kernel.UUID { return t.id }

func (t Transaction) WalletID() kernel.UUID { return t.walletID }

// Kind is KindCredit or KindDebit.
func (t Transaction) Kind() Kind { return t.kind }

// Amount is always positive; Signed applies the direction.
func (t Transaction) Amount() kernel.Money { return t.amount }

func (t Transaction) Description() string { return t.description }

// Method records how the money entered or left the wallet.
func (t Transaction) Method() Method { return t.method }

// Status is EntryCompleted for every entry this package appends.
func (t Transaction) Status() EntryStatus { return t.status }

// CreatedAt is in UTC.
func (t Transaction) CreatedAt() time.Time { return t.createdAt }

// OrderID links a payment debit or a refund credit to its order.
func (t Transaction) OrderID() *kernel.UUID {
	return copyUUID(t.orderID)
}

// ExternalTxnID is the gateway confirmation of a top-up, nil for every other
// entry.
func (t Transaction) ExternalTxnID() *string {
	return copyString(t.externalID)
}

// Signed returns the effect of the entry on the balance: +amount for a
// completed credit, -amount for a completed debit and zero otherwise.
func (t Transaction) Signed() kernel.Money {
	if t.status != EntryCompleted {
		return kernel.ZeroMoney()
	}
	if t.kind == KindDebit {
		return kernel.ZeroMoney().Sub(t.amount)
	}
	return t.amount
}

// Balance folds a ledger into its balance.
func Balance(entries []Transaction) kernel.Money {
	total := kernel.ZeroMoney()
	for _, e := range entries {
		total = total.Add(e.Signed())
	}
	return total
}

func validateExternalID(id *string) error {
	if id == nil {
		return nil
	}
	return payment.ValidateExternalTransactionID(*id)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
