package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/pkg/guard"
)

var (
	ErrCreditWalletCommandIsNotConstructed = errors.New(
		"CreditWalletCommand must be created via NewCreditWalletCommand constructor",
	)
	ErrDebitWalletCommandIsNotConstructed = errors.New(
		"DebitWalletCommand must be created via NewDebitWalletCommand constructor",
	)
	ErrTopUpWalletCommandIsNotConstructed = errors.New(
		"TopUpWalletCommand must be created via NewTopUpWalletCommand constructor",
	)
)

// CreditWalletCommand appends a completed credit to a user's wallet.
type CreditWalletCommand struct {
	userID      kernel.UUID
	amount      kernel.Money
	description string
	method      wallet.Method
	orderID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreditWalletCommand creates a command to add amount to the wallet of
// userID. The wallet is created on first use.
func NewCreditWalletCommand(
	userID kernel.UUID,
	amount kernel.Money,
	description string,
	method wallet.Method,
	orderID *kernel.UUID,
) (CreditWalletCommand, error) {
	ref, orderErr := optionalID(orderID)
	if err := errors.Join(
		userID.Validate(),
		amount.ValidatePositive("amount"),
		method.Validate(),
		orderErr,
	); err != nil {
		return CreditWalletCommand{}, err
	}

	return CreditWalletCommand{
		userID:      userID,
		amount:      amount,
		description: description,
		method:      method,
		orderID:     ref,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreditWalletCommand) Validate() error {
	return c.guard.Validate(ErrCreditWalletCommandIsNotConstructed)
}

func (c CreditWalletCommand) UserID() kernel.UUID   { return c.userID }
func (c CreditWalletCommand) Amount() kernel.Money  { return c.amount }
func (c CreditWalletCommand) Description() string   { return c.description }
func (c CreditWalletCommand) Method() wallet.Method { return c.method }
func (c CreditWalletCommand) OrderID() *kernel.UUID { return c.orderID }

// DebitWalletCommand appends a completed debit. It fails with
// *errs.InsufficientFundsError when the amount exceeds the balance.
type DebitWalletCommand struct {
	userID      kernel.UUID
	amount      kernel.Money
	description string
	orderID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDebitWalletCommand creates a command to take amount from the wallet of
// userID. Insufficient funds are reported by the handler.
func NewDebitWalletCommand(
	userID kernel.UUID,
	amount kernel.Money,
	description string,
	orderID *kernel.UUID,
) (DebitWalletCommand, error) {
	ref, orderErr := optionalID(orderID)
	if err := errors.Join(userID.Validate(), amount.ValidatePositive("amount"), orderErr); err != nil {
		return DebitWalletCommand{}, err
	}

	return DebitWalletCommand{
		userID:      userID,
		amount:      amount,
		description: description,
		orderID:     ref,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DebitWalletCommand) Validate() error {
	return c.guard.Validate(ErrDebitWalletCommandIsNotConstructed)
}

func (c DebitWalletCommand) UserID() kernel.UUID   { return c.userID }
func (c DebitWalletCommand) Amount() kernel.Money  { return c.amount }
func (c DebitWalletCommand) Description() string   { return c.description }
func (c DebitWalletCommand) OrderID() *kernel.UUID { return c.orderID }

// TopUpWalletCommand credits money the user paid in through the gateway.
type TopUpWalletCommand struct {
	userID        kernel.UUID
	amount        kernel.Money
	externalTxnID string

	guard guard.ConstructorGuard
}

// NewTopUpWalletCommand creates a command to credit a gateway top-up.
//
// Parameters:
//   - userID: owner of the wallet
//   - amount: positive amount confirmed by the gateway
//   - externalTxnID: gateway confirmation, single-use across payments and top-ups
//
// Returns:
//   - TopUpWalletCommand: the validated command
//   - error: a validation error, or an *errs.ExternalConfirmationError for a
//     malformed confirmation
//
// Example:
//
//	cmd, err := NewTopUpWalletCommand(userID, kernel.MustMoney("50.00"), "PAYID-42")
//	if err != nil {
//	    return err
//	}
//	entry, err := handler.HandleTopUp(ctx, cmd)
func NewTopUpWalletCommand(userID kernel.UUID, amount kernel.Money, externalTxnID string) (TopUpWalletCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		amount.ValidatePositive("amount"),
		payment.ValidateExternalTransactionID(externalTxnID),
	); err != nil {
		return TopUpWalletCommand{}, err
	}

	return TopUpWalletCommand{
		userID:        userID,
		amount:        amount,
		externalTxnID: externalTxnID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c TopUpWalletCommand) Validate() error {
	return c.guard.Validate(ErrTopUpWalletCommandIsNotConstructed)
}

func (c TopUpWalletCommand) UserID() kernel.UUID   { return c.userID }
func (c TopUpWalletCommand) Amount() kernel.Money  { return c.amount }
func (c TopUpWalletCommand) ExternalTxnID() string { return c.externalTxnID }

