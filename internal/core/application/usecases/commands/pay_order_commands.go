package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/pkg/guard"
)

var (
	ErrPayWithWalletCommandIsNotConstructed = errors.New(
		"PayWithWalletCommand must be created via NewPayWithWalletCommand constructor",
	)
	ErrPayWithGatewayCommandIsNotConstructed = errors.New(
		"PayWithGatewayCommand must be created via NewPayWithGatewayCommand constructor",
	)
	ErrPayWithHybridCommandIsNotConstructed = errors.New(
		"PayWithHybridCommand must be created via NewPayWithHybridCommand constructor",
	)
)

// PayWithWalletCommand settles the full price from the client's wallet.
type PayWithWalletCommand struct {
	orderID kernel.UUID
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayWithWalletCommand creates a command that pays the full order price
// from the client's wallet.
func NewPayWithWalletCommand(orderID kernel.UUID, actorID *kernel.UUID) (PayWithWalletCommand, error) {
	actor, actorErr := optionalID(actorID)
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return PayWithWalletCommand{}, err
	}

	return PayWithWalletCommand{orderID: orderID, actorID: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c PayWithWalletCommand) Validate() error {
	return c.guard.Validate(ErrPayWithWalletCommandIsNotConstructed)
}

func (c PayWithWalletCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PayWithWalletCommand) ActorID() *kernel.UUID {
	return c.actorID
}

// PayWithGatewayCommand records a gateway payment of the full price. The
// caller has already verified externalTxnID with the gateway.
type PayWithGatewayCommand struct {
	orderID       kernel.UUID
	externalTxnID string
	actorID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayWithGatewayCommand returns an *errs.ExternalConfirmationError for a
// malformed externalTxnID.
func NewPayWithGatewayCommand(
	orderID kernel.UUID,
	externalTxnID string,
	actorID *kernel.UUID,
) (PayWithGatewayCommand, error) {
	actor, actorErr := optionalID(actorID)
	if err := errors.Join(
		orderID.Validate(),
		payment.ValidateExternalTransactionID(externalTxnID),
		actorErr,
	); err != nil {
		return PayWithGatewayCommand{}, err
	}

	return PayWithGatewayCommand{
		orderID:       orderID,
		externalTxnID: externalTxnID,
		actorID:       actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c PayWithGatewayCommand) Validate() error {
	return c.guard.Validate(ErrPayWithGatewayCommandIsNotConstructed)
}

func (c PayWithGatewayCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PayWithGatewayCommand) ExternalTxnID() string {
	return c.externalTxnID
}

func (c PayWithGatewayCommand) ActorID() *kernel.UUID {
	return c.actorID
}

// PayWithHybridCommand splits the price between the wallet and the gateway.
// The external id is checked by the handler, after the wallet part, so it is
// kept verbatim here.
type PayWithHybridCommand struct {
	orderID       kernel.UUID
	walletAmount  kernel.Money
	externalTxnID string
	actorID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayWithHybridCommand creates a command that splits the price between the
// wallet and the gateway. walletAmount is checked against the price by the
// handler, since only the handler knows the price.
func NewPayWithHybridCommand(
	orderID kernel.UUID,
	walletAmount kernel.Money,
	externalTxnID string,
	actorID *kernel.UUID,
) (PayWithHybridCommand, error) {
	actor, actorErr := optionalID(actorID)
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return PayWithHybridCommand{}, err
	}

	return PayWithHybridCommand{
		orderID:       orderID,
		walletAmount:  walletAmount,
		externalTxnID: externalTxnID,
		actorID:       actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c PayWithHybridCommand) Validate() error {
	return c.guard.Validate(ErrPayWithHybridCommandIsNotConstructed)
}

func (c PayWithHybridCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PayWithHybridCommand) WalletAmount() kernel.Money {
	return c.walletAmount
}

func (c PayWithHybridCommand) ExternalTxnID() string {
	return c.externalTxnID
}

func (c PayWithHybridCommand) ActorID() *kernel.UUID {
	return c.actorID
}
