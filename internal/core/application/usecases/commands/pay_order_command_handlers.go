package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// PayOrderCommandHandler settles unpaid orders. The three payment commands
// share one code path: a wallet payment is a hybrid payment whose wallet part
// equals the price, and a gateway payment is one whose wallet part is zero.
//
// Every call locks the order row, then the client's wallet row, and commits
// the debit, the payment records and the WRITER_PENDING transition together.
//
// Example:
//
//	cmd, _ := NewPayWithHybridCommand(orderID, kernel.MustMoney("40.00"), "txn1", &clientID)
//	o, err := handler.HandleHybrid(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientFunds):
//	case errors.Is(err, errs.ErrExternalConfirmation):
//	case errors.Is(err, errs.ErrInvalidTransition):
//	}
type PayOrderCommandHandler struct {
	uowFactory UoWFactory
	settlement settlement
}

func NewPayOrderCommandHandler(uowFactory UoWFactory) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		settlement: newSettlement(nil),
	}
}

func (h PayOrderCommandHandler) HandleWallet(ctx context.Context, cmd PayWithWalletCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.pay(ctx, "PayWithWallet", cmd.OrderID(), nil, nil, cmd.ActorID())
}

func (h PayOrderCommandHandler) HandleGateway(ctx context.Context, cmd PayWithGatewayCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	zero := kernel.ZeroMoney()
	txn := cmd.ExternalTxnID()
	return h.pay(ctx, "PayWithGateway", cmd.OrderID(), &zero, &txn, cmd.ActorID())
}

func (h PayOrderCommandHandler) HandleHybrid(ctx context.Context, cmd PayWithHybridCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	amount := cmd.WalletAmount()
	txn := cmd.ExternalTxnID()
	return h.pay(ctx, "PayWithHybrid", cmd.OrderID(), &amount, &txn, cmd.ActorID())
}

// pay settles orderID. A nil walletAmount means the full price.
func (h PayOrderCommandHandler) pay(
	ctx context.Context,
	name string,
	orderID kernel.UUID,
	walletAmount *kernel.Money,
	externalTxnID *string,
	actor *kernel.UUID,
) (_ *order.Order, err error) {
	ctx, span := startSpan(ctx, name, attribute.String("order.id", orderID.String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	amount := o.Price()
	if walletAmount != nil {
		amount = *walletAmount
	}

	if err = h.settlement.pay(ctx, uow, o, amount, externalTxnID, actor, time.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
