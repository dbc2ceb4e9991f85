package commands

import (
	"context"
	"fmt"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/core/domain/services"
	"paperdesk/internal/core/ports"
	"paperdesk/internal/pkg/errs"
)

// settlement moves money for an order that is already locked inside uow.
// Locks are always taken order first, wallet second.
type settlement struct {
	refunds ports.RefundGateway
	planner services.RefundPlanner
}

func newSettlement(refunds ports.RefundGateway) settlement {
	return settlement{
		refunds: refunds,
		planner: services.NewRefundPlanner(),
	}
}

// pay settles the full price of o: walletAmount from the client's wallet and
// the rest as a gateway payment confirmed by externalTxnID. walletAmount equal
// to the price is a wallet payment, zero is a gateway payment, anything
// between is a hybrid payment recorded as two method=hybrid records.
func (s settlement) pay(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	walletAmount kernel.Money,
	externalTxnID *string,
	actor *kernel.UUID,
	now time.Time,
) error {
	if o.Status() != order.WaitingForPayment {
		return errs.NewInvalidTransitionError(o.Status(), order.WriterPending)
	}

	price := o.Price()
	if walletAmount.IsNegative() || walletAmount.GreaterThan(price) {
		return errs.NewValueIsOutOfRangeError("wallet amount", walletAmount, "0.00", price)
	}
	gatewayAmount := price.Sub(walletAmount)

	method := payment.MethodHybrid
	debitMethod := wallet.MethodHybrid
	switch {
	case gatewayAmount.IsZero():
		method, debitMethod = payment.MethodWallet, wallet.MethodWallet
	case walletAmount.IsZero():
		method = payment.MethodPaypal
	}

	orderID := o.ID()
	var records []*payment.Payment

	if walletAmount.IsPositive() {
		walletRepo := uow.WalletRepository()
		w, err := walletRepo.GetForUpdate(ctx, o.ClientID())
		if err != nil {
			return err
		}

		description := fmt.Sprintf("payment for order %s", orderID)
		if _, err = w.Debit(walletAmount, description, debitMethod, &orderID, now); err != nil {
			return err
		}
		if err = walletRepo.Save(ctx, w); err != nil {
			return err
		}

		p, err := payment.NewPayment(orderID, o.ClientID(), walletAmount, method, nil, now)
		if err != nil {
			return err
		}
		records = append(records, p)
	}

	if gatewayAmount.IsPositive() {
		if externalTxnID == nil {
			return errs.NewExternalConfirmationErrorWithCause("", errs.NewValueIsRequiredError("externalTxnId"))
		}

		// A malformed confirmation fails here, after the debit above; the
		// caller's rollback undoes the debit.
		p, err := payment.NewPayment(orderID, o.ClientID(), gatewayAmount, method, externalTxnID, now)
		if err != nil {
			return err
		}
		records = append(records, p)
	}

	if err := uow.PaymentRepository().Add(ctx, records...); err != nil {
		return err
	}

	return s.transition(ctx, uow, o, order.WriterPending, actor, "payment received: "+string(method), now)
}

// reverse returns every unrefunded payment of o. Gateway refunds run first;
// wallet credits are appended only after all of them were confirmed. Any
// gateway failure aborts with an *errs.ExternalConfirmationError and the
// caller rolls back.
func (s settlement) reverse(ctx context.Context, uow UoW, o *order.Order, reason string, now time.Time) error {
	paymentRepo := uow.PaymentRepository()

	payments, err := paymentRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	plan := s.planner.Plan(payments)
	if plan.IsEmpty() {
		return nil
	}

	refunds := make([]*payment.Payment, 0, len(plan.Gateway)+len(plan.Wallet))

	for _, p := range plan.Gateway {
		var ref string
		if txn := p.ExternalTxnID(); txn != nil {
			ref = *txn
		}

		refundID, refundErr := s.refunds.Refund(ctx, ports.RefundRequest{
			PaymentID:     p.ID(),
			OrderID:       p.OrderID(),
			ExternalTxnID: ref,
			Amount:        p.Amount(),
			Reason:        reason,
		})
		if refundErr != nil {
			return errs.NewExternalConfirmationErrorWithCause(ref, refundErr)
		}

		record, recErr := payment.NewRefundRecord(p, refundID, now)
		if recErr != nil {
			return recErr
		}
		refunds = append(refunds, record)
	}

	if len(plan.Wallet) > 0 {
		walletRepo := uow.WalletRepository()
		orderID := o.ID()
		wallets := make(map[kernel.UUID]*wallet.Wallet)

		for _, p := range plan.Wallet {
			w, ok := wallets[p.PayerID()]
			if !ok {
				w, err = walletRepo.GetForUpdate(ctx, p.PayerID())
				if err != nil {
					return err
				}
				wallets[p.PayerID()] = w
			}

			description := fmt.Sprintf("refund for order %s", orderID)
			if _, err = w.Credit(p.Amount(), description, wallet.MethodRefund, &orderID, now); err != nil {
				return err
			}

			record, recErr := payment.NewRefundRecord(p, "", now)
			if recErr != nil {
				return recErr
			}
			refunds = append(refunds, record)
		}

		for _, w := range wallets {
			if err = walletRepo.Save(ctx, w); err != nil {
				return err
			}
		}
	}

	return paymentRepo.Add(ctx, refunds...)
}

// transition applies the state machine and stores the order with its new
// history entry.
func (s settlement) transition(
	ctx context.Context,
	uow interface {
		OrderRepoFactory
		StatusHistoryRepoFactory
	},
	o *order.Order,
	target order.Status,
	actor *kernel.UUID,
	note string,
	now time.Time,
) error {
	entry, err := o.TransitionTo(target, actor, note, now)
	if err != nil {
		return err
	}
	return persistChange(ctx, uow, o, entry)
}

func persistChange(
	ctx context.Context,
	uow interface {
		OrderRepoFactory
		StatusHistoryRepoFactory
	},
	o *order.Order,
	entry order.HistoryEntry,
) error {
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.StatusHistoryRepository().Add(ctx, entry)
}

// cancel runs the reversal and moves o to CANCELLED. A CANCELLED self-loop
// only logs.
func (s settlement) cancel(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	actor *kernel.UUID,
	note string,
	now time.Time,
) error {
	if err := order.ValidateTransition(o.Status(), order.Cancelled); err != nil {
		return err
	}

	if o.Status() != order.Cancelled {
		if err := s.reverse(ctx, uow, o, note, now); err != nil {
			return err
		}
	}

	return s.transition(ctx, uow, o, order.Cancelled, actor, note, now)
}
