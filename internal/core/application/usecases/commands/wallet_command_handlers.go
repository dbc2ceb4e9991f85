package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"

	"go.opentelemetry.io/otel/attribute"
)

// WalletCommandHandler appends ledger entries under the wallet row lock, so
// concurrent debits of one wallet serialize and the balance never goes
// negative.
//
// Example:
//
//	cmd, _ := NewDebitWalletCommand(userID, kernel.MustMoney("30.00"), "manual charge", nil)
//	entry, err := handler.HandleDebit(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientFunds) {
//	    // nothing was written
//	}
type WalletCommandHandler struct {
	uowFactory WalletUoWFactory
}

// NewWalletCommandHandler creates a handler for manual wallet changes and
// gateway top-ups. Every change runs in its own unit of work under the wallet
// row lock.
func NewWalletCommandHandler(uowFactory WalletUoWFactory) WalletCommandHandler {
	return WalletCommandHandler{uowFactory: uowFactory}
}

func (h WalletCommandHandler) HandleCredit(ctx context.Context, cmd CreditWalletCommand) (wallet.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return wallet.Transaction{}, err
	}
	return h.apply(ctx, "CreditWallet", cmd.UserID(), func(w *wallet.Wallet, now time.Time) (wallet.Transaction, error) {
		return w.Credit(cmd.Amount(), cmd.Description(), cmd.Method(), cmd.OrderID(), now)
	})
}

// HandleDebit returns an *errs.InsufficientFundsError when the balance does
// not cover the amount.
func (h WalletCommandHandler) HandleDebit(ctx context.Context, cmd DebitWalletCommand) (wallet.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return wallet.Transaction{}, err
	}
	return h.apply(ctx, "DebitWallet", cmd.UserID(), func(w *wallet.Wallet, now time.Time) (wallet.Transaction, error) {
		return w.Debit(cmd.Amount(), cmd.Description(), wallet.MethodWallet, cmd.OrderID(), now)
	})
}

// HandleTopUp credits money confirmed by the gateway. A confirmation id that
// already backs another top-up or an order payment is rejected with an
// *errs.ExternalConfirmationError and nothing is written.
func (h WalletCommandHandler) HandleTopUp(ctx context.Context, cmd TopUpWalletCommand) (wallet.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return wallet.Transaction{}, err
	}
	return h.apply(ctx, "TopUpWallet", cmd.UserID(), func(w *wallet.Wallet, now time.Time) (wallet.Transaction, error) {
		return w.TopUp(cmd.Amount(), cmd.ExternalTxnID(), now)
	})
}

func (h WalletCommandHandler) apply(
	ctx context.Context,
	name string,
	userID kernel.UUID,
	change func(w *wallet.Wallet, now time.Time) (wallet.Transaction, error),
) (_ wallet.Transaction, err error) {
	ctx, span := startSpan(ctx, name, attribute.String("user.id", userID.String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return wallet.Transaction{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WalletRepository()
	w, err := repo.GetForUpdate(ctx, userID)
	if err != nil {
		return wallet.Transaction{}, err
	}

	entry, err := change(w, time.Now())
	if err != nil {
		return wallet.Transaction{}, err
	}

	if err = repo.Save(ctx, w); err != nil {
		return wallet.Transaction{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return wallet.Transaction{}, err
	}

	return entry, nil
}
