package commands

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"

	"go.opentelemetry.io/otel/attribute"
)

// WalletMismatch describes a wallet whose cached balance disagreed with its
// ledger.
type WalletMismatch struct {
	WalletID kernel.UUID
	UserID   kernel.UUID
	Cached   kernel.Money
	Ledger   kernel.Money
	Repaired bool
}

type ReconcileReport struct {
	Checked    int
	Mismatches []WalletMismatch
	Failed     map[kernel.UUID]error
}

// ReconcileWalletsCommandHandler checks each wallet in its own short
// transaction so that the row locks it takes do not pile up.
type ReconcileWalletsCommandHandler struct {
	uowFactory WalletUoWFactory
}

func NewReconcileWalletsCommandHandler(uowFactory WalletUoWFactory) ReconcileWalletsCommandHandler {
	return ReconcileWalletsCommandHandler{uowFactory: uowFactory}
}

// Handle returns an error only when the wallet list cannot be read. Per-wallet
// failures are collected in the report.
func (h ReconcileWalletsCommandHandler) Handle(ctx context.Context, cmd ReconcileWalletsCommand) (_ ReconcileReport, err error) {
	if err = cmd.Validate(); err != nil {
		return ReconcileReport{}, err
	}

	ctx, span := startSpan(ctx, "ReconcileWallets", attribute.Bool("repair", cmd.Repair()))
	defer func() { endSpan(span, err) }()

	ids, err := h.listWallets(ctx)
	if err != nil {
		return ReconcileReport{}, err
	}

	report := ReconcileReport{Failed: make(map[kernel.UUID]error)}
	for _, id := range ids {
		mismatch, checkErr := h.check(ctx, id, cmd.Repair())
		if checkErr != nil {
			report.Failed[id] = checkErr
			continue
		}

		report.Checked++
		if mismatch != nil {
			report.Mismatches = append(report.Mismatches, *mismatch)
		}
	}

	return report, nil
}

func (h ReconcileWalletsCommandHandler) listWallets(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.WalletRepository().ListIDs(ctx)
}

func (h ReconcileWalletsCommandHandler) check(ctx context.Context, walletID kernel.UUID, repair bool) (*WalletMismatch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WalletRepository()
	w, err := repo.GetByIDForUpdate(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if w.IsCacheConsistent() {
		return nil, nil
	}

	mismatch := &WalletMismatch{
		WalletID: w.ID(),
		UserID:   w.UserID(),
		Cached:   w.CachedBalance(),
		Ledger:   w.Balance(),
	}
	if !repair {
		return mismatch, nil
	}

	if err = repo.Save(ctx, w); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	mismatch.Repaired = true
	return mismatch, nil
}
