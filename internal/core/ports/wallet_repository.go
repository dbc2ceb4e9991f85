package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallets and their
// ledger. Both getters lock the wallet row (SELECT ... FOR UPDATE) and fold the
// ledger into the balance after the lock is taken.
type WalletRepository interface {
	// GetForUpdate returns the wallet of userID, creating an empty one on
	// first use.
	GetForUpdate(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error)

	// GetByIDForUpdate returns an existing wallet or an *errs.ObjectNotFoundError.
	GetByIDForUpdate(ctx context.Context, walletID kernel.UUID) (*wallet.Wallet, error)

	// ListIDs returns the ids of every wallet.
	ListIDs(ctx context.Context) ([]kernel.UUID, error)

	// Save appends the pending ledger entries and refreshes the cached
	// balance column.
	Save(ctx context.Context, w *wallet.Wallet) error
}
