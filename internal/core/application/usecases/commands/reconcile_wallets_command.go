package commands

import (
	"errors"

	"paperdesk/internal/pkg/guard"
)

var ErrReconcileWalletsCommandIsNotConstructed = errors.New(
	"ReconcileWalletsCommand must be created via NewReconcileWalletsCommand constructor",
)

// ReconcileWalletsCommand compares every wallet's cached balance with its
// ledger. With repair set, mismatching caches are overwritten.
type ReconcileWalletsCommand struct {
	repair bool

	guard guard.ConstructorGuard
}

// NewReconcileWalletsCommand creates a reconciliation run. With repair set,
// drifted cached balances are overwritten with the ledger sum.
func NewReconcileWalletsCommand(repair bool) ReconcileWalletsCommand {
	return ReconcileWalletsCommand{repair: repair, guard: guard.NewConstructorGuard()}
}

func (c ReconcileWalletsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileWalletsCommandIsNotConstructed)
}

func (c ReconcileWalletsCommand) Repair() bool {
	return c.repair
}
