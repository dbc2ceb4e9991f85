// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, takes the row
// locks it needs, mutates aggregates and commits once.
package commands

import (
	"context"

	"paperdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// OrderUoW covers commands that change an order without touching money.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusHistoryRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WalletUoW covers ledger-only commands.
	WalletUoW interface {
		TxManager
		WalletRepoFactory
	}

	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// UoW spans orders, history, wallets, payments and pricing. Settlement
	// and cancellation use it so that the order change and every money
	// movement commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   w, err := uow.WalletRepository().GetForUpdate(ctx, o.ClientID())
	//   // ... debit, record payments, transition
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StatusHistoryRepoFactory
		WalletRepoFactory
		PaymentRepoFactory
		PricingRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
