package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories returned after Begin share its transaction. Domain events of
// aggregates saved through them are published only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StatusHistoryRepository() StatusHistoryRepository
	WalletRepository() WalletRepository
	PaymentRepository() PaymentRepository
	PricingRepository() PricingRepository
}
