// Package ports defines the contracts between the application core and its
// adapters: repositories bound to a unit of work, the refund gateway and the
// event publisher.
package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, price and writer of an existing order. The stored
	// version must equal aggregate.Version(); otherwise an
	// *errs.VersionIsInvalidError is returned and nothing is written. On
	// success the aggregate's version is incremented.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and holds an exclusive row lock on it until
	// the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// StatusHistoryRepository stores the append-only status log of orders.
type StatusHistoryRepository interface {
	Add(ctx context.Context, entries ...order.HistoryEntry) error

	// ListByOrder returns the log of one order in chronological order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)
}
