package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
)

// PaymentRepository stores settlement records.
type PaymentRepository interface {
	// Add inserts payments. Reusing an external transaction id yields an
	// *errs.ExternalConfirmationError.
	Add(ctx context.Context, payments ...*payment.Payment) error

	// ListByOrder returns the payments of one order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
