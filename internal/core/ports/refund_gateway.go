package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
)

// RefundRequest asks the external gateway to return a gateway-origin payment.
type RefundRequest struct {
	PaymentID     kernel.UUID
	OrderID       kernel.UUID
	ExternalTxnID string
	Amount        kernel.Money
	Reason        string
}

// RefundGateway reverses gateway payments. Refund returns the gateway's
// refund reference; any error means the refund was not confirmed.
type RefundGateway interface {
	Refund(ctx context.Context, req RefundRequest) (string, error)
}
