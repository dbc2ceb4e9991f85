package payment

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
)

// Recorded is raised for every new payment or refund record.
type Recorded struct {
	PaymentID kernel.UUID
	OrderID   kernel.UUID
	PayerID   kernel.UUID
	Amount    kernel.Money
	Method    Method
	Status    Status
	Origin    Origin
	At        time.Time
}

func (e Recorded) EventName() string {
	return "payment.recorded"
}

func (e Recorded) AggregateID() kernel.UUID {
	return e.PaymentID
}

func (e Recorded) OccurredAt() time.Time {
	return e.At
}
