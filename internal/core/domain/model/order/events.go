package order

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
)

// StatusChanged is recorded for every transition, including creation
// (From is Unknown) and self-loops.
type StatusChanged struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	ActorID *kernel.UUID
	Note    string
	At      time.Time
}

func (e StatusChanged) EventName() string {
	return "order.status_changed"
}

func (e StatusChanged) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}
