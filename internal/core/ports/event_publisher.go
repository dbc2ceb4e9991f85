package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/events"
)

// EventPublisher receives domain events after their transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.Event) error
}
