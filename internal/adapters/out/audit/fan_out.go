package audit

import (
	"context"
	"errors"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/ports"
)

// FanOut hands every batch to all publishers, even when one of them fails.
type FanOut struct {
	publishers []ports.EventPublisher
}

func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) Publish(ctx context.Context, evts ...events.Event) error {
	errList := make([]error, 0, len(f.publishers))
	for _, p := range f.publishers {
		errList = append(errList, p.Publish(ctx, evts...))
	}
	return errors.Join(errList...)
}
