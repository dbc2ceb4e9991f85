// Package events defines the domain event contract shared by aggregates.
//
// Aggregates embed a Recorder and record events as their state changes. The
// unit of work pulls the events of every aggregate it tracked and hands them
// to an EventPublisher only after the transaction committed, so subscribers
// never observe a change that was rolled back.
package events

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
)

// Event is a fact about a committed state change.
type Event interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

// Source is implemented by aggregates that record events.
type Source interface {
	PullEvents() []Event
}

// Recorder accumulates events for one aggregate instance.
// It is not safe for concurrent use, like the aggregate that embeds it.
type Recorder struct {
	pending []Event
}

func (r *Recorder) Record(e Event) {
	r.pending = append(r.pending, e)
}

// PullEvents returns the recorded events and forgets them.
func (r *Recorder) PullEvents() []Event {
	pulled := r.pending
	r.pending = nil
	return pulled
}
