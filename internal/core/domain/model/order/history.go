package order

import (
	"errors"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created by an Order transition or RestoreHistoryEntry")

// HistoryEntry is one immutable row of an order's status log.
// From is nil for the creation entry; ActorID is nil for system-initiated
// changes.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      *Status
	to        Status
	actorID   *kernel.UUID
	note      string
	createdAt time.Time

	guard guard.ConstructorGuard
}

func newHistoryEntry(orderID kernel.UUID, from *Status, to Status, actor *kernel.UUID, note string, at time.Time) HistoryEntry {
	return HistoryEntry{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		from:      from,
		to:        to,
		actorID:   copyUUID(actor),
		note:      note,
		createdAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
}

// RestoreHistoryEntry rebuilds an entry read from persistence.
func RestoreHistoryEntry(
	id, orderID kernel.UUID,
	from *Status,
	to Status,
	actor *kernel.UUID,
	note string,
	createdAt time.Time,
) (HistoryEntry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), to.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if from != nil {
		if err := from.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if createdAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("createdAt")
	}

	entry := newHistoryEntry(orderID, from, to, actor, note, createdAt)
	entry.id = id
	return entry, nil
}

func (h HistoryEntry) Validate() error {
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

func (h HistoryEntry) ID() kernel.UUID {
	return h.id
}

func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// From returns the prior status, nil for the creation entry.
func (h HistoryEntry) From() *Status {
	if h.from == nil {
		return nil
	}
	from := *h.from
	return &from
}

func (h HistoryEntry) To() Status {
	return h.to
}

// ActorID returns who caused the change, nil for the system.
func (h HistoryEntry) ActorID() *kernel.UUID {
	return copyUUID(h.actorID)
}

func (h HistoryEntry) Note() string {
	return h.note
}

func (h HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
