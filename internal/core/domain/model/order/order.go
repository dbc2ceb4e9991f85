package order

import (
	"errors"
	"fmt"
	"time"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// MaxPages bounds the page count of a single order.
const MaxPages = 500

// Details are the client-chosen properties of an order that drive its price.
type Details struct {
	ClientID        kernel.UUID
	AcademicLevelID kernel.UUID
	ServiceTypeID   kernel.UUID
	DeadlineTypeID  kernel.UUID
	LanguageID      kernel.UUID
	Pages           int
	Words           int
}

// Validate checks identifiers and counts.
func (d Details) Validate() error {
	var pagesErr, wordsErr error
	if d.Pages < 1 || d.Pages > MaxPages {
		pagesErr = errs.NewValueIsOutOfRangeError("pages", d.Pages, 1, MaxPages)
	}
	if d.Words < 0 {
		wordsErr = errs.NewValueIsInvalidErrorWithCause("words", fmt.Errorf("%d is negative", d.Words))
	}

	return errors.Join(
		d.ClientID.Validate(),
		d.AcademicLevelID.Validate(),
		d.ServiceTypeID.Validate(),
		d.DeadlineTypeID.Validate(),
		d.LanguageID.Validate(),
		pagesErr,
		wordsErr,
	)
}

// Order is the aggregate root of a client's paper request.
//
// Order follows these invariants:
//   - The price is positive and fixed at creation; only OverridePrice changes it,
//     and only while the order waits for payment
//   - Status changes only through TransitionTo (directly or via AssignWriter),
//     and every change produces exactly one HistoryEntry
//   - version grows by one with every persisted update and backs the
//     optimistic check of the repository
type Order struct {
	id        kernel.UUID
	details   Details
	writerID  *kernel.UUID
	price     kernel.Money
	status    Status
	version   int
	createdAt time.Time
	updatedAt time.Time

	events.Recorder
	isConstructed bool
}

// NewOrder creates an order in WaitingForPayment together with its creation
// history entry.
//
// Parameters:
//   - id: identifier of the new order
//   - details: validated order details
//   - price: the quoted price, must be positive
//   - actor: who created the order, recorded in history; may be nil
//   - now: creation time
//
// Returns:
//   - *Order: the order carrying a StatusChanged event
//   - HistoryEntry: the initial status entry
//   - error: a validation error naming the invalid argument
//
// Example:
//
//	o, entry, err := order.NewOrder(kernel.NewUUID(), details, price, &clientID, time.Now())
//	if err != nil {
//	    return err
//	}
//	// persist o and entry in the same unit of work
func NewOrder(
	id kernel.UUID,
	details Details,
	price kernel.Money,
	actor *kernel.UUID,
	now time.Time,
) (*Order, HistoryEntry, error) {
	if err := errors.Join(
		id.Validate(),
		details.Validate(),
		price.ValidatePositive("price"),
	); err != nil {
		return nil, HistoryEntry{}, err
	}

	o := &Order{
		id:            id,
		details:       details,
		price:         price,
		status:        WaitingForPayment,
		version:       1,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	entry := newHistoryEntry(id, nil, WaitingForPayment, actor, "order created", now)
	o.Record(StatusChanged{
		OrderID: id,
		From:    Unknown,
		To:      WaitingForPayment,
		ActorID: copyUUID(actor),
		Note:    entry.Note(),
		At:      entry.CreatedAt(),
	})

	return o, entry, nil
}

// RestoreOrder rebuilds an order read from persistence. It validates the
// stored values but records no events.
func RestoreOrder(
	id kernel.UUID,
	details Details,
	writerID *kernel.UUID,
	price kernel.Money,
	status Status,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	var versionErr error
	if version < 1 {
		versionErr = errs.NewVersionIsInvalidErrorWithCause("order", fmt.Errorf("%d is not a valid version", version))
	}

	if err := errors.Join(
		id.Validate(),
		details.Validate(),
		price.ValidatePositive("price"),
		status.Validate(),
		versionErr,
	); err != nil {
		return nil, err
	}

	if writerID != nil {
		if err := writerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		details:       details,
		writerID:      copyUUID(writerID),
		price:         price,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) ClientID() kernel.UUID {
	return o.details.ClientID
}

// WriterID returns the assigned writer, nil while unassigned.
func (o *Order) WriterID() *kernel.UUID {
	return copyUUID(o.writerID)
}

func (o *Order) Price() kernel.Money {
	return o.price
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IncrementVersion is called by repositories after a successful update.
func (o *Order) IncrementVersion() {
	o.version++
}

// TransitionTo moves the order to target and returns the history entry that
// must be stored with the change.
//
// Returns an *errs.InvalidTransitionError when target is not reachable from
// the current status. Self-loops always succeed.
func (o *Order) TransitionTo(target Status, actor *kernel.UUID, note string, now time.Time) (HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := ValidateTransition(o.status, target); err != nil {
		return HistoryEntry{}, err
	}

	from := o.status
	o.status = target
	o.updatedAt = now.UTC()

	entry := newHistoryEntry(o.id, &from, target, actor, note, now)
	o.Record(StatusChanged{
		OrderID: o.id,
		From:    from,
		To:      target,
		ActorID: copyUUID(actor),
		Note:    note,
		At:      entry.CreatedAt(),
	})

	return entry, nil
}

// AssignWriter records the writer of a WriterPending order and moves it to
// InProgress.
func (o *Order) AssignWriter(writerID kernel.UUID, actor *kernel.UUID, now time.Time) (HistoryEntry, error) {
	if err := writerID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if o.status != WriterPending {
		return HistoryEntry{}, errs.NewInvalidTransitionError(o.status, InProgress)
	}

	entry, err := o.TransitionTo(InProgress, actor, "writer assigned: "+writerID.String(), now)
	if err != nil {
		return HistoryEntry{}, err
	}

	o.writerID = &writerID
	return entry, nil
}

// OverridePrice replaces the price of an unpaid order. The change is logged
// as a self-loop history entry carrying the reason.
func (o *Order) OverridePrice(price kernel.Money, actor *kernel.UUID, reason string, now time.Time) (HistoryEntry, error) {
	if err := price.ValidatePositive("price"); err != nil {
		return HistoryEntry{}, err
	}
	if reason == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("reason")
	}
	if o.status != WaitingForPayment {
		return HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("price of a %s order cannot change", o.status),
		)
	}

	note := fmt.Sprintf("price override %s -> %s: %s", o.price, price, reason)
	entry, err := o.TransitionTo(o.status, actor, note, now)
	if err != nil {
		return HistoryEntry{}, err
	}

	o.price = price
	return entry, nil
}
