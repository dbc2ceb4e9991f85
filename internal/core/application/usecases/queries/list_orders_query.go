package queries

import (
	"errors"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrdersQuery. Nil fields do not filter.
type OrderFilter struct {
	Status   *order.Status
	ClientID *kernel.UUID
	WriterID *kernel.UUID
}

// ListOrdersQuery pages through orders, newest first. A limit of 0 means
// DefaultListLimit.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	filter OrderFilter
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter, limit, offset int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setFilter(filter),
		q.setPage(limit, offset),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

func (q *ListOrdersQuery) setFilter(filter OrderFilter) error {
	var errList []error
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.ClientID != nil {
		errList = append(errList, filter.ClientID.Validate())
	}
	if filter.WriterID != nil {
		errList = append(errList, filter.WriterID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	q.filter = filter
	return nil
}

func (q *ListOrdersQuery) setPage(limit, offset int) error {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	q.limit = limit
	q.offset = offset
	return nil
}

type ListOrdersQueryResponse struct {
	ID        kernel.UUID
	ClientID  kernel.UUID
	WriterID  *kernel.UUID
	Status    order.Status
	Price     kernel.Money
	Pages     int
	Words     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
