package queries

import (
	"errors"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrListWalletTransactionsQueryIsNotConstructed = errors.New(
	"ListWalletTransactionsQuery must be created via NewListWalletTransactionsQuery constructor",
)

// ListWalletTransactionsQuery returns the ledger of one user, newest first.
type ListWalletTransactionsQuery struct {
	userID kernel.UUID
	limit  int

	guard guard.ConstructorGuard
}

func NewListWalletTransactionsQuery(userID kernel.UUID, limit int) (ListWalletTransactionsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var limitErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if err := errors.Join(userID.Validate(), limitErr); err != nil {
		return ListWalletTransactionsQuery{}, err
	}

	return ListWalletTransactionsQuery{userID: userID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListWalletTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListWalletTransactionsQueryIsNotConstructed)
}

func (q ListWalletTransactionsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ListWalletTransactionsQuery) Limit() int {
	return q.limit
}

type ListWalletTransactionsQueryResponse struct {
	ID          kernel.UUID
	Kind        wallet.Kind
	Amount      kernel.Money
	Description string
	OrderID     *kernel.UUID
	Method      wallet.Method
	Status      wallet.EntryStatus
	CreatedAt   time.Time
}
