package queries

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/guard"
)

var ErrGetWalletBalanceQueryIsNotConstructed = errors.New(
	"GetWalletBalanceQuery must be created via NewGetWalletBalanceQuery constructor",
)

// GetWalletBalanceQuery reads a user's balance from the ledger, not from the
// cached column.
type GetWalletBalanceQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetWalletBalanceQuery(userID kernel.UUID) (GetWalletBalanceQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetWalletBalanceQuery{}, err
	}
	return GetWalletBalanceQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWalletBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletBalanceQueryIsNotConstructed)
}

func (q GetWalletBalanceQuery) UserID() kernel.UUID {
	return q.userID
}

type GetWalletBalanceQueryResponse struct {
	UserID  kernel.UUID
	Balance kernel.Money
}
