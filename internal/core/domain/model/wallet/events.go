package wallet

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
)

// EntryAppended is recorded for every credit and debit.
type EntryAppended struct {
	WalletID kernel.UUID
	UserID   kernel.UUID
	EntryID  kernel.UUID
	Kind     Kind
	Method   Method
	Amount   kernel.Money
	OrderID  *kernel.UUID
	At       time.Time
}

func (e EntryAppended) EventName() string {
	return "wallet.entry_appended"
}

func (e EntryAppended) AggregateID() kernel.UUID {
	return e.WalletID
}

func (e EntryAppended) OccurredAt() time.Time {
	return e.At
}
