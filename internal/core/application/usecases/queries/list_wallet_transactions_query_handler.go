package queries

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListWalletTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewListWalletTransactionsQueryHandler(db *gorm.DB) ListWalletTransactionsQueryHandler {
	return ListWalletTransactionsQueryHandler{db: db}
}

// Handle returns an empty list for a user without a wallet.
func (h ListWalletTransactionsQueryHandler) Handle(
	ctx context.Context,
	query ListWalletTransactionsQuery,
) ([]ListWalletTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.kind,
			t.amount,
			t.description,
			t.order_id,
			t.method,
			t.status,
			t.created_at
		FROM wallet_transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = ?
		ORDER BY t.created_at DESC, t.seq DESC
		LIMIT ?
	`, query.UserID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListWalletTransactionsQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			orderID   *uuid.UUID
			amount    decimal.Decimal
			kind      string
			method    string
			status    string
			createdAt time.Time
			item      ListWalletTransactionsQueryResponse
		)
		if err = rows.Scan(&id, &kind, &amount, &item.Description, &orderID, &method, &status, &createdAt); err != nil {
			return nil, err
		}

		if item.ID, err = toKernelID(id); err != nil {
			return nil, err
		}
		if item.OrderID, err = toOptionalKernelID(orderID); err != nil {
			return nil, err
		}
		item.Kind = wallet.Kind(kind)
		item.Method = wallet.Method(method)
		item.Status = wallet.EntryStatus(status)
		item.Amount = kernel.MoneyFromDecimal(amount)
		item.CreatedAt = createdAt.UTC()

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
