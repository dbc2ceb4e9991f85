package queries

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetWalletBalanceQueryHandler sums completed credits minus completed debits.
// A user without a wallet has a balance of zero.
type GetWalletBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetWalletBalanceQueryHandler(db *gorm.DB) GetWalletBalanceQueryHandler {
	return GetWalletBalanceQueryHandler{db: db}
}

func (h GetWalletBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetWalletBalanceQuery,
) (GetWalletBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletBalanceQueryResponse{}, err
	}

	var balance decimal.Decimal
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE WHEN t.kind = ? THEN t.amount ELSE -t.amount END), 0)
		FROM wallet_transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = ? AND t.status = ?
	`, wallet.KindCredit, query.UserID().Bytes(), wallet.EntryCompleted).Row().Scan(&balance)
	if err != nil {
		return GetWalletBalanceQueryResponse{}, err
	}

	return GetWalletBalanceQueryResponse{
		UserID:  query.UserID(),
		Balance: kernel.MoneyFromDecimal(balance),
	}, nil
}
