// Package walletrepo persists wallets and their append-only transaction log.
package walletrepo

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletDTO is the wallets table. Balance is a cache of the ledger sum.
type WalletDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (WalletDTO) TableName() string {
	return "wallets"
}

// ExternalTxnIndex makes a gateway confirmation back at most one ledger entry.
const ExternalTxnIndex = "idx_wallet_transactions_external_txn_id"

type TransactionDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq           int64           `gorm:"autoIncrement;not null"`
	WalletID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind          string          `gorm:"type:varchar(16);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_wallet_transactions_amount,amount > 0"`
	Description   string          `gorm:"type:text;not null;default:''"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	ExternalTxnID *string         `gorm:"type:varchar(128);uniqueIndex:idx_wallet_transactions_external_txn_id,where:external_txn_id IS NOT NULL"`
	Method        string          `gorm:"type:varchar(16);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

func transactionFromDomain(t wallet.Transaction) TransactionDTO {
	var orderID *uuid.UUID
	if id := t.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return TransactionDTO{
		ID:            t.ID().Bytes(),
		WalletID:      t.WalletID().Bytes(),
		Kind:          string(t.Kind()),
		Amount:        t.Amount().Decimal(),
		Description:   t.Description(),
		OrderID:       orderID,
		ExternalTxnID: t.ExternalTxnID(),
		Method:        string(t.Method()),
		Status:        string(t.Status()),
		CreatedAt:     t.CreatedAt(),
	}
}

func transactionToDomain(dto TransactionDTO) (wallet.Transaction, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return wallet.Transaction{}, err
	}
	walletID, err := kernel.UUIDFromGoogle(dto.WalletID)
	if err != nil {
		return wallet.Transaction{}, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		ref, refErr := kernel.UUIDFromGoogle(*dto.OrderID)
		if refErr != nil {
			return wallet.Transaction{}, refErr
		}
		orderID = &ref
	}

	return wallet.RestoreTransaction(
		id,
		walletID,
		wallet.Kind(dto.Kind),
		kernel.MoneyFromDecimal(dto.Amount),
		dto.Description,
		orderID,
		dto.ExternalTxnID,
		wallet.Method(dto.Method),
		wallet.EntryStatus(dto.Status),
		dto.CreatedAt.UTC(),
	)
}
