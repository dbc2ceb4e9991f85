// Package paymentrepo persists settlement and refund records.
package paymentrepo

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExternalTxnIndex rejects a second payment confirmed by the same gateway
// transaction.
const ExternalTxnIndex = "idx_payments_external_txn_id"

type PaymentDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq           int64             `gorm:"autoIncrement;not null"`
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	PayerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Method        string            `gorm:"type:varchar(16);not null"`
	ExternalTxnID *string           `gorm:"type:varchar(128);uniqueIndex:idx_payments_external_txn_id,where:external_txn_id IS NOT NULL"`
	Status        string            `gorm:"type:varchar(16);not null"`
	Metadata      map[string]string `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt     time.Time         `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		OrderID:       p.OrderID().Bytes(),
		PayerID:       p.PayerID().Bytes(),
		Amount:        p.Amount().Decimal(),
		Method:        string(p.Method()),
		ExternalTxnID: p.ExternalTxnID(),
		Status:        string(p.Status()),
		Metadata:      p.Metadata(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	payerID, err := kernel.UUIDFromGoogle(dto.PayerID)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		payerID,
		kernel.MoneyFromDecimal(dto.Amount),
		payment.Method(dto.Method),
		dto.ExternalTxnID,
		payment.Status(dto.Status),
		dto.Metadata,
		dto.CreatedAt.UTC(),
	)
}
