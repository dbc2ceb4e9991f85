// Package orderrepo persists the order aggregate and its status history.
package orderrepo

import (
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Status is stored as its numeric value.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WriterID        *uuid.UUID      `gorm:"type:uuid;index"`
	AcademicLevelID uuid.UUID       `gorm:"type:uuid;not null"`
	ServiceTypeID   uuid.UUID       `gorm:"type:uuid;not null"`
	DeadlineTypeID  uuid.UUID       `gorm:"type:uuid;not null"`
	LanguageID      uuid.UUID       `gorm:"type:uuid;not null"`
	Pages           int             `gorm:"not null"`
	Words           int             `gorm:"not null;default:0"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          int16           `gorm:"type:smallint;not null;index"`
	Version         int             `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO is one row of order_status_history. Seq orders rows written in
// the same microsecond.
type HistoryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq        int64      `gorm:"autoIncrement;not null"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromStatus *int16     `gorm:"type:smallint"`
	ToStatus   int16      `gorm:"type:smallint;not null"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Note       string     `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time  `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()

	return OrderDTO{
		ID:              o.ID().Bytes(),
		ClientID:        details.ClientID.Bytes(),
		WriterID:        optionalBytes(o.WriterID()),
		AcademicLevelID: details.AcademicLevelID.Bytes(),
		ServiceTypeID:   details.ServiceTypeID.Bytes(),
		DeadlineTypeID:  details.DeadlineTypeID.Bytes(),
		LanguageID:      details.LanguageID.Bytes(),
		Pages:           details.Pages,
		Words:           details.Words,
		Price:           o.Price().Decimal(),
		Status:          int16(o.Status()), //nolint:gosec // statuses fit in smallint
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := toKernelIDs(
		dto.ID, dto.ClientID, dto.AcademicLevelID, dto.ServiceTypeID, dto.DeadlineTypeID, dto.LanguageID,
	)
	if err != nil {
		return nil, err
	}

	writerID, err := optionalKernelID(dto.WriterID)
	if err != nil {
		return nil, err
	}

	details := order.Details{
		ClientID:        ids[1],
		AcademicLevelID: ids[2],
		ServiceTypeID:   ids[3],
		DeadlineTypeID:  ids[4],
		LanguageID:      ids[5],
		Pages:           dto.Pages,
		Words:           dto.Words,
	}

	return order.RestoreOrder(
		ids[0],
		details,
		writerID,
		kernel.MoneyFromDecimal(dto.Price),
		order.Status(dto.Status),
		dto.Version,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func historyFromDomain(entry order.HistoryEntry) HistoryDTO {
	var from *int16
	if status := entry.From(); status != nil {
		raw := int16(*status) //nolint:gosec // statuses fit in smallint
		from = &raw
	}

	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: from,
		ToStatus:   int16(entry.To()), //nolint:gosec // statuses fit in smallint
		ActorID:    optionalBytes(entry.ActorID()),
		Note:       entry.Note(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func historyToDomain(dto HistoryDTO) (order.HistoryEntry, error) {
	ids, err := toKernelIDs(dto.ID, dto.OrderID)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	actorID, err := optionalKernelID(dto.ActorID)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	var from *order.Status
	if dto.FromStatus != nil {
		status := order.Status(*dto.FromStatus)
		from = &status
	}

	return order.RestoreHistoryEntry(
		ids[0], ids[1], from, order.Status(dto.ToStatus), actorID, dto.Note, dto.CreatedAt.UTC(),
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toKernelIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
