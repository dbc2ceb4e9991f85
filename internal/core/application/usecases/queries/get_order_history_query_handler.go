package queries

import (
	"context"
	"database/sql"
	"time"

	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler lists the status log of one order, oldest
// first.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns an *errs.ObjectNotFoundError for an unknown order.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, orderID.Bytes()).Row().Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}

	rows, err := db.Raw(`
		SELECT
			id,
			from_status,
			to_status,
			actor_id,
			note,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			from      sql.NullInt16
			to        int16
			actorID   *uuid.UUID
			note      string
			createdAt time.Time
		)
		if err = rows.Scan(&id, &from, &to, &actorID, &note, &createdAt); err != nil {
			return nil, err
		}

		entry := GetOrderHistoryQueryResponse{
			To:        order.Status(to),
			Note:      note,
			CreatedAt: createdAt.UTC(),
		}
		if entry.ID, err = toKernelID(id); err != nil {
			return nil, err
		}
		if entry.ActorID, err = toOptionalKernelID(actorID); err != nil {
			return nil, err
		}
		if from.Valid {
			status := order.Status(from.Int16)
			entry.From = &status
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
