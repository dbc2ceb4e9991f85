package queries

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler builds the filtered listing with squirrel and runs it
// through GORM so that it shares the connection pool and driver.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statement, args, err := buildListOrdersSQL(query)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0, query.Limit())
	for rows.Next() {
		var (
			id, clientID uuid.UUID
			writerID     *uuid.UUID
			status       int16
			price        decimal.Decimal
			item         ListOrdersQueryResponse
			createdAt    time.Time
			updatedAt    time.Time
		)
		if err = rows.Scan(&id, &clientID, &writerID, &status, &price, &item.Pages, &item.Words, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if item.ID, err = toKernelID(id); err != nil {
			return nil, err
		}
		if item.ClientID, err = toKernelID(clientID); err != nil {
			return nil, err
		}
		if item.WriterID, err = toOptionalKernelID(writerID); err != nil {
			return nil, err
		}
		item.Status = order.Status(status)
		item.Price = kernel.MoneyFromDecimal(price)
		item.CreatedAt = createdAt.UTC()
		item.UpdatedAt = updatedAt.UTC()

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// buildListOrdersSQL keeps '?' placeholders; GORM rebinds them for the
// active dialect. Ids are bound as strings since squirrel expands arrays
// into IN lists.
func buildListOrdersSQL(query ListOrdersQuery) (string, []any, error) {
	builder := sq.Select(
		"id", "client_id", "writer_id", "status", "price", "pages", "words", "created_at", "updated_at",
	).From("orders")

	filter := query.Filter()
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": int(*filter.Status)})
	}
	if filter.ClientID != nil {
		builder = builder.Where(sq.Eq{"client_id": filter.ClientID.String()})
	}
	if filter.WriterID != nil {
		builder = builder.Where(sq.Eq{"writer_id": filter.WriterID.String()})
	}

	return builder.
		OrderBy("created_at DESC", "id").
		Limit(uint64(query.Limit())).
		Offset(uint64(query.Offset())).
		ToSql()
}
