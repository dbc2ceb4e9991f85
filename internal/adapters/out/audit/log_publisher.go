// Package audit publishes committed domain events to the audit log and to
// prometheus counters.
package audit

import (
	"context"
	"log/slog"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/core/domain/model/wallet"
)

// LogPublisher writes one structured record per event.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "audit")}
}

func (p *LogPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	for _, e := range evts {
		attrs := []any{
			slog.String("event", e.EventName()),
			slog.String("aggregate_id", e.AggregateID().String()),
			slog.Time("occurred_at", e.OccurredAt()),
		}
		attrs = append(attrs, details(e)...)
		p.logger.InfoContext(ctx, "domain event", attrs...)
	}
	return nil
}

func details(e events.Event) []any {
	switch e := e.(type) {
	case order.StatusChanged:
		attrs := []any{
			slog.String("from", e.From.String()),
			slog.String("to", e.To.String()),
			slog.String("note", e.Note),
		}
		if e.ActorID != nil {
			attrs = append(attrs, slog.String("actor_id", e.ActorID.String()))
		}
		return attrs
	case wallet.EntryAppended:
		attrs := []any{
			slog.String("user_id", e.UserID.String()),
			slog.String("entry_id", e.EntryID.String()),
			slog.String("kind", string(e.Kind)),
			slog.String("method", string(e.Method)),
			slog.String("amount", e.Amount.String()),
		}
		if e.OrderID != nil {
			attrs = append(attrs, slog.String("order_id", e.OrderID.String()))
		}
		return attrs
	case payment.Recorded:
		return []any{
			slog.String("order_id", e.OrderID.String()),
			slog.String("payer_id", e.PayerID.String()),
			slog.String("amount", e.Amount.String()),
			slog.String("method", string(e.Method)),
			slog.String("status", string(e.Status)),
			slog.String("origin", string(e.Origin)),
		}
	default:
		return nil
	}
}
