package audit

import (
	"context"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/core/domain/model/wallet"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paperdesk"

// MetricsPublisher counts committed events. Refund records are counted
// separately from payments.
type MetricsPublisher struct {
	transitions   *prometheus.CounterVec
	payments      *prometheus.CounterVec
	refunds       *prometheus.CounterVec
	walletEntries *prometheus.CounterVec
}

// NewMetricsPublisher registers its counters on reg.
func NewMetricsPublisher(reg prometheus.Registerer) (*MetricsPublisher, error) {
	p := &MetricsPublisher{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Committed order status changes.",
		}, []string{"from", "to"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Committed payment records.",
		}, []string{"method", "origin"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Committed refund records.",
		}, []string{"origin"}),
		walletEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_entries_total",
			Help:      "Committed wallet ledger entries.",
		}, []string{"kind", "method"}),
	}

	for _, c := range []prometheus.Collector{p.transitions, p.payments, p.refunds, p.walletEntries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *MetricsPublisher) Publish(_ context.Context, evts ...events.Event) error {
	for _, e := range evts {
		switch e := e.(type) {
		case order.StatusChanged:
			p.transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		case payment.Recorded:
			if e.Status == payment.StatusRefunded {
				p.refunds.WithLabelValues(string(e.Origin)).Inc()
				continue
			}
			p.payments.WithLabelValues(string(e.Method), string(e.Origin)).Inc()
		case wallet.EntryAppended:
			p.walletEntries.WithLabelValues(string(e.Kind), string(e.Method)).Inc()
		}
	}
	return nil
}
