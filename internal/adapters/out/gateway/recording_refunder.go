package gateway

import (
	"context"
	"sync"

	"paperdesk/internal/core/ports"
)

// RecordingRefunder confirms every refund without calling anyone and keeps
// the requests. It backs deployments without a configured gateway.
type RecordingRefunder struct {
	mu       sync.Mutex
	requests []ports.RefundRequest
}

func NewRecordingRefunder() *RecordingRefunder {
	return &RecordingRefunder{}
}

// Refund returns "refund-<payment id>".
func (r *RecordingRefunder) Refund(_ context.Context, req ports.RefundRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	return "refund-" + req.PaymentID.String(), nil
}

func (r *RecordingRefunder) Requests() []ports.RefundRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ports.RefundRequest, len(r.requests))
	copy(out, r.requests)
	return out
}
