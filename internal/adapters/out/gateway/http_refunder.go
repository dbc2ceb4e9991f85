// Package gateway reverses gateway-origin payments with the external payment
// provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"paperdesk/internal/core/ports"
)

var ErrRefundRejected = errors.New("refund rejected by gateway")

const DefaultTimeout = 10 * time.Second

// HTTPRefunder implements ports.RefundGateway over a JSON API:
// POST {base}/refunds answers 200/201 with {"refund_id": "..."}.
type HTTPRefunder struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type refundRequest struct {
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
	ExternalTxnID string `json:"external_txn_id"`
	Amount        string `json:"amount"`
	Reason        string `json:"reason,omitempty"`
}

type refundResponse struct {
	RefundID string `json:"refund_id"`
}

func NewHTTPRefunder(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPRefunder, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errors.New("gateway url must be absolute")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPRefunder{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "refund_gateway"),
	}, nil
}

func (r *HTTPRefunder) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	body, err := json.Marshal(refundRequest{
		PaymentID:     req.PaymentID.String(),
		OrderID:       req.OrderID.String(),
		ExternalTxnID: req.ExternalTxnID,
		Amount:        req.Amount.String(),
		Reason:        req.Reason,
	})
	if err != nil {
		return "", err
	}

	endpoint := *r.baseURL
	endpoint.Path = path.Join(endpoint.Path, "refunds")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// one refund per payment
	httpReq.Header.Set("Idempotency-Key", req.PaymentID.String())

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data refundResponse
		if err = json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("decode refund response: %w", err)
		}
		if data.RefundID == "" {
			return "", fmt.Errorf("%w: empty refund id", ErrRefundRejected)
		}
		r.logger.InfoContext(ctx, "refund confirmed",
			slog.String("payment_id", req.PaymentID.String()),
			slog.String("refund_id", data.RefundID),
		)
		return data.RefundID, nil
	default:
		r.logger.ErrorContext(ctx, "refund failed",
			slog.Int("status", resp.StatusCode),
			slog.String("payment_id", req.PaymentID.String()),
			slog.String("body", string(raw)),
		)
		return "", fmt.Errorf("%w: %s", ErrRefundRejected, resp.Status)
	}
}
