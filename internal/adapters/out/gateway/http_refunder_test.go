package gateway_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperdesk/internal/adapters/out/gateway"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func refundRequest() ports.RefundRequest {
	return ports.RefundRequest{
		PaymentID:     kernel.NewUUID(),
		OrderID:       kernel.NewUUID(),
		ExternalTxnID: "PAYID-42",
		Amount:        kernel.MustMoney("60.00"),
		Reason:        "client request",
	}
}

func TestNewHTTPRefunder_ValidatesURL(t *testing.T) {
	_, err := gateway.NewHTTPRefunder("://bad", 0, testLogger())
	require.Error(t, err)

	_, err = gateway.NewHTTPRefunder("/relative", 0, testLogger())
	require.Error(t, err)
}

func TestHTTPRefunder_Refund(t *testing.T) {
	t.Run("should post the request and return the refund id", func(t *testing.T) {
		req := refundRequest()
		var got map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/refunds", r.URL.Path)
			assert.Equal(t, req.PaymentID.String(), r.Header.Get("Idempotency-Key"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"refund_id":"RF-1"}`))
		}))
		defer srv.Close()

		refunder, err := gateway.NewHTTPRefunder(srv.URL+"/v1", 0, testLogger())
		require.NoError(t, err)

		ref, err := refunder.Refund(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, "RF-1", ref)
		assert.Equal(t, "PAYID-42", got["external_txn_id"])
		assert.Equal(t, "60.00", got["amount"])
		assert.Equal(t, req.OrderID.String(), got["order_id"])
	})

	t.Run("should reject non-success statuses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "already refunded", http.StatusConflict)
		}))
		defer srv.Close()

		refunder, err := gateway.NewHTTPRefunder(srv.URL, 0, testLogger())
		require.NoError(t, err)

		_, err = refunder.Refund(t.Context(), refundRequest())

		require.ErrorIs(t, err, gateway.ErrRefundRejected)
	})

	t.Run("should reject an empty refund id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		refunder, err := gateway.NewHTTPRefunder(srv.URL, 0, testLogger())
		require.NoError(t, err)

		_, err = refunder.Refund(t.Context(), refundRequest())

		require.ErrorIs(t, err, gateway.ErrRefundRejected)
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		refunder, err := gateway.NewHTTPRefunder(srv.URL, 0, testLogger())
		require.NoError(t, err)

		_, err = refunder.Refund(t.Context(), refundRequest())

		require.Error(t, err)
	})
}

func TestRecordingRefunder(t *testing.T) {
	refunder := gateway.NewRecordingRefunder()
	req := refundRequest()

	ref, err := refunder.Refund(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, "refund-"+req.PaymentID.String(), ref)
	require.Len(t, refunder.Requests(), 1)
	assert.Equal(t, req.ExternalTxnID, refunder.Requests()[0].ExternalTxnID)
}
