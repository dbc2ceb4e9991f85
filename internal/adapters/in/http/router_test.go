package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	e, err := NewRouter(context.Background(), NewServer(CommandHandlers{}, QueryHandlers{}, nil), prometheus.NewRegistry(), nil)
	require.NoError(t, err)
	return e
}

func serve(handler http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := LoadOpenAPI(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "paperdesk", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/transitions"))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", kernel.NewUUID()), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidTransitionError(order.Approval, order.Cancelled), http.StatusConflict},
		{"version conflict", errs.NewVersionIsInvalidError("order"), http.StatusConflict},
		{"insufficient funds", errs.NewInsufficientFundsError(kernel.MustMoney("30.00"), kernel.MustMoney("10.00")), http.StatusPaymentRequired},
		{"external confirmation", errs.NewExternalConfirmationError("txn1"), http.StatusBadGateway},
		{"invalid value", errs.NewValueIsInvalidError("method"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("pages", 0, 1, 500), http.StatusBadRequest},
		{"required", errs.NewValueIsRequiredError("reason"), http.StatusBadRequest},
		{"nil uuid", kernel.ErrUUIDIsNotConstructed, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestToError_HidesInternalDetails(t *testing.T) {
	body := toError(errors.New("connection refused to 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SwaggerDocument(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/swagger/doc.json", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"paperdesk"`)
}

func TestRouter_RejectsInvalidRequests(t *testing.T) {
	orderID := kernel.NewUUID().String()

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		headers map[string]string
	}{
		{
			name:   "missing required field",
			method: http.MethodPost,
			target: "/api/v1/orders/" + orderID + "/cancel",
			body:   `{}`,
		},
		{
			name:   "unknown status",
			method: http.MethodPost,
			target: "/api/v1/orders/" + orderID + "/transitions",
			body:   `{"status":"SHIPPED"}`,
		},
		{
			name:   "malformed money",
			method: http.MethodPut,
			target: "/api/v1/orders/" + orderID + "/price",
			body:   `{"price":"12.345","reason":"typo"}`,
		},
		{
			name:   "pages out of range",
			method: http.MethodPost,
			target: "/api/v1/pricing/estimate",
			body: `{"academic_level_id":"` + orderID + `","service_type_id":"` + orderID +
				`","deadline_type_id":"` + orderID + `","language_id":"` + orderID + `","pages":0}`,
		},
		{
			name:   "unknown payment method",
			method: http.MethodPost,
			target: "/api/v1/orders/" + orderID + "/payments",
			body:   `{"method":"cash"}`,
		},
		{
			name:   "limit above maximum",
			method: http.MethodGet,
			target: "/api/v1/orders?limit=1000",
		},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.target, tt.body, tt.headers)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":400`)
		})
	}
}

func TestRouter_MalformedPathID(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/api/v1/orders/not-a-uuid/history", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_OverridePriceNeedsActor(t *testing.T) {
	target := "/api/v1/orders/" + kernel.NewUUID().String() + "/price"

	rec := serve(newTestRouter(t), http.MethodPut, target, `{"price":"10.00","reason":"discount"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ActorHeader)
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/api/v1/nothing", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":404`)
}
