package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ActorParams carries the optional X-Actor-ID header.
type ActorParams struct {
	XActorID *uuid.UUID
}

type ListOrdersParams struct {
	Status   *string
	ClientID *uuid.UUID
	WriterID *uuid.UUID
	Limit    *int
	Offset   *int
}

type ListWalletTransactionsParams struct {
	Limit *int
}

// ServerInterface is the set of operations described by openapi.yaml.
type ServerInterface interface {
	EstimatePrice(ctx echo.Context) error
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context, params ActorParams) error
	GetOrderHistory(ctx echo.Context, orderID uuid.UUID) error
	TransitionOrderStatus(ctx echo.Context, orderID uuid.UUID, params ActorParams) error
	CancelOrder(ctx echo.Context, orderID uuid.UUID, params ActorParams) error
	PayOrder(ctx echo.Context, orderID uuid.UUID, params ActorParams) error
	AssignWriter(ctx echo.Context, orderID uuid.UUID, params ActorParams) error
	OverrideOrderPrice(ctx echo.Context, orderID uuid.UUID, params ActorParams) error
	BulkTransitionOrderStatus(ctx echo.Context, params ActorParams) error
	ReconcileWallets(ctx echo.Context) error
	GetWalletBalance(ctx echo.Context, userID uuid.UUID) error
	ListWalletTransactions(ctx echo.Context, userID uuid.UUID, params ListWalletTransactionsParams) error
	CreditWallet(ctx echo.Context, userID uuid.UUID) error
	DebitWallet(ctx echo.Context, userID uuid.UUID) error
	TopUpWallet(ctx echo.Context, userID uuid.UUID) error
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for
// registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers binds parameters and dispatches to si.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := wrapper{handler: si}

	router.POST("/api/v1/pricing/estimate", si.EstimatePrice)
	router.GET("/api/v1/orders", w.ListOrders)
	router.POST("/api/v1/orders", w.withActor(si.CreateOrder))
	router.GET("/api/v1/orders/:orderId/history", w.withID("orderId", si.GetOrderHistory))
	router.POST("/api/v1/orders/:orderId/transitions", w.withIDAndActor("orderId", si.TransitionOrderStatus))
	router.POST("/api/v1/orders/:orderId/cancel", w.withIDAndActor("orderId", si.CancelOrder))
	router.POST("/api/v1/orders/:orderId/payments", w.withIDAndActor("orderId", si.PayOrder))
	router.PUT("/api/v1/orders/:orderId/writer", w.withIDAndActor("orderId", si.AssignWriter))
	router.PUT("/api/v1/orders/:orderId/price", w.withIDAndActor("orderId", si.OverrideOrderPrice))
	router.POST("/api/v1/admin/orders/transitions", w.withActor(si.BulkTransitionOrderStatus))
	router.POST("/api/v1/admin/wallets/reconcile", si.ReconcileWallets)
	router.GET("/api/v1/wallets/:userId", w.withID("userId", si.GetWalletBalance))
	router.GET("/api/v1/wallets/:userId/transactions", w.ListWalletTransactions)
	router.POST("/api/v1/wallets/:userId/credits", w.withID("userId", si.CreditWallet))
	router.POST("/api/v1/wallets/:userId/debits", w.withID("userId", si.DebitWallet))
	router.POST("/api/v1/wallets/:userId/top-ups", w.withID("userId", si.TopUpWallet))
}

type wrapper struct {
	handler ServerInterface
}

func (w wrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	query := ctx.QueryParams()

	for name, dest := range map[string]any{
		"status":    &params.Status,
		"client_id": &params.ClientID,
		"writer_id": &params.WriterID,
		"limit":     &params.Limit,
		"offset":    &params.Offset,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	return w.handler.ListOrders(ctx, params)
}

func (w wrapper) ListWalletTransactions(ctx echo.Context) error {
	userID, err := bindPathID(ctx, "userId")
	if err != nil {
		return err
	}

	var params ListWalletTransactionsParams
	if err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.handler.ListWalletTransactions(ctx, userID, params)
}

func (w wrapper) withID(name string, next func(echo.Context, uuid.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathID(ctx, name)
		if err != nil {
			return err
		}
		return next(ctx, id)
	}
}

func (w wrapper) withActor(next func(echo.Context, ActorParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		params, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return next(ctx, params)
	}
}

func (w wrapper) withIDAndActor(name string, next func(echo.Context, uuid.UUID, ActorParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathID(ctx, name)
		if err != nil {
			return err
		}
		params, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return next(ctx, id, params)
	}
}

func bindPathID(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindActor(ctx echo.Context) (ActorParams, error) {
	var params ActorParams

	values, found := ctx.Request().Header[http.CanonicalHeaderKey(ActorHeader)]
	if !found {
		return params, nil
	}
	if len(values) != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", ActorHeader, len(values)))
	}

	var actor uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", ActorHeader, values[0], &actor, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationHeader,
		Explode:       false,
		Required:      false,
	})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", ActorHeader, err))
	}

	params.XActorID = &actor
	return params, nil
}
