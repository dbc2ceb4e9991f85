package http

import (
	"log/slog"
	"net/http"

	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/application/usecases/queries"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// ActorHeader identifies the acting user. Authentication happens upstream.
const ActorHeader = "X-Actor-ID"

type CommandHandlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	Transition       commands.TransitionOrderStatusCommandHandler
	BulkTransition   commands.BulkTransitionOrderStatusCommandHandler
	CancelWithRefund commands.CancelOrderWithRefundCommandHandler
	Pay              commands.PayOrderCommandHandler
	AssignWriter     commands.AssignWriterCommandHandler
	OverridePrice    commands.OverrideOrderPriceCommandHandler
	Wallet           commands.WalletCommandHandler
	Reconcile        commands.ReconcileWalletsCommandHandler
}

type QueryHandlers struct {
	EstimatePrice          queries.EstimatePriceQueryHandler
	ListOrders             queries.ListOrdersQueryHandler
	GetOrderHistory        queries.GetOrderHistoryQueryHandler
	GetWalletBalance       queries.GetWalletBalanceQueryHandler
	ListWalletTransactions queries.ListWalletTransactionsQueryHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	logger   *slog.Logger
}

func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		logger:   logger.With("component", "http"),
	}
}

var _ ServerInterface = (*Server)(nil)

// EstimatePrice handles POST /api/v1/pricing/estimate.
func (s *Server) EstimatePrice(ctx echo.Context) error {
	var body PriceSelection
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	level, service, deadline, language, err := selectionIDs(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewEstimatePriceQuery(level, service, deadline, language, body.Pages)
	if err != nil {
		return s.fail(ctx, err)
	}

	estimate, err := s.queries.EstimatePrice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Estimate{Amount: estimate.Amount.String(), Pages: estimate.Pages})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var (
		filter queries.OrderFilter
		err    error
	)
	if params.Status != nil {
		status, parseErr := order.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		filter.Status = &status
	}
	if filter.ClientID, err = optionalKernelID(params.ClientID); err != nil {
		return s.fail(ctx, err)
	}
	if filter.WriterID, err = optionalKernelID(params.WriterID); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(filter, lo.FromPtr(params.Limit), lo.FromPtr(params.Offset))
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.queries.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(items, func(item queries.ListOrdersQueryResponse, _ int) Order {
		return toListedOrder(item)
	}))
}

// CreateOrder handles POST /api/v1/orders. The client defaults to the actor.
func (s *Server) CreateOrder(ctx echo.Context, params ActorParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := optionalKernelID(params.XActorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	client, err := optionalKernelID(body.ClientID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if client == nil {
		if actor == nil {
			return s.fail(ctx, errs.NewValueIsRequiredError("client_id"))
		}
		client = actor
	}

	level, service, deadline, language, err := selectionIDs(body.PriceSelection)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Details{
		ClientID:        *client,
		AcademicLevelID: level,
		ServiceTypeID:   service,
		DeadlineTypeID:  deadline,
		LanguageID:      language,
		Pages:           body.Pages,
		Words:           body.Words,
	}, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(created))
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(entries, func(item queries.GetOrderHistoryQueryResponse, _ int) HistoryEntry {
		return toHistoryEntry(item)
	}))
}

// TransitionOrderStatus handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrderStatus(ctx echo.Context, orderID uuid.UUID, params ActorParams) error {
	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, actor, err := orderAndActor(orderID, params)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(id, target, actor, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.Transition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID uuid.UUID, params ActorParams) error {
	var body CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, actor, err := orderAndActor(orderID, params)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderWithRefundCommand(id, actor, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	cancelled, err := s.commands.CancelWithRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(cancelled))
}

// PayOrder handles POST /api/v1/orders/{orderId}/payments.
func (s *Server) PayOrder(ctx echo.Context, orderID uuid.UUID, params ActorParams) error {
	var body PaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, actor, err := orderAndActor(orderID, params)
	if err != nil {
		return s.fail(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	var paid *order.Order

	switch body.Method {
	case "wallet":
		cmd, cmdErr := commands.NewPayWithWalletCommand(id, actor)
		if cmdErr != nil {
			return s.fail(ctx, cmdErr)
		}
		paid, err = s.commands.Pay.HandleWallet(reqCtx, cmd)
	case "paypal":
		cmd, cmdErr := commands.NewPayWithGatewayCommand(id, body.ExternalTxnID, actor)
		if cmdErr != nil {
			return s.fail(ctx, cmdErr)
		}
		paid, err = s.commands.Pay.HandleGateway(reqCtx, cmd)
	case "hybrid":
		if body.WalletAmount == nil {
			return s.fail(ctx, errs.NewValueIsRequiredError("wallet_amount"))
		}
		amount, amountErr := kernel.MoneyFromString(*body.WalletAmount)
		if amountErr != nil {
			return s.fail(ctx, amountErr)
		}
		cmd, cmdErr := commands.NewPayWithHybridCommand(id, amount, body.ExternalTxnID, actor)
		if cmdErr != nil {
			return s.fail(ctx, cmdErr)
		}
		paid, err = s.commands.Pay.HandleHybrid(reqCtx, cmd)
	default:
		return s.fail(ctx, errs.NewValueIsInvalidError("method"))
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(paid))
}

// AssignWriter handles PUT /api/v1/orders/{orderId}/writer.
func (s *Server) AssignWriter(ctx echo.Context, orderID uuid.UUID, params ActorParams) error {
	var body AssignWriterRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, actor, err := orderAndActor(orderID, params)
	if err != nil {
		return s.fail(ctx, err)
	}
	writer, err := kernel.UUIDFromGoogle(body.WriterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignWriterCommand(id, writer, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.AssignWriter.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// OverrideOrderPrice handles PUT /api/v1/orders/{orderId}/price. It needs an
// actor.
func (s *Server) OverrideOrderPrice(ctx echo.Context, orderID uuid.UUID, params ActorParams) error {
	var body OverridePriceRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, actor, err := orderAndActor(orderID, params)
	if err != nil {
		return s.fail(ctx, err)
	}
	if actor == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError(ActorHeader))
	}
	price, err := kernel.MoneyFromString(body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOverrideOrderPriceCommand(id, price, *actor, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.commands.OverridePrice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// BulkTransitionOrderStatus handles POST /api/v1/admin/orders/transitions.
// Per-order failures are reported in the body; the response is 200 as long
// as the request itself was valid.
func (s *Server) BulkTransitionOrderStatus(ctx echo.Context, params ActorParams) error {
	var body BulkTransition
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := optionalKernelID(params.XActorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, idErr := kernel.UUIDFromGoogle(raw)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkTransitionOrderStatusCommand(ids, target, actor, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	outcomes, err := s.commands.BulkTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(outcomes, func(o commands.BulkTransitionOutcome, _ int) BulkOutcome {
		return toBulkOutcome(o)
	}))
}

// ReconcileWallets handles POST /api/v1/admin/wallets/reconcile.
func (s *Server) ReconcileWallets(ctx echo.Context) error {
	var body ReconcileRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	report, err := s.commands.Reconcile.Handle(ctx.Request().Context(), commands.NewReconcileWalletsCommand(body.Repair))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toReconcileReport(report))
}

// GetWalletBalance handles GET /api/v1/wallets/{userId}.
func (s *Server) GetWalletBalance(ctx echo.Context, userID uuid.UUID) error {
	id, err := kernel.UUIDFromGoogle(userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetWalletBalanceQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	balance, err := s.queries.GetWalletBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Balance{UserID: userID, Balance: balance.Balance.String()})
}

// ListWalletTransactions handles GET /api/v1/wallets/{userId}/transactions.
func (s *Server) ListWalletTransactions(ctx echo.Context, userID uuid.UUID, params ListWalletTransactionsParams) error {
	id, err := kernel.UUIDFromGoogle(userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListWalletTransactionsQuery(id, lo.FromPtr(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.ListWalletTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(entries, func(item queries.ListWalletTransactionsQueryResponse, _ int) WalletEntry {
		return toListedWalletEntry(item)
	}))
}

// CreditWallet handles POST /api/v1/wallets/{userId}/credits.
func (s *Server) CreditWallet(ctx echo.Context, userID uuid.UUID) error {
	var body CreditRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, amount, orderID, err := walletInput(userID, body.Amount, body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreditWalletCommand(id, amount, body.Description, wallet.Method(body.Method), orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	entry, err := s.commands.Wallet.HandleCredit(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toWalletEntry(entry))
}

// DebitWallet handles POST /api/v1/wallets/{userId}/debits.
func (s *Server) DebitWallet(ctx echo.Context, userID uuid.UUID) error {
	var body DebitRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, amount, orderID, err := walletInput(userID, body.Amount, body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDebitWalletCommand(id, amount, body.Description, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	entry, err := s.commands.Wallet.HandleDebit(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toWalletEntry(entry))
}

// TopUpWallet handles POST /api/v1/wallets/{userId}/top-ups.
func (s *Server) TopUpWallet(ctx echo.Context, userID uuid.UUID) error {
	var body TopUpRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, amount, _, err := walletInput(userID, body.Amount, nil)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTopUpWalletCommand(id, amount, body.ExternalTxnID)
	if err != nil {
		return s.fail(ctx, err)
	}

	entry, err := s.commands.Wallet.HandleTopUp(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toWalletEntry(entry))
}

func selectionIDs(sel PriceSelection) (level, service, deadline, language kernel.UUID, err error) {
	if level, err = kernel.UUIDFromGoogle(sel.AcademicLevelID); err != nil {
		return
	}
	if service, err = kernel.UUIDFromGoogle(sel.ServiceTypeID); err != nil {
		return
	}
	if deadline, err = kernel.UUIDFromGoogle(sel.DeadlineTypeID); err != nil {
		return
	}
	language, err = kernel.UUIDFromGoogle(sel.LanguageID)
	return
}

func orderAndActor(orderID uuid.UUID, params ActorParams) (kernel.UUID, *kernel.UUID, error) {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	actor, err := optionalKernelID(params.XActorID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return id, actor, nil
}

func walletInput(userID uuid.UUID, rawAmount string, rawOrderID *uuid.UUID) (kernel.UUID, kernel.Money, *kernel.UUID, error) {
	id, err := kernel.UUIDFromGoogle(userID)
	if err != nil {
		return kernel.UUID{}, kernel.Money{}, nil, err
	}
	amount, err := kernel.MoneyFromString(rawAmount)
	if err != nil {
		return kernel.UUID{}, kernel.Money{}, nil, err
	}
	orderID, err := optionalKernelID(rawOrderID)
	if err != nil {
		return kernel.UUID{}, kernel.Money{}, nil, err
	}
	return id, amount, orderID, nil
}
