package cmd

import (
	"context"
	"log/slog"

	api "paperdesk/internal/adapters/in/http"
	"paperdesk/internal/adapters/out/audit"
	"paperdesk/internal/adapters/out/gateway"
	"paperdesk/internal/adapters/out/postgres"
	"paperdesk/internal/adapters/out/postgres/pricingrepo"
	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/application/usecases/queries"
	"paperdesk/internal/core/ports"
	"paperdesk/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	registry   *prometheus.Registry
	refunder   ports.RefundGateway
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := audit.NewMetricsPublisher(registry)
	if err != nil {
		return nil, err
	}
	publisher := audit.NewFanOut(audit.NewLogPublisher(logger), metrics)

	var refunder ports.RefundGateway = gateway.NewRecordingRefunder()
	if cfg.Gateway.BaseURL != "" {
		refunder, err = gateway.NewHTTPRefunder(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("GATEWAY_BASE_URL is not set, refunds are recorded but not sent")
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		registry:   registry,
		refunder:   refunder,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) walletUoW() commands.WalletUoWFactory {
	return FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.uow(), c.refunder)
}

func (c *CompositionRoot) CreateBulkTransitionOrderStatusCommandHandler() commands.BulkTransitionOrderStatusCommandHandler {
	return commands.NewBulkTransitionOrderStatusCommandHandler(c.CreateTransitionOrderStatusCommandHandler())
}

func (c *CompositionRoot) CreateCancelOrderWithRefundCommandHandler() commands.CancelOrderWithRefundCommandHandler {
	return commands.NewCancelOrderWithRefundCommandHandler(c.uow(), c.refunder)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAssignWriterCommandHandler() commands.AssignWriterCommandHandler {
	return commands.NewAssignWriterCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateOverrideOrderPriceCommandHandler() commands.OverrideOrderPriceCommandHandler {
	return commands.NewOverrideOrderPriceCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateWalletCommandHandler() commands.WalletCommandHandler {
	return commands.NewWalletCommandHandler(c.walletUoW())
}

func (c *CompositionRoot) CreateReconcileWalletsCommandHandler() commands.ReconcileWalletsCommandHandler {
	return commands.NewReconcileWalletsCommandHandler(c.walletUoW())
}

func (c *CompositionRoot) CreateEstimatePriceQueryHandler() queries.EstimatePriceQueryHandler {
	return queries.NewEstimatePriceQueryHandler(pricingrepo.NewGormPricingRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletBalanceQueryHandler() queries.GetWalletBalanceQueryHandler {
	return queries.NewGetWalletBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListWalletTransactionsQueryHandler() queries.ListWalletTransactionsQueryHandler {
	return queries.NewListWalletTransactionsQueryHandler(c.gormDB)
}

// CreateRouter wires every handler into the HTTP API.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := api.NewServer(api.CommandHandlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		Transition:       c.CreateTransitionOrderStatusCommandHandler(),
		BulkTransition:   c.CreateBulkTransitionOrderStatusCommandHandler(),
		CancelWithRefund: c.CreateCancelOrderWithRefundCommandHandler(),
		Pay:              c.CreatePayOrderCommandHandler(),
		AssignWriter:     c.CreateAssignWriterCommandHandler(),
		OverridePrice:    c.CreateOverrideOrderPriceCommandHandler(),
		Wallet:           c.CreateWalletCommandHandler(),
		Reconcile:        c.CreateReconcileWalletsCommandHandler(),
	}, api.QueryHandlers{
		EstimatePrice:          c.CreateEstimatePriceQueryHandler(),
		ListOrders:             c.CreateListOrdersQueryHandler(),
		GetOrderHistory:        c.CreateGetOrderHistoryQueryHandler(),
		GetWalletBalance:       c.CreateGetWalletBalanceQueryHandler(),
		ListWalletTransactions: c.CreateListWalletTransactionsQueryHandler(),
	}, c.logger)

	return api.NewRouter(ctx, server, c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileWalletsCommandHandler(), c.cfg.ReconcileCron, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}
