package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"paperdesk/cmd"
	postgres_adapter "paperdesk/internal/adapters/out/postgres"
	"paperdesk/internal/adapters/out/postgres/pricingrepo"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger := cmd.NewLogger(configs)

	gormDB, err := openDatabase(configs.DB)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = prepareDatabase(ctx, gormDB, configs.PricingCatalogFile); err != nil {
		log.Fatalf("Error preparing database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func openDatabase(cfg cmd.DBConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if cfg.Driver == cmd.DriverPq {
		sqlDB, err := sql.Open(cmd.DriverPq, cfg.DSN())
		if err != nil {
			return nil, err
		}
		return gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), gormConfig)
	}
	return gorm.Open(gorm_postgres.Open(cfg.DSN()), gormConfig)
}

func prepareDatabase(ctx context.Context, gormDB *gorm.DB, catalogFile string) error {
	if err := postgres_adapter.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	catalog, err := pricingrepo.LoadCatalog(catalogFile)
	if err != nil {
		return err
	}
	return pricingrepo.Seed(ctx, gormDB, catalog)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Info("HTTP server started", "port", configs.HTTPPort)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
	logger.Info("HTTP server stopped")
}
