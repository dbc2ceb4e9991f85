package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

type Config struct {
	Env                string        `env:"APP_ENV,default=local"`
	LogLevel           string        `env:"LOG_LEVEL,default=info"`
	HTTPPort           string        `env:"HTTP_PORT,default=8080"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=15s"`
	DB                 DBConfig      `env:",prefix=DB_"`
	Gateway            GatewayConfig `env:",prefix=GATEWAY_"`
	PricingCatalogFile string        `env:"PRICING_CATALOG_FILE,default=configs/pricing.yaml"`
	ReconcileCron      string        `env:"RECONCILE_CRON,default=*/5 * * * *"`
}

type DBConfig struct {
	Driver   string `env:"DRIVER,default=pgx"`
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME,default=paperdesk"`
	SslMode  string `env:"SSLMODE,default=disable"`
}

// GatewayConfig points at the payment provider's refund API. An empty
// BaseURL keeps refunds in intent-only mode.
type GatewayConfig struct {
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT,default=10s"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	_ = godotenv.Load()
	return ParseConfig(ctx, envconfig.OsLookuper())
}

func ParseConfig(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return Config{}, fmt.Errorf("env processing: %w", err)
	}

	switch cfg.DB.Driver {
	case DriverPgx, DriverPq:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q: want %q or %q", cfg.DB.Driver, DriverPgx, DriverPq)
	}
	return cfg, nil
}

// NewLogger returns a text logger for local runs and JSON everywhere else.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	if cfg.Env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
