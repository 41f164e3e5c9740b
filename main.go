package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mrops-br/products-api/internal/app/service"
	"github.com/mrops-br/products-api/internal/domain"
	"github.com/mrops-br/products-api/internal/infrastructure/config"
	"github.com/mrops-br/products-api/internal/infrastructure/http"
	"github.com/mrops-br/products-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/products-api/internal/infrastructure/repository/postgres"
	"github.com/mrops-br/products-api/internal/infrastructure/telemetry"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "products-api"

var rootCmd = &cobra.Command{
	Use:          "products-api",
	Short:        "Product catalog HTTP API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the products table and stored functions",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	// A missing .env file is fine; the environment is used as is.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	telem, err := newTelemetry(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			telem.Logger.Error("Error shutting down telemetry", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer := telem.TracerProvider.Tracer(instrumentationName)
	meter := telem.MeterProvider.Meter(instrumentationName)
	logger := telem.Logger

	logger.Info("Starting Products API",
		slog.String("store_driver", cfg.Database.Driver),
	)

	repo, closeRepo, err := newRepository(ctx, cfg, tracer, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	productService := service.NewProductService(repo, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, logger, telem)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown failed", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("Server stopped")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate requires STORE_DRIVER=%s", config.StoreDriverPostgres)
	}

	pool, err := newPool(cmd.Context(), &cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(cmd.Context(), pool); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
	return nil
}

func newTelemetry(cfg *config.Config) (*telemetry.Telemetry, error) {
	if !cfg.OTLP.ExportEnabled {
		return telemetry.NewNoOpTelemetry(&cfg.OTLP, &cfg.Logging)
	}
	return telemetry.NewTelemetry(&cfg.OTLP, &cfg.Logging)
}

// newRepository builds the configured product store and a func releasing it
func newRepository(ctx context.Context, cfg *config.Config, tracer trace.Tracer, logger *slog.Logger) (domain.ProductRepository, func(), error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		logger.Warn("Using in-memory product store; data is lost on restart")
		return memory.NewProductRepository(tracer, logger), func() {}, nil
	}

	pool, err := newPool(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Connected to database",
		slog.Int("max_conns", cfg.Database.MaxConns),
	)
	return postgres.NewProductRepository(pool, tracer, logger), pool.Close, nil
}

func newPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
