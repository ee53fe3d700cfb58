// Command server runs the library management HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/snowRepo/LMS-sub006/library/httpapi"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/persistence"
	"github.com/snowRepo/LMS-sub006/library/shared/shell/config"
	"github.com/snowRepo/LMS-sub006/store/oteladapters"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

const (
	serviceName     = "lms-server"
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err = cfg.RequireJWTSecret(); err != nil {
		return err
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	obs := instruments{
		logger:           logger,
		contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(handler),
	}

	if cfg.OTelEndpoint != "" {
		providers, providersErr := config.NewObservabilityProviders(ctx, cfg.OTelEndpoint, serviceName)
		if providersErr != nil {
			return fmt.Errorf("starting opentelemetry: %w", providersErr)
		}
		defer func() {
			if shutdownErr := providers.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
				logger.Warn("opentelemetry shutdown failed", "error", shutdownErr.Error())
			}
		}()

		obs.metrics = oteladapters.NewMetricsCollector(otel.Meter(serviceName))
		obs.tracing = oteladapters.NewTracingCollector(otel.Tracer(serviceName))
	}

	engineOptions := []postgresengine.Option{
		postgresengine.WithLogger(obs.logger),
		postgresengine.WithContextualLogger(obs.contextualLogger),
	}
	if obs.metrics != nil {
		engineOptions = append(engineOptions,
			postgresengine.WithMetrics(obs.metrics),
			postgresengine.WithTracing(obs.tracing),
		)
	}

	engine, closeDB, err := config.NewEngine(ctx, cfg.DBAdapter, cfg.DatabaseURL, cfg.DatabaseReplicaURL, engineOptions...)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer closeDB()

	if err = engine.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	transactor := persistence.NewTransactor(engine)
	repos := transactor.Repositories()

	ledgerOptions := []ledger.Option{ledger.WithLogger(obs.logger), ledger.WithContextualLogger(obs.contextualLogger)}
	queueOptions := []notify.Option{notify.WithLogger(obs.logger), notify.WithContextualLogger(obs.contextualLogger)}
	if obs.metrics != nil {
		ledgerOptions = append(ledgerOptions, ledger.WithMetrics(obs.metrics))
		queueOptions = append(queueOptions, notify.WithMetrics(obs.metrics))
	}

	queue := notify.NewAsyncQueue(notify.NewFanout(repos), cfg.NotifyBuffer, queueOptions...)

	handlers, err := observe(httpapi.CoreHandlers(transactor, ledger.New(ledgerOptions...), queue), obs)
	if err != nil {
		return fmt.Errorf("wrapping handlers: %w", err)
	}

	e := httpapi.New(
		httpapi.Config{
			JWTSecret:          []byte(cfg.JWTSecret),
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			LoanPeriod:         cfg.LoanPeriod,
			Logger:             logger,
		},
		handlers,
		repos.Users,
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return queue.Run(context.WithoutCancel(groupCtx))
	})

	group.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "db_adapter", cfg.DBAdapter)

		if startErr := e.Start(cfg.HTTPAddr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), shutdownTimeout)
		defer cancel()

		shutdownErr := e.Shutdown(shutdownCtx)
		queue.Close()
		logger.Info("http server stopped")

		return shutdownErr
	})

	return group.Wait()
}
