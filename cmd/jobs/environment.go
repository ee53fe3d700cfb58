package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/persistence"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/library/shared/shell/config"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

// environment is everything a sweep needs.
type environment struct {
	transactor     shell.Transactor
	ledger         ledger.Ledger
	queue          notify.Queue
	logger         *slog.Logger
	reminderWindow time.Duration
	now            func() time.Time
	close          func()
}

// openFunc prepares the environment of one job run.
type openFunc func(ctx context.Context) (environment, error)

// openPostgres connects to the configured database. Notifications are delivered inline, the process
// exits right after the sweep.
func openPostgres(ctx context.Context) (environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return environment{}, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	engine, closeDB, err := config.NewEngine(
		ctx,
		cfg.DBAdapter,
		cfg.DatabaseURL,
		"",
		postgresengine.WithLogger(logger),
	)
	if err != nil {
		return environment{}, fmt.Errorf("connecting to postgres: %w", err)
	}

	transactor := persistence.NewTransactor(engine)

	return environment{
		transactor:     transactor,
		ledger:         ledger.New(ledger.WithLogger(logger)),
		queue:          notify.NewInlineQueue(notify.NewFanout(transactor.Repositories()), notify.WithLogger(logger)),
		logger:         logger,
		reminderWindow: cfg.DueReminderWindow,
		now:            time.Now,
		close:          closeDB,
	}, nil
}
