package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

// NewEngine connects with the adapter named in adapter and returns the engine together with
// a function that closes the underlying connections. The replica DSN is only honored by pgx.pool.
func NewEngine(
	ctx context.Context,
	adapter string,
	dsn string,
	replicaDSN string,
	options ...postgresengine.Option,
) (postgresengine.Engine, func(), error) {
	switch adapter {
	case AdapterPGXPool, "":
		poolConfig, err := PostgresPGXPoolConfig(dsn)
		if err != nil {
			return postgresengine.Engine{}, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return postgresengine.Engine{}, nil, err
		}

		if pingErr := pool.Ping(ctx); pingErr != nil {
			pool.Close()
			return postgresengine.Engine{}, nil, pingErr
		}

		if replicaDSN == "" {
			engine, engineErr := postgresengine.NewEngineFromPGXPool(pool, options...)
			return engine, pool.Close, engineErr
		}

		replicaConfig, err := PostgresPGXPoolConfig(replicaDSN)
		if err != nil {
			pool.Close()
			return postgresengine.Engine{}, nil, err
		}

		replica, err := pgxpool.NewWithConfig(ctx, replicaConfig)
		if err != nil {
			pool.Close()
			return postgresengine.Engine{}, nil, err
		}

		closeAll := func() {
			replica.Close()
			pool.Close()
		}

		engine, engineErr := postgresengine.NewEngineFromPGXPoolAndReplica(pool, replica, options...)

		return engine, closeAll, engineErr

	case AdapterSQLDB:
		db, err := PostgresSQLDB(ctx, dsn)
		if err != nil {
			return postgresengine.Engine{}, nil, err
		}

		engine, engineErr := postgresengine.NewEngineFromSQLDB(db, options...)

		return engine, func() { _ = db.Close() }, engineErr

	case AdapterSQLXDB:
		db, err := PostgresSQLX(ctx, dsn)
		if err != nil {
			return postgresengine.Engine{}, nil, err
		}

		engine, engineErr := postgresengine.NewEngineFromSQLX(db, options...)

		return engine, func() { _ = db.Close() }, engineErr

	default:
		return postgresengine.Engine{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedAdapter, adapter)
	}
}
