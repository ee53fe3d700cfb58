// Package postgreswrapper creates a migrated, empty postgres engine for integration tests.
// The adapter is chosen with the ADAPTER_TYPE environment variable (pgx.pool, sql.db, sqlx.db).
// Tests are skipped when the test database is not reachable.
package postgreswrapper

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/shared/shell/config"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

// Wrapper gives tests access to the engine and releases the connections afterward.
type Wrapper interface {
	GetEngine() postgresengine.Engine
	AdapterType() string
	Close()
}

type engineWrapper struct {
	engine      postgresengine.Engine
	adapterType string
	closeFn     func()
}

func (w *engineWrapper) GetEngine() postgresengine.Engine {
	return w.engine
}

func (w *engineWrapper) AdapterType() string {
	return w.adapterType
}

func (w *engineWrapper) Close() {
	w.closeFn()
}

// CreateWrapperWithTestConfig connects to the test database with the adapter from ADAPTER_TYPE,
// migrates the schema and truncates all tables.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE"))
	if adapterType == "" {
		adapterType = config.AdapterPGXPool
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	engine, closeFn, err := config.NewEngine(ctx, adapterType, config.PostgresTestDSN(), "", options...)
	if err != nil {
		t.Skipf("postgres test database not reachable (%s): %v", adapterType, err)
	}

	require.NoError(t, engine.Migrate(ctx), "error migrating test database")
	require.NoError(t, engine.Truncate(ctx), "error truncating test database")

	return &engineWrapper{engine: engine, adapterType: adapterType, closeFn: closeFn}
}
