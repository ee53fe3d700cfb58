// Package config provides configuration loading and database connection helpers
// for the library management system.
//
// Settings come from the environment, optionally seeded from a .env file. The package
// contains factory functions for PostgreSQL connections using the three supported
// drivers (pgx.Pool, sql.DB, sqlx.DB) and for the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
