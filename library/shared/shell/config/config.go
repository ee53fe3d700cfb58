package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AdapterPGXPool selects a pgxpool.Pool connection.
	AdapterPGXPool = "pgx.pool"
	// AdapterSQLDB selects a database/sql connection using lib/pq.
	AdapterSQLDB = "sql.db"
	// AdapterSQLXDB selects a sqlx connection using lib/pq.
	AdapterSQLXDB = "sqlx.db"

	envDatabaseURL        = "LMS_DATABASE_URL"
	envDatabaseReplicaURL = "LMS_DATABASE_REPLICA_URL"
	envDBAdapter          = "LMS_DB_ADAPTER"
	envHTTPAddr           = "LMS_HTTP_ADDR"
	envJWTSecret          = "LMS_JWT_SECRET"
	envReservationTTLDays = "LMS_RESERVATION_TTL_DAYS"
	envLoanPeriodDays     = "LMS_LOAN_PERIOD_DAYS"
	envDueReminderWindow  = "LMS_DUE_REMINDER_WINDOW"
	envNotifyBuffer       = "LMS_NOTIFY_BUFFER"
	envRateLimit          = "LMS_RATE_LIMIT_PER_SECOND"
	envOTelEndpoint       = "LMS_OTEL_ENDPOINT"
	envLogLevel           = "LMS_LOG_LEVEL"

	defaultHTTPAddr           = ":8080"
	defaultReservationTTLDays = 7
	defaultLoanPeriodDays     = 14
	defaultDueReminderWindow  = 24 * time.Hour
	defaultNotifyBuffer       = 256
	defaultRateLimit          = 20.0
)

var (
	// ErrMissingDatabaseURL is returned when no database url is configured.
	ErrMissingDatabaseURL = errors.New(envDatabaseURL + " must be set")

	// ErrMissingJWTSecret is returned when the HTTP server is configured without a signing secret.
	ErrMissingJWTSecret = errors.New(envJWTSecret + " must be set")

	// ErrUnsupportedAdapter is returned for an unknown LMS_DB_ADAPTER value.
	ErrUnsupportedAdapter = errors.New("unsupported database adapter")

	// ErrInvalidSetting is returned when a setting can not be parsed.
	ErrInvalidSetting = errors.New("invalid setting")
)

// Config holds every runtime setting of the server and the maintenance jobs.
type Config struct {
	DatabaseURL        string
	DatabaseReplicaURL string
	DBAdapter          string
	HTTPAddr           string
	JWTSecret          string
	ReservationTTL     time.Duration
	LoanPeriod         time.Duration
	DueReminderWindow  time.Duration
	NotifyBuffer       int
	RateLimitPerSecond float64
	OTelEndpoint       string
	LogLevel           slog.Level
}

// Load reads the configuration from the environment. A .env file in the working directory,
// if present, seeds variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the given lookup function, which makes it testable without
// touching the process environment.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		DBAdapter:          AdapterPGXPool,
		HTTPAddr:           defaultHTTPAddr,
		ReservationTTL:     defaultReservationTTLDays * 24 * time.Hour,
		LoanPeriod:         defaultLoanPeriodDays * 24 * time.Hour,
		DueReminderWindow:  defaultDueReminderWindow,
		NotifyBuffer:       defaultNotifyBuffer,
		RateLimitPerSecond: defaultRateLimit,
		LogLevel:           slog.LevelInfo,
	}

	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg.DatabaseURL = get(envDatabaseURL)
	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	cfg.DatabaseReplicaURL = get(envDatabaseReplicaURL)
	cfg.JWTSecret = get(envJWTSecret)
	cfg.OTelEndpoint = get(envOTelEndpoint)

	if v := get(envHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}

	if v := strings.ToLower(get(envDBAdapter)); v != "" {
		switch v {
		case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB:
			cfg.DBAdapter = v
		default:
			return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedAdapter, v)
		}
	}

	if v := get(envReservationTTLDays); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envReservationTTLDays, v)
		}
		cfg.ReservationTTL = time.Duration(days) * 24 * time.Hour
	}

	if v := get(envLoanPeriodDays); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envLoanPeriodDays, v)
		}
		cfg.LoanPeriod = time.Duration(days) * 24 * time.Hour
	}

	if v := get(envDueReminderWindow); v != "" {
		window, err := time.ParseDuration(v)
		if err != nil || window <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envDueReminderWindow, v)
		}
		cfg.DueReminderWindow = window
	}

	if v := get(envNotifyBuffer); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envNotifyBuffer, v)
		}
		cfg.NotifyBuffer = size
	}

	if v := get(envRateLimit); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envRateLimit, v)
		}
		cfg.RateLimitPerSecond = limit
	}

	if v := get(envLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, envLogLevel, v)
		}
	}

	return cfg, nil
}

// RequireJWTSecret returns ErrMissingJWTSecret when the server would run without token verification.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	return nil
}
