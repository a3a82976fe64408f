package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DriverFor picks the driver from the URL scheme. A bare path or ":memory:"
// is a SQLite database.
func DriverFor(databaseURL string) (Driver, error) {
	scheme, _, ok := strings.Cut(databaseURL, "://")
	if !ok {
		if databaseURL == "" {
			return "", fmt.Errorf("empty database URL")
		}
		return DriverSQLite, nil
	}
	switch scheme {
	case "sqlite", "file":
		return DriverSQLite, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unsupported database scheme %q", scheme)
}

// PoolConfig parses a PostgreSQL URL with pool settings sized for a cache
// that sees short, infrequent queries.
func PoolConfig(databaseURL string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	return config, nil
}
