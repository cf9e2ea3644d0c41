package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "github.com/sijms/go-ora/v2"     // driver: oracle
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Configured database kinds.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

func init() {
	// go-ora is unknown to sqlx; it takes :name placeholders.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// DriverName maps a configured database kind to its registered database/sql driver.
func DriverName(kind string) (string, error) {
	switch kind {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", kind)
	}
}

// Connect opens and pings the database of the given kind.
func Connect(ctx context.Context, kind, dsn string) (*sqlx.DB, error) {
	driverName, err := DriverName(kind)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", kind, err)
	}

	if kind == DriverSQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", kind, err)
	}
	return db, nil
}
