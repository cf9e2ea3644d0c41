package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// oracleObjectExists is raised when a CREATE targets a name that is already in use.
const oracleObjectExists = "ORA-00955"

// RunMigrations applies every pending up migration for the given database kind.
func RunMigrations(ctx context.Context, db *sql.DB, kind string, logger *zap.Logger) error {
	if kind == DriverOracle {
		return runOracleMigrations(ctx, db, logger)
	}

	m, err := newMigrate(db, kind)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date", zap.String("driver", kind))
			return nil
		}
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("could not read migration version: %w", err)
	}
	logger.Info("Migrations completed successfully",
		zap.String("driver", kind),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// RollbackMigrations reverts the most recent migration.
func RollbackMigrations(db *sql.DB, kind string) error {
	if kind == DriverOracle {
		return fmt.Errorf("rollback is not supported for oracle; apply the down scripts manually")
	}
	m, err := newMigrate(db, kind)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("could not roll back migration: %w", err)
	}
	return nil
}

func newMigrate(db *sql.DB, kind string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, path.Join("migrations", kind))
	if err != nil {
		return nil, fmt.Errorf("could not read %s migrations: %w", kind, err)
	}

	var driver migratedb.Driver
	switch kind {
	case DriverSQLite:
		driver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case DriverPostgres:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s migration driver: %w", kind, err)
	}

	return migrate.NewWithInstance("iofs", source, kind, driver)
}

// runOracleMigrations executes the embedded oracle up scripts in order. Objects that
// already exist are skipped, so reruns are harmless.
func runOracleMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	dir := path.Join("migrations", DriverOracle)
	files, err := OracleUpScripts()
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := fs.ReadFile(migrations, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if strings.Contains(err.Error(), oracleObjectExists) {
					logger.Debug("Skipping existing object", zap.String("file", name))
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		logger.Info("Executed migration", zap.String("file", name))
	}
	logger.Info("Migrations completed successfully", zap.String("driver", DriverOracle))
	return nil
}

// OracleUpScripts lists the embedded oracle up scripts in apply order.
func OracleUpScripts() ([]string, error) {
	entries, err := fs.ReadDir(migrations, path.Join("migrations", DriverOracle))
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// SplitStatements splits a script on ";" line endings. go-ora executes one
// statement per call and rejects the trailing semicolon.
func SplitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
