package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"question-bank/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// RunMigrations applies every pending up migration for the connection's
// driver. The migrator is not closed because that would close db.
func RunMigrations(db *sqlx.DB) error {
	switch db.DriverName() {
	case "oracle":
		return runOracleMigrations(db)
	case "pgx":
		driver, err := pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
		if err != nil {
			return fmt.Errorf("could not create postgres migration driver: %w", err)
		}
		return runMigrate("postgres", "pgx5", driver)
	case "sqlite":
		driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite migration driver: %w", err)
		}
		return runMigrate("sqlite", "sqlite", driver)
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
}

func runMigrate(dir, databaseName string, driver migratedb.Driver) error {
	src, err := iofs.New(migrationFiles, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, databaseName, driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.String("dialect", dir), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// runOracleMigrations executes each Oracle up file in name order. go-ora
// takes one statement per Exec, so every file holds exactly one statement
// without a trailing semicolon. Objects that already exist are skipped.
func runOracleMigrations(db *sqlx.DB) error {
	files, err := fs.Glob(migrationFiles, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrationFiles.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.Exec(stmt); err != nil {
			if isOracleAlreadyExists(err) {
				logger.Get().Debug("Skipping migration, object exists", zap.String("file", file))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", file, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", file))
	}

	logger.Get().Info("Migrations completed successfully", zap.String("dialect", "oracle"))
	return nil
}

// ORA-00955: name is already used by an existing object
// ORA-01408: such column list already indexed
func isOracleAlreadyExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ORA-00955") || strings.Contains(msg, "ORA-01408")
}
