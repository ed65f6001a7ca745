package database

import (
	"fmt"

	"question-bank/internal/config"
	"question-bank/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver ("sqlite")
)

func init() {
	// sqlx only knows the cgo driver names; register the pure-Go ones so
	// Rebind emits :1 for Oracle and ? for SQLite.
	sqlx.BindDriver("oracle", sqlx.NAMED)
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DriverName maps the configured driver to its database/sql name.
func DriverName(driver string) (string, error) {
	switch driver {
	case config.DriverOracle:
		return "oracle", nil
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewSQLXDB connects to the configured database and pings it.
func NewSQLXDB(cfg *config.Config) (*sqlx.DB, error) {
	driverName, err := DriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}
	return Connect(driverName, cfg.GetDSN())
}

// Connect opens driverName/dsn. SQLite is limited to one connection so an
// in-memory database is not split across connections.
func Connect(driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	if driverName == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", driverName))
	return db, nil
}
