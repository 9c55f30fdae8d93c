package database

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLX connects through database/sql for the "mysql" and "sqlite3" drivers.
func OpenSQLX(ctx context.Context, driver, dsn string, logger *slog.Logger) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		// SQLite allows one writer; a single connection keeps transactions from tripping SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	logger.Info("Successfully connected to database.", slog.String("driver", driver))
	return db, nil
}
