// Package storage opens the configured store driver, applies migrations and returns the
// matching portsrepo.Store.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/repositories/database/pgsql"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/repositories/database/sqlstore"
	"github.com/Mani87-nq/yardbooks-web-sub011/migrations"
	"github.com/Mani87-nq/yardbooks-web-sub011/pkg/database"
	"github.com/jackc/pgx/v5/stdlib"
)

// Open connects to cfg.StoreDriver at cfg.DatabaseURL. When migrate is set the embedded
// schema is applied first. The returned func releases the connection.
func Open(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (portsrepo.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := migrations.Up(stdlib.OpenDBFromPool(pool), config.DriverPostgres, logger); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return pgsql.NewStore(pool), func() { database.ClosePgxPool(pool, logger) }, nil

	case config.DriverMySQL, config.DriverSQLite:
		db, err := database.OpenSQLX(ctx, cfg.StoreDriver, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := migrations.Up(db.DB, cfg.StoreDriver, logger); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		store, err := sqlstore.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database", slog.String("error", err.Error()))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
