// Package store selects the core.Store implementation for the configured driver.
package store

import (
	"fmt"

	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
	"github.com/Vadym-Teslytskyy/usermanager/internal/database"
	"github.com/Vadym-Teslytskyy/usermanager/internal/store/postgres"
	"github.com/Vadym-Teslytskyy/usermanager/internal/store/sqlstore"
)

// Open returns a store over a lazily opened pool and the function that
// closes that pool. No connection is made until the store is first used.
func Open(cfg config.DatabaseConfig) (core.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool := database.NewPostgres(cfg)
		return postgres.NewLazy(pool), pool.Close, nil
	case config.DriverMySQL, config.DriverSQLite:
		db := database.NewSQL(cfg)
		return sqlstore.NewLazy(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
