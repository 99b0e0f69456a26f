package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
)

// NewSQL returns a lazy database/sql pool for the mysql or sqlite driver.
func NewSQL(cfg config.DatabaseConfig) *Lazy[*sqlx.DB] {
	return NewLazy(func(ctx context.Context) (*sqlx.DB, error) {
		return openSQL(ctx, cfg)
	}, func(db *sqlx.DB) {
		if err := db.Close(); err != nil {
			slog.Warn("close database", "error", err)
		}
	})
}

// DriverName returns the database/sql driver registered for cfg.Driver.
func DriverName(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("driver %q has no database/sql backend", cfg.Driver)
	}
}

// DSN builds the data source name for cfg.
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		// Affected-row counts are matched rows, so an update with
		// unchanged values still reports 1.
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	case config.DriverSQLite:
		return "file:" + cfg.Name + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("driver %q has no database/sql backend", cfg.Driver)
	}
}

func openSQL(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	driver, err := DriverName(cfg)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// Single connection: writers serialize and :memory: stays one database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(max(cfg.MinConns, 2))
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	slog.Info("connected to database", "driver", cfg.Driver, "host", cfg.Host, "name", cfg.Name)
	return db, nil
}
