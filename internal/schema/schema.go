// Package schema holds the users table definition for each supported driver.
package schema

import (
	"context"
	"fmt"

	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
)

// Execer runs a statement and reports the affected row count.
// core.Store satisfies it.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

var usersTable = map[string]string{
	config.DriverPostgres: `CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	"createdAt" TIMESTAMPTZ DEFAULT now()
)`,
	config.DriverMySQL: `CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	createdAt DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	config.DriverSQLite: `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	createdAt DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
}

// UsersTable returns the CREATE TABLE statement for driver.
func UsersTable(driver string) (string, error) {
	ddl, ok := usersTable[driver]
	if !ok {
		return "", fmt.Errorf("no users table definition for driver %q", driver)
	}
	return ddl, nil
}

// Ensure creates the users table if it does not exist. It is idempotent.
func Ensure(ctx context.Context, db Execer, driver string) error {
	ddl, err := UsersTable(driver)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	return nil
}
