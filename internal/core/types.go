package core

import (
	"context"
	"time"
)

// User is a row of the users table.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt"`
}

// UserInput carries the fields a client may set on create or update.
// Updates replace both fields.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ImportRecord is a spreadsheet row that passed extraction and is ready to insert.
type ImportRecord struct {
	Name      string
	Email     string
	CreatedAt time.Time
}

// Store is the record access contract over the users table.
// UpdateByID and DeleteByID return ErrNotFound when no row has the id.
type Store interface {
	ListAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, in UserInput) error
	UpdateByID(ctx context.Context, id int64, in UserInput) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	// InTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; the connection is released either way.
	InTx(ctx context.Context, fn func(tx Inserter) error) error

	// Exec runs an arbitrary statement and returns the affected row count.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error
}

// Inserter inserts import records within a transaction.
type Inserter interface {
	Insert(ctx context.Context, rec ImportRecord) (int64, error)
}

// RowStatus is the outcome of one spreadsheet row.
type RowStatus string

const (
	RowInserted RowStatus = "inserted"
	RowSkipped  RowStatus = "skipped"
)

// RowResult reports what happened to one data row. Row is 1-based and does
// not count the header.
type RowResult struct {
	Row    int       `json:"row"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
	ID     int64     `json:"id,omitempty"`
}

// ImportReport is the result of a committed import.
type ImportReport struct {
	ImportID      string        `json:"importId"`
	FileName      string        `json:"fileName"`
	Sheet         string        `json:"sheet"`
	TotalRows     int           `json:"totalRows"`
	TotalInserted int           `json:"totalInserted"`
	Skipped       int           `json:"skipped"`
	Rows          []RowResult   `json:"rows"`
	Duration      time.Duration `json:"-"`

	// MissingColumns lists required headers absent from the sheet. When it is
	// non-empty every data row is skipped.
	MissingColumns []string `json:"missingColumns,omitempty"`
}
