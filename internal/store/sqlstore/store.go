// Package sqlstore implements core.Store with sqlx over database/sql, for the
// MySQL and SQLite drivers. Both accept ? placeholders and an unquoted
// createdAt column, so one query set serves both.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
	"github.com/Vadym-Teslytskyy/usermanager/internal/database"
)

const (
	listUsers  = `SELECT id, name, email, createdAt FROM users ORDER BY id`
	createUser = `INSERT INTO users (name, email) VALUES (?, ?)`
	updateUser = `UPDATE users SET name = ?, email = ? WHERE id = ?`
	deleteUser = `DELETE FROM users WHERE id = ?`
	deleteAll  = `DELETE FROM users`
	importUser = `INSERT INTO users (name, email, createdAt) VALUES (?, ?, ?)`
)

type userRow struct {
	ID        int64        `db:"id"`
	Name      string       `db:"name"`
	Email     string       `db:"email"`
	CreatedAt sql.NullTime `db:"createdAt"`
}

func (r userRow) user() core.User {
	u := core.User{ID: r.ID, Name: r.Name, Email: r.Email}
	if r.CreatedAt.Valid {
		t := r.CreatedAt.Time
		u.CreatedAt = &t
	}
	return u
}

// Store runs the users queries against a *sqlx.DB obtained per call.
type Store struct {
	db func(context.Context) (*sqlx.DB, error)
}

var _ core.Store = (*Store)(nil)

// New returns a Store over an already open handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: func(context.Context) (*sqlx.DB, error) { return db, nil }}
}

// NewLazy returns a Store over a handle opened on first use.
func NewLazy(lazy *database.Lazy[*sqlx.DB]) *Store {
	return &Store{db: lazy.Get}
}

func (s *Store) ListAll(ctx context.Context) ([]core.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := db.SelectContext(ctx, &rows, listUsers); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	users := make([]core.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.user())
	}
	return users, nil
}

func (s *Store) Create(ctx context.Context, in core.UserInput) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, createUser, in.Name, in.Email); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) UpdateByID(ctx context.Context, id int64, in core.UserInput) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, updateUser, in.Name, in.Email, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteAll(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteAll); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

func (s *Store) InTx(ctx context.Context, fn func(tx core.Inserter) error) (err error) {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = fn(inserter{tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	db, err := s.db(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

type inserter struct {
	tx *sqlx.Tx
}

func (i inserter) Insert(ctx context.Context, rec core.ImportRecord) (int64, error) {
	res, err := i.tx.ExecContext(ctx, importUser, rec.Name, rec.Email, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
