// Package postgres implements core.Store on a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
	"github.com/Vadym-Teslytskyy/usermanager/internal/database"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Pool is the part of *pgxpool.Pool the store uses.
type Pool interface {
	DBTX
	Begin(context.Context) (pgx.Tx, error)
	Ping(context.Context) error
}

const (
	listUsers  = `SELECT id, name, email, "createdAt" FROM users ORDER BY id`
	createUser = `INSERT INTO users (name, email) VALUES ($1, $2)`
	updateUser = `UPDATE users SET name = $1, email = $2 WHERE id = $3`
	deleteUser = `DELETE FROM users WHERE id = $1`
	deleteAll  = `DELETE FROM users`
	importUser = `INSERT INTO users (name, email, "createdAt") VALUES ($1, $2, $3) RETURNING id`
)

// Store runs the users queries against a pool obtained per call.
type Store struct {
	pool func(context.Context) (Pool, error)
}

var _ core.Store = (*Store)(nil)

// New returns a Store that asks conn for a pool on every operation.
func New(conn func(context.Context) (Pool, error)) *Store {
	return &Store{pool: conn}
}

// NewLazy returns a Store over a pool opened on first use.
func NewLazy(lazy *database.Lazy[*pgxpool.Pool]) *Store {
	return New(func(ctx context.Context) (Pool, error) {
		p, err := lazy.Get(ctx)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

func (s *Store) ListAll(ctx context.Context) ([]core.User, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, listUsers)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (s *Store) Create(ctx context.Context, in core.UserInput) error {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, createUser, in.Name, in.Email); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) UpdateByID(ctx context.Context, id int64, in core.UserInput) error {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}
	tag, err := pool.Exec(ctx, updateUser, in.Name, in.Email, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}
	tag, err := pool.Exec(ctx, deleteUser, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, deleteAll); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// InTx begins a transaction on a pooled connection. The connection returns
// to the pool when the transaction commits or rolls back.
func (s *Store) InTx(ctx context.Context, fn func(tx core.Inserter) error) (err error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = fn(inserter{tx}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) Ping(ctx context.Context) error {
	pool, err := s.pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

type inserter struct {
	db DBTX
}

func (i inserter) Insert(ctx context.Context, rec core.ImportRecord) (int64, error) {
	var id int64
	if err := i.db.QueryRow(ctx, importUser, rec.Name, rec.Email, rec.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}
