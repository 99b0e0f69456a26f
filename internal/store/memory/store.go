// Package memory implements core.Store in process memory.
// It is used by tests in place of a live database.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// Store keeps users in a slice guarded by a mutex. Transactions work on a
// copy that replaces the live state only on commit.
type Store struct {
	mu     sync.Mutex
	users  []core.User
	nextID int64
	now    func() time.Time

	// InsertHook, when set, is called before every transactional insert and
	// aborts it with the returned error.
	InsertHook func(core.ImportRecord) error
}

var _ core.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

func (s *Store) ListAll(ctx context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) Create(ctx context.Context, in core.UserInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now()
	s.users = append(s.users, core.User{ID: s.nextID, Name: in.Name, Email: in.Email, CreatedAt: &created})
	s.nextID++
	return nil
}

func (s *Store) UpdateByID(ctx context.Context, id int64, in core.UserInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = in.Name
			s.users[i].Email = in.Email
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	return nil
}

// InTx holds the store lock for the whole transaction, so concurrent writers
// observe either none or all of its inserts.
func (s *Store) InTx(ctx context.Context, fn func(tx core.Inserter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{
		users:  append([]core.User(nil), s.users...),
		nextID: s.nextID,
		hook:   s.InsertHook,
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.users = tx.users
	s.nextID = tx.nextID
	return nil
}

// Exec is not supported: there is no SQL engine behind this store.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, errors.New("memory store: exec not supported")
}

func (s *Store) Ping(ctx context.Context) error { return nil }

type txn struct {
	users  []core.User
	nextID int64
	hook   func(core.ImportRecord) error
}

func (t *txn) Insert(ctx context.Context, rec core.ImportRecord) (int64, error) {
	if t.hook != nil {
		if err := t.hook(rec); err != nil {
			return 0, err
		}
	}
	created := rec.CreatedAt
	id := t.nextID
	t.users = append(t.users, core.User{ID: id, Name: rec.Name, Email: rec.Email, CreatedAt: &created})
	t.nextID++
	return id, nil
}
