// Package database opens connection pools on first use.
//
// Handles are created up front from configuration but no connection is made
// until the first Get. Open failures go straight back to the caller and the
// next Get tries again; there is no retry or backoff inside this package.
package database

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("database handle closed")

// Lazy holds a connection pool that is opened on first use.
type Lazy[T any] struct {
	open  func(context.Context) (T, error)
	close func(T)

	mu     sync.Mutex
	conn   T
	ready  bool
	closed bool
}

// NewLazy returns a handle that calls open on the first Get and close on Close.
func NewLazy[T any](open func(context.Context) (T, error), close func(T)) *Lazy[T] {
	return &Lazy[T]{open: open, close: close}
}

// Get returns the pool, opening it if this is the first successful call.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if l.closed {
		return zero, ErrClosed
	}
	if l.ready {
		return l.conn, nil
	}

	conn, err := l.open(ctx)
	if err != nil {
		return zero, err
	}
	l.conn = conn
	l.ready = true
	return conn, nil
}

// Close releases the pool if it was opened. Later Gets fail with ErrClosed.
func (l *Lazy[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready && l.close != nil {
		l.close(l.conn)
	}
	var zero T
	l.conn = zero
	l.ready = false
	l.closed = true
}
