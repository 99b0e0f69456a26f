package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Vadym-Teslytskyy/usermanager/internal/logging"
)

const tracerName = "github.com/Vadym-Teslytskyy/usermanager/internal/core"

// Service provides the user management operations on top of a Store.
type Service struct {
	store  Store
	now    func() time.Time
	tracer trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for default import timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns every user in store order.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list users", Err: err}
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// CreateUser validates in and inserts a new user.
func (s *Service) CreateUser(ctx context.Context, in UserInput) error {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.store.Create(ctx, in); err != nil {
		return &StoreError{Op: "create user", Err: err}
	}
	logging.FromContext(ctx).Info("user created", "email", in.Email)
	return nil
}

// UpdateUser replaces the name and email of user id.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UserInput) error {
	if id <= 0 {
		return ErrInvalidID
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateByID(ctx, id, in); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return &StoreError{Op: "update user", Err: err}
	}
	logging.FromContext(ctx).Info("user updated", "id", id)
	return nil
}

// DeleteUser removes user id.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return &StoreError{Op: "delete user", Err: err}
	}
	logging.FromContext(ctx).Info("user deleted", "id", id)
	return nil
}

// DeleteAllUsers removes every user.
func (s *Service) DeleteAllUsers(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return &StoreError{Op: "delete all users", Err: err}
	}
	ip, _ := ClientFromContext(ctx)
	logging.FromContext(ctx).Warn("all users deleted", "ip", ip)
	return nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}
