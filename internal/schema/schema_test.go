package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
)

type recordingExecer struct {
	queries []string
	err     error
}

func (r *recordingExecer) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	r.queries = append(r.queries, query)
	return 0, r.err
}

func TestUsersTable(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{config.DriverPostgres, `"createdAt" TIMESTAMPTZ`, false},
		{config.DriverMySQL, "AUTO_INCREMENT", false},
		{config.DriverSQLite, "AUTOINCREMENT", false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			ddl, err := UsersTable(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("UsersTable(%q) expected error", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("UsersTable(%q) error = %v", tt.driver, err)
			}
			if !strings.Contains(ddl, "IF NOT EXISTS users") {
				t.Errorf("ddl is not idempotent: %s", ddl)
			}
			if !strings.Contains(ddl, tt.want) {
				t.Errorf("ddl missing %q: %s", tt.want, ddl)
			}
		})
	}
}

func TestEnsure(t *testing.T) {
	db := &recordingExecer{}
	if err := Ensure(context.Background(), db, config.DriverSQLite); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if len(db.queries) != 1 {
		t.Fatalf("got %d statements, want 1", len(db.queries))
	}
}

func TestEnsure_WrapsExecError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Ensure(context.Background(), &recordingExecer{err: cause}, config.DriverPostgres)
	if !errors.Is(err, cause) {
		t.Fatalf("Ensure() error = %v, want wrapped %v", err, cause)
	}
	if !strings.Contains(err.Error(), "ensure users table") {
		t.Errorf("error = %v, want context prefix", err)
	}
}
