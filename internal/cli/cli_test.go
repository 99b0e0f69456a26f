package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vadym-Teslytskyy/usermanager/internal/client"
	"github.com/Vadym-Teslytskyy/usermanager/internal/config"
	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
	"github.com/Vadym-Teslytskyy/usermanager/internal/store/memory"
	"github.com/Vadym-Teslytskyy/usermanager/internal/web"
)

func startServer(t *testing.T) (string, *memory.Store) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20},
	}
	store := memory.New()
	srv := httptest.NewServer(web.NewServer(cfg, core.NewService(store)).Handler())
	t.Cleanup(srv.Close)
	return srv.URL, store
}

func run(t *testing.T, server, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddListUpdateDelete(t *testing.T) {
	url, store := startServer(t)

	out, err := run(t, url, "", "add", "Grace Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "User added successfully")

	_, err = run(t, url, "", "add", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	out, err = run(t, url, "", "list", "--sort", "name")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "EMAIL")
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[2], "Grace Hopper")

	out, err = run(t, url, "", "list", "--search", "GRACE")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ada")

	out, err = run(t, url, "", "update", "1", "Grace B. Hopper", "grace@example.org")
	require.NoError(t, err)
	assert.Contains(t, out, "User updated successfully")

	out, err = run(t, url, "", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "User 2 deleted successfully")

	users, _ := store.ListAll(context.Background())
	require.Len(t, users, 1)
	assert.Equal(t, "Grace B. Hopper", users[0].Name)
}

func TestAdd_RejectsBadEmail(t *testing.T) {
	url, store := startServer(t)

	_, err := run(t, url, "", "add", "Ada", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")

	users, _ := store.ListAll(context.Background())
	assert.Empty(t, users)
}

func TestList_BadSortField(t *testing.T) {
	url, _ := startServer(t)

	_, err := run(t, url, "", "list", "--sort", "age")
	assert.Error(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	url, _ := startServer(t)

	_, err := run(t, url, "", "delete", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDeleteAll_Confirmation(t *testing.T) {
	url, store := startServer(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, core.UserInput{Name: "Ada", Email: "ada@example.com"}))

	out, err := run(t, url, "n\n", "delete-all")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you absolutely sure?")
	assert.Contains(t, out, "Cancelled.")
	users, _ := store.ListAll(ctx)
	assert.Len(t, users, 1)

	out, err = run(t, url, "yes\n", "delete-all")
	require.NoError(t, err)
	assert.Contains(t, out, "All users deleted successfully")
	users, _ = store.ListAll(ctx)
	assert.Empty(t, users)
}

func TestDeleteAll_Yes(t *testing.T) {
	url, store := startServer(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, core.UserInput{Name: "Ada", Email: "ada@example.com"}))

	out, err := run(t, url, "", "delete-all", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you absolutely sure?")
	users, _ := store.ListAll(ctx)
	assert.Empty(t, users)
}

func TestImport(t *testing.T) {
	url, store := startServer(t)

	path := filepath.Join(t.TempDir(), "users.csv")
	csv := "Name,Email,Created At\nAda,ada@example.com,2024-01-15\nGrace,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := run(t, url, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 rows inserted, 1 skipped")
	assert.Contains(t, out, "row 2 skipped: missing Email")

	users, _ := store.ListAll(context.Background())
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestImport_MissingColumn(t *testing.T) {
	url, store := startServer(t)

	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Phone\nAda,555-0100\n"), 0o600))

	out, err := run(t, url, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: sheet has no Email column")
	assert.Contains(t, out, "0 of 1 rows inserted, 1 skipped")

	users, _ := store.ListAll(context.Background())
	assert.Empty(t, users)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server error",
			err:  &client.APIError{Status: 404, Message: "User not found", Action: "Refresh the list", Code: "USR001"},
			want: "Error: HTTP 404: User not found (Code: USR001). Refresh the list",
		},
		{
			name: "known local error",
			err:  core.ErrInvalidID,
			want: "Error: Invalid user id (Code: VAL002). Use the numeric id shown in the user list",
		},
		{
			name: "unknown error",
			err:  errors.New("open users.csv: permission denied"),
			want: "Error: open users.csv: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}
