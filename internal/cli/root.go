// Package cli implements the usersctl command line client.
//
// Every command talks to a running server through internal/client. The
// server URL comes from --server, then USERS_SERVER, then the default.
package cli

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vadym-Teslytskyy/usermanager/internal/client"
	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// DefaultServer is used when neither --server nor USERS_SERVER is set.
const DefaultServer = "http://localhost:8080"

// App holds state shared by all commands.
type App struct {
	ServerURL string
	Timeout   time.Duration
}

// Client returns an API client for the configured server.
func (a *App) Client() *client.Client {
	return client.New(a.ServerURL, a.Timeout)
}

// NewRootCmd builds the usersctl command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "Manage users on a user manager server",
		Long: `usersctl lists, edits and imports users through the server's HTTP API.

Examples:
  usersctl list --search example.com --sort name
  usersctl add "Ada Lovelace" ada@example.com
  usersctl update 3 "Ada King" ada@example.org
  usersctl import users.xlsx
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server",
		cmp.Or(os.Getenv("USERS_SERVER"), DefaultServer), "server base URL (env USERS_SERVER)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 2*time.Minute, "request timeout")

	cmd.AddCommand(
		NewListCmd(app),
		NewAddCmd(app),
		NewUpdateCmd(app),
		NewDeleteCmd(app),
		NewDeleteAllCmd(app),
		NewImportCmd(app),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

// describeError renders err for the terminal. Server errors already carry a
// mapped message; local errors with a known pattern get one here.
func describeError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Error()
	}
	if core.IsUserFacing(err) {
		return "Error: " + core.FormatUserError(err)
	}
	return "Error: " + err.Error()
}
