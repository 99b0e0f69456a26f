package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vadym-Teslytskyy/usermanager/internal/client"
	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

const timeLayout = "2006-01-02 15:04"

// NewListCmd prints users filtered and sorted the way the browser UI does.
func NewListCmd(app *App) *cobra.Command {
	var (
		search string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := client.ParseSortField(sortBy)
			if err != nil {
				return err
			}

			users, err := app.Client().ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			view := client.ViewState{Search: search, SortBy: field, Desc: desc}
			users = view.Apply(users)

			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED AT")
			for _, u := range users {
				created := "-"
				if u.CreatedAt != nil {
					created = u.CreatedAt.Local().Format(timeLayout)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, created)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive filter on name and email")
	cmd.Flags().StringVar(&sortBy, "sort", "id", "sort column: id, name or email")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

// NewAddCmd creates a user.
func NewAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := userInput(args[0], args[1])
			if err != nil {
				return err
			}
			msg, err := app.Client().CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// NewUpdateCmd replaces a user's name and email.
func NewUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <email>",
		Short: "Replace a user's name and email",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseID(args[0])
			if err != nil {
				return err
			}
			in, err := userInput(args[1], args[2])
			if err != nil {
				return err
			}
			msg, err := app.Client().UpdateUser(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// NewDeleteCmd deletes one user.
func NewDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseID(args[0])
			if err != nil {
				return err
			}
			msg, err := app.Client().DeleteUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// NewDeleteAllCmd deletes every user after confirmation.
func NewDeleteAllCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every user",
		Long: `Deletes every user on the server.

This action cannot be undone. You are asked to confirm unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(),
					"Are you absolutely sure? This action cannot be undone. "+
						"This will permanently delete all users. [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			msg, err := app.Client().DeleteAllUsers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// NewImportCmd uploads a spreadsheet and prints the per-row report.
func NewImportCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import users from an .xlsx or .csv file",
		Long: `Uploads the first sheet of a workbook. The header row must contain
Name and Email columns; Created At is optional. Rows missing a name or email
are skipped. If any row fails to insert, nothing is imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := app.Client().ImportFile(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.MissingColumns) > 0 {
				fmt.Fprintf(out, "warning: sheet has no %s column\n", strings.Join(res.MissingColumns, " or "))
			}
			fmt.Fprintf(out, "%s %d of %d rows inserted, %d skipped (import %s)\n",
				res.Message, res.TotalInserted, res.TotalRows, res.Skipped, res.ImportID)
			for _, row := range res.Rows {
				if row.Status == core.RowSkipped {
					fmt.Fprintf(out, "  row %d skipped: %s\n", row.Row, row.Reason)
				} else if verbose {
					fmt.Fprintf(out, "  row %d inserted as id %d\n", row.Row, row.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list inserted rows")
	return cmd
}

// userInput applies the same checks the add form does before submitting.
func userInput(name, email string) (core.UserInput, error) {
	in := core.UserInput{Name: name, Email: email}.Normalize()
	if err := in.Validate(); err != nil {
		return in, err
	}
	if !core.ValidEmail(in.Email) {
		return in, fmt.Errorf("invalid email address %q", in.Email)
	}
	return in, nil
}
