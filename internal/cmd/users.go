package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/access"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long: `Manage user accounts. Most operations require an admin session.

Subcommands:
  list    List all users
  get     Show one user with their access grants
  delete  Delete a user account`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		filter, page, pageSize, err := listWindowFromFlags(cmd)
		if err != nil {
			return err
		}

		users, err := app.api.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		users = filterPage(users, filter, page, pageSize, func(u platform.User) string {
			return u.ID + " " + u.Username + " " + u.Email + " " + string(u.Role)
		})

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(users)
		}

		rows := make([][]string, len(users))
		for i, u := range users {
			rows[i] = []string{u.ID, u.Username, u.Email, string(u.Role)}
		}
		printTable([]string{"ID", "USERNAME", "EMAIL", "ROLE"}, rows)

		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user with their access grants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		user, err := app.api.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(user)
		}

		printUser(user)

		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && ux.ShouldPrompt() {
			confirmed, err := ux.PromptForConfirmation(
				fmt.Sprintf("Delete user %s?", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("aborted")
				return nil
			}
		}

		if err := app.api.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "deleted user %s", args[0]))

		return nil
	},
}

func printUser(user *platform.User) {
	printTable(
		[]string{"FIELD", "VALUE"},
		[][]string{
			{"id", user.ID},
			{"username", user.Username},
			{"email", user.Email},
			{"role", string(user.Role)},
		})

	grants := access.Grants(user)
	if len(grants) == 0 {
		fmt.Println(app.styles.Muted.Render("no access grants"))
		return
	}

	fmt.Println()
	rows := make([][]string, len(grants))
	for i, g := range grants {
		rows[i] = []string{
			access.KindLabel(g.Kind),
			g.EntityID,
			ux.StatusLabel(app.styles, g.Active),
		}
	}
	printTable([]string{"KIND", "ENTITY", "STATUS"}, rows)
}

func init() {
	addListFlags(usersListCmd)
	usersDeleteCmd.Flags().Bool("yes", false, "skip confirmation")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
