package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/platform"
	"github.com/felixgeelhaar/merchdesk/internal/session"
	"github.com/felixgeelhaar/merchdesk/internal/tui"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication and the current session",
	Long: `Manage authentication for the merchdesk back office.

Credentials are stored in $HOME/.merchdesk/credentials.json and the
session is renewed silently in the background while commands run.

Subcommands:
  login     Log in with email and password
  register  Create a new user account
  logout    Log out and clear the stored session
  status    Show the current session status

Examples:
  merchdesk auth login --email user@example.com
  merchdesk auth status
  merchdesk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the platform with your email and password.

Without flags an interactive form is shown. The access token is stored
locally; the refresh credential stays in an HTTP-only cookie and never
touches disk.

Examples:
  merchdesk auth login
  merchdesk auth login --email user@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			if !ux.ShouldPrompt() {
				return fmt.Errorf("--email and --password are required in non-interactive mode")
			}
			switch {
			case email == "" && password == "":
				input := tui.LoginInput{}
				if err := tui.RunLoginForm(&input); err != nil {
					return err
				}
				email, password = input.Email, input.Password
			case email == "":
				var err error
				if email, err = ux.PromptForString("Email", true); err != nil {
					return err
				}
			default:
				var err error
				if password, err = ux.PromptForPassword("Password"); err != nil {
					return err
				}
			}
		}

		if err := app.session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		snap := app.session.Snapshot()
		fmt.Println(ux.Successf(app.styles, "logged in as %s (%s)", snap.User.Email, snap.User.Role))

		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new user account",
	Long: `Create a new user account.

Creating privileged accounts requires an admin session; registering a
regular account works without one.

Examples:
  merchdesk auth register
  merchdesk auth register --username jane --email jane@example.com --role USER`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		if username == "" || email == "" || password == "" {
			if !ux.ShouldPrompt() {
				return fmt.Errorf("--username, --email and --password are required in non-interactive mode")
			}
			input := tui.RegisterInput{Username: username, Email: email, Password: password, Role: role}
			if err := tui.RunRegisterForm(&input); err != nil {
				return err
			}
			username, email, password, role = input.Username, input.Email, input.Password, input.Role
		}

		if role == "" {
			role = string(platform.RoleUser)
		}

		// Attach the current session's token when one exists; admins can
		// create privileged accounts this way.
		_ = app.session.Initialize(cmd.Context())

		user, err := app.session.Register(cmd.Context(), platform.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
			Role:     platform.Role(role),
		})
		if err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "created account %s (%s)", user.Email, user.Role))

		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Long: `Log out of the platform.

The server-side session is revoked on a best-effort basis; local state
is cleared regardless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = app.session.Initialize(cmd.Context())
		app.session.Logout(cmd.Context())

		fmt.Println(ux.Successf(app.styles, "logged out"))

		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.session.Initialize(cmd.Context()); err != nil {
			return err
		}
		snap := app.session.Snapshot()

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(statusReport(snap))
		}

		if !snap.Authenticated {
			fmt.Println(app.styles.Muted.Render("not logged in"))
			return nil
		}

		fmt.Println(ux.Successf(app.styles, "logged in as %s", snap.User.Email))
		printTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"user", snap.User.Username},
				{"email", snap.User.Email},
				{"role", string(snap.User.Role)},
				{"state", snap.State.String()},
			})

		return nil
	},
}

// statusReport is the structured form of auth status output.
func statusReport(snap session.Snapshot) map[string]interface{} {
	report := map[string]interface{}{
		"state":         snap.State.String(),
		"authenticated": snap.Authenticated,
	}
	if snap.User != nil {
		report["user"] = map[string]string{
			"id":       snap.User.ID,
			"username": snap.User.Username,
			"email":    snap.User.Email,
			"role":     string(snap.User.Role),
		}
	}
	return report
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authRegisterCmd.Flags().String("username", "", "account username")
	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("password", "", "account password")
	authRegisterCmd.Flags().String("role", "", "account role (USER or ADMIN)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
