package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/access"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Manage user access grants",
	Long: `Manage a user's access to brands, marketplaces and shipping platforms.

Changes are expressed as intents against the user's current grants: the
minimal set of grant and revoke calls is computed and applied, so
requesting a state the user already has results in no calls at all.

Subcommands:
  show  Show a user's grants
  set   Grant or revoke access

Examples:
  merchdesk access show u42
  merchdesk access set u42 --grant brand:b1 --revoke marketplace:m3
  merchdesk access set u42 --grant shipping:s2 --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accessShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user's access grants",
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
			return formatter.Format(access.Grants(user))
		}

		printUser(user)

		return nil
	},
}

var accessSetCmd = &cobra.Command{
	Use:   "set <user-id>",
	Short: "Grant or revoke access",
	Long: `Grant or revoke a user's access.

Each --grant and --revoke takes a kind:entity pair, where kind is one of
brand, marketplace or shipping. With --dry-run the computed change set
is printed without touching the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grants, _ := cmd.Flags().GetStringArray("grant")
		revokes, _ := cmd.Flags().GetStringArray("revoke")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if len(grants) == 0 && len(revokes) == 0 {
			return fmt.Errorf("nothing to do: pass at least one --grant or --revoke")
		}

		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		user, err := app.api.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		editor := access.NewEditor(user)
		if err := recordIntents(editor, grants, true); err != nil {
			return err
		}
		if err := recordIntents(editor, revokes, false); err != nil {
			return err
		}

		changes := editor.Changes()
		if len(changes) == 0 {
			fmt.Println(app.styles.Muted.Render("already in the requested state, nothing to apply"))
			return nil
		}

		for _, change := range changes {
			fmt.Printf("  %s\n", change)
		}

		if dryRun {
			fmt.Println(app.styles.Muted.Render("dry run, no changes applied"))
			return nil
		}

		updated, err := editor.Apply(cmd.Context(), app.api)
		if err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "applied %d change(s) to %s", len(changes), updated.Username))

		return nil
	},
}

// recordIntents parses kind:entity pairs and records them on the editor.
func recordIntents(editor *access.Editor, pairs []string, grant bool) error {
	for _, pair := range pairs {
		kind, entityID, err := parseGrantPair(pair)
		if err != nil {
			return err
		}
		editor.Set(kind, entityID, grant)
	}
	return nil
}

func parseGrantPair(pair string) (platform.GrantKind, string, error) {
	kindName, entityID, found := strings.Cut(pair, ":")
	if !found || entityID == "" {
		return "", "", fmt.Errorf("invalid grant %q, expected kind:entity", pair)
	}

	kind, err := access.ParseKind(kindName)
	if err != nil {
		return "", "", err
	}

	return kind, entityID, nil
}

func init() {
	accessSetCmd.Flags().StringArray("grant", nil, "grant access (kind:entity, repeatable)")
	accessSetCmd.Flags().StringArray("revoke", nil, "revoke access (kind:entity, repeatable)")
	accessSetCmd.Flags().Bool("dry-run", false, "print the change set without applying it")

	accessCmd.AddCommand(accessShowCmd)
	accessCmd.AddCommand(accessSetCmd)
	rootCmd.AddCommand(accessCmd)
}
