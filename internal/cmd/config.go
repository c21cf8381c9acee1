package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/config"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the merchdesk configuration",
	Long: `Manage the merchdesk configuration.

Subcommands:
  init  Write a default configuration file
  show  Print the effective configuration
  path  Print the configuration file path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
		}

		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "wrote %s", path))

		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying file values and environment
overrides, in the selected output format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := flagOutput
		if format == "" || format == "text" {
			format = "yaml"
		}
		formatter, err := ux.NewFormatter(format, nil)
		if err != nil {
			return err
		}
		return formatter.Format(app.config)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing configuration")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
