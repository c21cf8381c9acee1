package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/ux"
	"github.com/felixgeelhaar/merchdesk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetInfo()

		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Println(info.Short())
			return nil
		}

		if !textOutput() {
			formatter, err := ux.NewFormatter(flagOutput, nil)
			if err != nil {
				return err
			}
			return formatter.Format(info)
		}

		fmt.Println(info.String())

		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
