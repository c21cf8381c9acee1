package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Inspect brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var brandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		filter, page, pageSize, err := listWindowFromFlags(cmd)
		if err != nil {
			return err
		}

		brands, err := app.api.ListBrands(cmd.Context())
		if err != nil {
			return err
		}
		brands = filterPage(brands, filter, page, pageSize, func(b platform.Brand) string {
			return b.ID + " " + b.Code + " " + b.Name
		})

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(brands)
		}

		rows := make([][]string, len(brands))
		for i, b := range brands {
			rows[i] = []string{b.ID, b.Code, b.Name}
		}
		printTable([]string{"ID", "CODE", "NAME"}, rows)

		return nil
	},
}

var brandsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		brand, err := app.api.GetBrand(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(brand)
		}

		printTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"id", brand.ID},
				{"code", brand.Code},
				{"name", brand.Name},
			})

		return nil
	},
}

var marketplacesCmd = &cobra.Command{
	Use:   "marketplaces",
	Short: "Inspect marketplaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var marketplacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all marketplaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		filter, page, pageSize, err := listWindowFromFlags(cmd)
		if err != nil {
			return err
		}

		marketplaces, err := app.api.ListMarketplaces(cmd.Context())
		if err != nil {
			return err
		}
		marketplaces = filterPage(marketplaces, filter, page, pageSize, func(m platform.Marketplace) string {
			return m.ID + " " + m.Name + " " + m.Country
		})

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(marketplaces)
		}

		rows := make([][]string, len(marketplaces))
		for i, m := range marketplaces {
			rows[i] = []string{m.ID, m.Name, m.Country}
		}
		printTable([]string{"ID", "NAME", "COUNTRY"}, rows)

		return nil
	},
}

var marketplacesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one marketplace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		marketplace, err := app.api.GetMarketplace(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(marketplace)
		}

		printTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"id", marketplace.ID},
				{"name", marketplace.Name},
				{"country", marketplace.Country},
			})

		return nil
	},
}

var shippingCmd = &cobra.Command{
	Use:   "shipping",
	Short: "Inspect shipping platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var shippingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all shipping platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		filter, page, pageSize, err := listWindowFromFlags(cmd)
		if err != nil {
			return err
		}

		platforms, err := app.api.ListShippingPlatforms(cmd.Context())
		if err != nil {
			return err
		}
		platforms = filterPage(platforms, filter, page, pageSize, func(s platform.ShippingPlatform) string {
			return s.ID + " " + s.Name + " " + s.Carrier
		})

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(platforms)
		}

		rows := make([][]string, len(platforms))
		for i, s := range platforms {
			rows[i] = []string{s.ID, s.Name, s.Carrier}
		}
		printTable([]string{"ID", "NAME", "CARRIER"}, rows)

		return nil
	},
}

var shippingGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one shipping platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		sp, err := app.api.GetShippingPlatform(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(sp)
		}

		printTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"id", sp.ID},
				{"name", sp.Name},
				{"carrier", sp.Carrier},
			})

		return nil
	},
}

func init() {
	addListFlags(brandsListCmd)
	addListFlags(marketplacesListCmd)
	addListFlags(shippingListCmd)

	brandsCmd.AddCommand(brandsListCmd)
	brandsCmd.AddCommand(brandsGetCmd)
	rootCmd.AddCommand(brandsCmd)

	marketplacesCmd.AddCommand(marketplacesListCmd)
	marketplacesCmd.AddCommand(marketplacesGetCmd)
	rootCmd.AddCommand(marketplacesCmd)

	shippingCmd.AddCommand(shippingListCmd)
	shippingCmd.AddCommand(shippingGetCmd)
	rootCmd.AddCommand(shippingCmd)
}
