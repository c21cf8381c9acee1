package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/tui"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var browseEntities = []string{"products", "brands", "marketplaces", "shipping", "users"}

var browseCmd = &cobra.Command{
	Use:   "browse [entity]",
	Short: "Browse entities interactively",
	Long: `Browse entities in an interactive, filterable list.

Entity is one of: products, brands, marketplaces, shipping, users.
Filtering happens locally over the fetched entries; press / to filter
and q to quit.

Without an argument an interactive picker is shown.

Examples:
  merchdesk browse
  merchdesk browse products
  merchdesk browse users`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity := ""
		if len(args) > 0 {
			entity = args[0]
		} else {
			if !ux.ShouldPrompt() {
				return fmt.Errorf("an entity argument is required in non-interactive mode")
			}
			var err error
			if entity, err = ux.PromptForSelect("Browse", browseEntities); err != nil {
				return err
			}
		}

		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		title, items, err := loadBrowseItems(cmd, entity)
		if err != nil {
			return err
		}

		return tui.RunBrowse(title, items)
	},
}

func loadBrowseItems(cmd *cobra.Command, entity string) (string, []tui.BrowseItem, error) {
	ctx := cmd.Context()

	switch entity {
	case "products":
		products, err := app.api.ListProducts(ctx)
		if err != nil {
			return "", nil, err
		}
		items := make([]tui.BrowseItem, len(products))
		for i, p := range products {
			items[i] = tui.BrowseItem{
				ID:     p.ID,
				Title:  fmt.Sprintf("%s  %s", p.SKU, p.Name),
				Detail: strconv.FormatFloat(p.Price, 'f', 2, 64) + ", stock " + strconv.Itoa(p.Stock),
			}
		}
		return "Products", items, nil

	case "brands":
		brands, err := app.api.ListBrands(ctx)
		if err != nil {
			return "", nil, err
		}
		items := make([]tui.BrowseItem, len(brands))
		for i, b := range brands {
			items[i] = tui.BrowseItem{ID: b.ID, Title: b.Name, Detail: b.Code}
		}
		return "Brands", items, nil

	case "marketplaces":
		marketplaces, err := app.api.ListMarketplaces(ctx)
		if err != nil {
			return "", nil, err
		}
		items := make([]tui.BrowseItem, len(marketplaces))
		for i, m := range marketplaces {
			items[i] = tui.BrowseItem{ID: m.ID, Title: m.Name, Detail: m.Country}
		}
		return "Marketplaces", items, nil

	case "shipping":
		platforms, err := app.api.ListShippingPlatforms(ctx)
		if err != nil {
			return "", nil, err
		}
		items := make([]tui.BrowseItem, len(platforms))
		for i, s := range platforms {
			items[i] = tui.BrowseItem{ID: s.ID, Title: s.Name, Detail: s.Carrier}
		}
		return "Shipping platforms", items, nil

	case "users":
		users, err := app.api.ListUsers(ctx)
		if err != nil {
			return "", nil, err
		}
		items := make([]tui.BrowseItem, len(users))
		for i, u := range users {
			items[i] = tui.BrowseItem{ID: u.ID, Title: u.Username, Detail: u.Email + ", " + string(u.Role)}
		}
		return "Users", items, nil

	default:
		return "", nil, fmt.Errorf("unknown entity %q (use %s)", entity, strings.Join(browseEntities, ", "))
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
