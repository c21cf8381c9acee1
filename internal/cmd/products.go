package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/merchdesk/internal/platform"
	"github.com/felixgeelhaar/merchdesk/internal/ux"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
	Long: `Manage the product catalog.

Subcommands:
  list    List all products visible to you
  get     Show one product
  create  Create a product
  update  Update a product
  delete  Delete a product

Examples:
  merchdesk products list
  merchdesk products create --sku W-1 --name "Red Widget" --brand b1 --price 9.99 --stock 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		filter, page, pageSize, err := listWindowFromFlags(cmd)
		if err != nil {
			return err
		}

		products, err := app.api.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		products = filterPage(products, filter, page, pageSize, func(p platform.Product) string {
			return p.ID + " " + p.SKU + " " + p.Name + " " + p.BrandID
		})

		if !textOutput() {
			formatter, err := outputFormatter()
			if err != nil {
				return err
			}
			return formatter.Format(products)
		}

		rows := make([][]string, len(products))
		for i, p := range products {
			rows[i] = []string{
				p.ID, p.SKU, p.Name, p.BrandID,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				strconv.Itoa(p.Stock),
			}
		}
		printTable([]string{"ID", "SKU", "NAME", "BRAND", "PRICE", "STOCK"}, rows)

		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		product, err := app.api.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printProduct(product)
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		input, err := productInputFromFlags(cmd)
		if err != nil {
			return err
		}

		product, err := app.api.CreateProduct(cmd.Context(), input)
		if err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "created product %s", product.ID))
		return printProduct(product)
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		input, err := productInputFromFlags(cmd)
		if err != nil {
			return err
		}

		product, err := app.api.UpdateProduct(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "updated product %s", product.ID))
		return printProduct(product)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && ux.ShouldPrompt() {
			confirmed, err := ux.PromptForConfirmation(
				fmt.Sprintf("Delete product %s?", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("aborted")
				return nil
			}
		}

		if err := app.api.DeleteProduct(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println(ux.Successf(app.styles, "deleted product %s", args[0]))

		return nil
	},
}

func productInputFromFlags(cmd *cobra.Command) (platform.ProductInput, error) {
	sku, _ := cmd.Flags().GetString("sku")
	name, _ := cmd.Flags().GetString("name")
	brand, _ := cmd.Flags().GetString("brand")
	price, _ := cmd.Flags().GetFloat64("price")
	stock, _ := cmd.Flags().GetInt("stock")

	if sku == "" || name == "" {
		return platform.ProductInput{}, fmt.Errorf("--sku and --name are required")
	}
	if price < 0 {
		return platform.ProductInput{}, fmt.Errorf("--price must be non-negative")
	}
	if stock < 0 {
		return platform.ProductInput{}, fmt.Errorf("--stock must be non-negative")
	}

	return platform.ProductInput{
		SKU:     sku,
		Name:    name,
		BrandID: brand,
		Price:   price,
		Stock:   stock,
	}, nil
}

func printProduct(product *platform.Product) error {
	if !textOutput() {
		formatter, err := outputFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(product)
	}

	printTable(
		[]string{"FIELD", "VALUE"},
		[][]string{
			{"id", product.ID},
			{"sku", product.SKU},
			{"name", product.Name},
			{"brand", product.BrandID},
			{"price", strconv.FormatFloat(product.Price, 'f', 2, 64)},
			{"stock", strconv.Itoa(product.Stock)},
		})

	return nil
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("sku", "", "stock keeping unit")
	cmd.Flags().String("name", "", "product name")
	cmd.Flags().String("brand", "", "brand ID")
	cmd.Flags().Float64("price", 0, "unit price")
	cmd.Flags().Int("stock", 0, "units in stock")
}

func init() {
	addListFlags(productsListCmd)
	addProductFlags(productsCreateCmd)
	addProductFlags(productsUpdateCmd)
	productsDeleteCmd.Flags().Bool("yes", false, "skip confirmation")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}
