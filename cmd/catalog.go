// =============================================================================
// Order Sheet - Catalog Commands
// =============================================================================
//
// This file defines the 'catalog' command group: listing the city, shop and
// product workbooks and editing shops and products. Cities are read-only.
//
// COMMAND USAGE:
//   ordersheet catalog list cities
//   ordersheet catalog list shops --city 1
//   ordersheet catalog list products
//   ordersheet catalog add product --name "Milk" --price 450 --photo milk
//   ordersheet catalog add shop --city 1 --name "Shop 1"
//   ordersheet catalog delete product --name "Milk"
//   ordersheet catalog delete shop --city 1 --name "Shop 1"
//
// 'add' also updates: the row with a matching name (case-insensitive) is
// overwritten in place, otherwise a new row is appended.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/RAFIKME/ordersheet/internal/catalog"
	"github.com/RAFIKME/ordersheet/pkg/money"
)

var (
	catalogCity        int
	productName        string
	productPrice       float64
	productPhoto       string
	productDescription string
	shopName           string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and edit the city, shop and product catalogs",
}

// =============================================================================
// LIST
// =============================================================================

var catalogListCmd = &cobra.Command{
	Use:       "list (cities|shops|products)",
	Short:     "List catalog rows",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cities", "shops", "products"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		switch args[0] {
		case "cities":
			cities, err := a.catalog.Cities()
			if err != nil {
				return err
			}
			for _, c := range cities {
				fmt.Printf("%3d  %s\n", c.ID, c.Name)
			}
		case "shops":
			shops, err := a.catalog.Shops(catalogCity)
			if err != nil {
				return err
			}
			for _, s := range shops {
				fmt.Printf("%3d  %s\n", s.ID, s.Name)
			}
		case "products":
			products, err := a.catalog.Products()
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Printf("%3d  %-30s %12s  %s\n",
					p.ID, p.Name, money.FormatWith(p.Price, a.cfg.Currency.Suffix), p.Photo)
			}
		}
		return nil
	},
}

// =============================================================================
// ADD / UPDATE
// =============================================================================

var catalogAddCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"update", "upsert"},
	Short:   "Add a catalog row, or overwrite the row with the same name",
}

var catalogAddProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Add or update a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if productName == "" {
			return errors.New("--name is required")
		}
		if productPrice < 0 {
			return errors.New("--price must not be negative")
		}

		err = a.catalog.UpsertProduct(catalog.Product{
			Name:        productName,
			Price:       decimal.NewFromFloat(productPrice),
			Photo:       productPhoto,
			Description: productDescription,
		})
		if err != nil {
			return err
		}
		a.notifier.Notify(fmt.Sprintf("product %q saved", productName))
		return nil
	},
}

var catalogAddShopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Add or update a shop within a city",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if shopName == "" {
			return errors.New("--name is required")
		}

		err = a.catalog.UpsertShop(catalog.Shop{CityID: catalogCity, Name: shopName})
		if err != nil {
			return err
		}
		a.notifier.Notify(fmt.Sprintf("shop %q saved", shopName))
		return nil
	},
}

// =============================================================================
// DELETE
// =============================================================================

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the first catalog row matching a name",
}

var catalogDeleteProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Delete a product by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if productName == "" {
			return errors.New("--name is required")
		}

		err = a.catalog.DeleteProduct(productName)
		if errors.Is(err, catalog.ErrNotFound) {
			a.notifier.Notify(fmt.Sprintf("product %q not found", productName))
			return nil
		}
		if err != nil {
			return err
		}
		a.notifier.Notify(fmt.Sprintf("product %q deleted", productName))
		return nil
	},
}

var catalogDeleteShopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Delete a shop by name within a city",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if shopName == "" {
			return errors.New("--name is required")
		}

		err = a.catalog.DeleteShop(catalogCity, shopName)
		if errors.Is(err, catalog.ErrNotFound) {
			a.notifier.Notify(fmt.Sprintf("shop %q not found", shopName))
			return nil
		}
		if err != nil {
			return err
		}
		a.notifier.Notify(fmt.Sprintf("shop %q deleted", shopName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
	catalogAddCmd.AddCommand(catalogAddProductCmd)
	catalogAddCmd.AddCommand(catalogAddShopCmd)
	catalogDeleteCmd.AddCommand(catalogDeleteProductCmd)
	catalogDeleteCmd.AddCommand(catalogDeleteShopCmd)

	catalogListCmd.Flags().IntVar(&catalogCity, "city", 1, "City id for shop listings")

	catalogAddProductCmd.Flags().StringVar(&productName, "name", "", "Product name (natural key)")
	catalogAddProductCmd.Flags().Float64Var(&productPrice, "price", 0, "Unit price")
	catalogAddProductCmd.Flags().StringVar(&productPhoto, "photo", "", "Photo asset name (stored as <name>.png)")
	catalogAddProductCmd.Flags().StringVar(&productDescription, "description", "", "Product description")

	catalogAddShopCmd.Flags().IntVar(&catalogCity, "city", 1, "City id the shop belongs to")
	catalogAddShopCmd.Flags().StringVar(&shopName, "name", "", "Shop name (natural key within the city)")

	catalogDeleteProductCmd.Flags().StringVar(&productName, "name", "", "Product name to delete")

	catalogDeleteShopCmd.Flags().IntVar(&catalogCity, "city", 1, "City id the shop belongs to")
	catalogDeleteShopCmd.Flags().StringVar(&shopName, "name", "", "Shop name to delete")
}
