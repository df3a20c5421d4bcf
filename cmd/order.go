// =============================================================================
// Order Sheet - Order Commands
// =============================================================================
//
// This file defines the 'order' command group: confirming a cart into the
// ledger workbook and clearing the ledger back to its header.
//
// COMMAND USAGE:
//   ordersheet order save --cart cart.yaml
//   ordersheet order clear
//
// CART FILE FORMAT (YAML):
//   shop_label: "Խանութ Կենտրոն"
//   lines:
//     - shop_id: 1
//       product: "Milk"        # resolved against the product catalog by name
//       quantity: 2
//       discount_percent: 10
//
// Prices come from the product catalog at save time; the cart file never
// carries prices. Lines whose product is not in the catalog fail the save
// before anything is written.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RAFIKME/ordersheet/internal/cart"
	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/money"
)

var cartFilePath string

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Persist confirmed carts to the order ledger",
}

// cartFile is the on-disk cart a user confirms.
type cartFile struct {
	ShopLabel string         `yaml:"shop_label" validate:"required"`
	Lines     []cartFileLine `yaml:"lines" validate:"required,min=1,dive"`
}

type cartFileLine struct {
	ShopID          int     `yaml:"shop_id" validate:"gte=1"`
	Product         string  `yaml:"product" validate:"required"`
	Quantity        int     `yaml:"quantity" validate:"gte=0"`
	DiscountPercent float64 `yaml:"discount_percent" validate:"gte=0,lte=100"`
}

// =============================================================================
// SAVE
// =============================================================================

var orderSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Append a confirmed cart to the order ledger",
	Long: `Reads a cart file, resolves each line against the product catalog, and
appends the lines to the ledger workbook grouped by shop, each group followed
by a shop-subtotal marker row.

The write replaces the ledger file atomically; on failure nothing changes and
the cart file is left in place so the save can be retried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		cf, err := loadCartFile(cartFilePath)
		if err != nil {
			return err
		}

		ledgerCart, err := buildCart(a, cf)
		if err != nil {
			return err
		}

		total := ledgerCart.GrandTotal()
		label := cf.ShopLabel
		if err := a.persister.Append(ledgerCart, func(int) string { return label }); err != nil {
			a.notifier.Notify("failed to save orders")
			return err
		}

		// Persist succeeded; the in-memory cart is done with.
		ledgerCart.Clear()

		a.notifier.Notify(fmt.Sprintf("orders saved, total %s",
			money.FormatWith(total, a.cfg.Currency.Suffix)))
		return nil
	},
}

func loadCartFile(path string) (*cartFile, error) {
	if path == "" {
		return nil, errors.New("--cart is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cart file: %w", err)
	}
	var cf cartFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing cart file: %w", err)
	}
	if err := validator.New().Struct(&cf); err != nil {
		return nil, fmt.Errorf("invalid cart file: %w", err)
	}
	return &cf, nil
}

// buildCart resolves cart file lines against the product catalog.
func buildCart(a *app, cf *cartFile) (*cart.Ledger, error) {
	c := cart.New()
	for _, line := range cf.Lines {
		product, found, err := a.catalog.ProductByName(line.Product)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("product %q is not in the catalog", line.Product)
		}
		c.AddLine(cart.Line{
			ShopID:          line.ShopID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        line.Quantity,
			UnitPrice:       product.Price,
			DiscountPercent: decimal.NewFromFloat(line.DiscountPercent),
		})
	}
	return c, nil
}

// =============================================================================
// CLEAR
// =============================================================================

var orderClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the order ledger, keeping only its header row",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		err = a.persister.Clear()
		if errors.Is(err, sheet.ErrMissingFile) {
			a.notifier.Notify("ledger file does not exist")
			return nil
		}
		if err != nil {
			return err
		}
		a.notifier.Notify("orders cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderSaveCmd)
	orderCmd.AddCommand(orderClearCmd)

	orderSaveCmd.Flags().StringVar(&cartFilePath, "cart", "", "Path to the cart YAML file")
}
