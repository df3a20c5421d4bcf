// =============================================================================
// Order Sheet - Catalog Records
// =============================================================================
//
// Typed records for the three catalog workbooks, with their column schemas
// and row codecs.
//
// COLUMN LAYOUTS (header row 0):
//   Cities.xlsx   | ID (number)      | City Name (string)  |
//   Shops.xlsx    | City ID (number) | Shop Name (string)  |
//   Products.xlsx | Product Name     | Product Price (num) | Photo Name | Description |
//
// Display ids are derived, never stored: a product's id is its 1-based
// position in the name-sorted list, a shop's id is its 1-based position among
// its city's rows. They are not stable across inserts or deletes and must not
// be compared across reads.
//
// =============================================================================

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/RAFIKME/ordersheet/internal/sheet"
)

// City is a read-only catalog row. The id is source-assigned and stored.
type City struct {
	ID   int
	Name string
}

// Shop belongs to a city. The id is recomputed on every read as the 1-based
// index among the city's rows.
type Shop struct {
	ID     int
	CityID int
	Name   string
}

// Product is a catalog row keyed by its name. The id is recomputed on every
// read as the 1-based index into the name-sorted list.
type Product struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Photo       string
	Description string
}

// =============================================================================
// SCHEMAS
// =============================================================================

// CitySchema describes the Cities workbook.
var CitySchema = sheet.Schema{
	Sheet: "Cities",
	Columns: []sheet.Column{
		{Name: "ID", Kind: sheet.ColNumber},
		{Name: "City Name", Kind: sheet.ColString},
	},
}

// ShopSchema describes the Shops workbook.
var ShopSchema = sheet.Schema{
	Sheet: "Shops",
	Columns: []sheet.Column{
		{Name: "City ID", Kind: sheet.ColNumber},
		{Name: "Shop Name", Kind: sheet.ColString},
	},
}

// ProductSchema describes the Products workbook. Photo and description are
// optional: products are routinely created without either, and a blank cell
// defaults to the empty string.
var ProductSchema = sheet.Schema{
	Sheet: "Products",
	Columns: []sheet.Column{
		{Name: "Product Name", Kind: sheet.ColString},
		{Name: "Product Price", Kind: sheet.ColNumber},
		{Name: "Photo Name", Kind: sheet.ColString, Optional: true},
		{Name: "Description", Kind: sheet.ColString, Optional: true},
	},
}

// =============================================================================
// ROW CODECS
// =============================================================================

func decodeCity(row sheet.Row) (City, bool) {
	return City{
		ID:   int(row.At(0).Num),
		Name: row.At(1).Text(),
	}, true
}

func encodeCity(c City) sheet.Row {
	return sheet.Row{sheet.Number(float64(c.ID)), sheet.String(c.Name)}
}

func decodeShop(row sheet.Row) (Shop, bool) {
	return Shop{
		CityID: int(row.At(0).Num),
		Name:   row.At(1).Text(),
	}, true
}

func encodeShop(s Shop) sheet.Row {
	return sheet.Row{sheet.Number(float64(s.CityID)), sheet.String(s.Name)}
}

func decodeProduct(row sheet.Row) (Product, bool) {
	return Product{
		Name:        row.At(0).Text(),
		Price:       decimal.NewFromFloat(row.At(1).Num),
		Photo:       row.At(2).Text(),
		Description: row.At(3).Text(),
	}, true
}

func encodeProduct(p Product) sheet.Row {
	price, _ := p.Price.Float64()
	return sheet.Row{
		sheet.String(p.Name),
		sheet.Number(price),
		sheet.String(p.Photo),
		sheet.String(p.Description),
	}
}
