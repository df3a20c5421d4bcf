// =============================================================================
// Order Sheet - Catalog Facade
// =============================================================================
//
// Catalog binds the generic store to the three workbooks and applies the
// derived-id rules on every read:
//   - Products are sorted by name, then numbered 1..N.
//   - Shops are filtered to one city, then numbered 1..N in row order.
//   - Cities keep their stored ids; the Cities workbook is read-only.
//
// =============================================================================

package catalog

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// Files names the three catalog workbooks.
type Files struct {
	Cities   string
	Shops    string
	Products string
}

// DefaultFiles returns the historical workbook names.
func DefaultFiles() Files {
	return Files{
		Cities:   "Cities.xlsx",
		Shops:    "Shops.xlsx",
		Products: "Products.xlsx",
	}
}

// Catalog exposes typed access to the city, shop and product workbooks.
type Catalog struct {
	cities   *Store[City]
	shops    *Store[Shop]
	products *Store[Product]
}

// New wires the three stores over a shared codec and path provider.
func New(files Files, provider *paths.Provider, codec *sheet.Codec, log zerolog.Logger) *Catalog {
	return &Catalog{
		cities: newStore(files.Cities, provider, codec, rowCodec[City]{
			schema: CitySchema,
			decode: decodeCity,
			encode: encodeCity,
			key:    func(c City) string { return c.Name },
		}, log),
		shops: newStore(files.Shops, provider, codec, rowCodec[Shop]{
			schema: ShopSchema,
			decode: decodeShop,
			encode: encodeShop,
			key:    func(s Shop) string { return s.Name },
		}, log),
		products: newStore(files.Products, provider, codec, rowCodec[Product]{
			schema: ProductSchema,
			decode: decodeProduct,
			encode: encodeProduct,
			key:    func(p Product) string { return p.Name },
		}, log),
	}
}

// =============================================================================
// CITIES
// =============================================================================

// Cities lists every city with its stored id.
func (c *Catalog) Cities() ([]City, error) {
	return c.cities.List(nil)
}

// =============================================================================
// SHOPS
// =============================================================================

// Shops lists the shops of one city, numbered 1..N by position within the
// filtered rows. Ids are not stable across edits.
func (c *Catalog) Shops(cityID int) ([]Shop, error) {
	shops, err := c.shops.List(func(s Shop) bool { return s.CityID == cityID })
	if err != nil {
		return nil, err
	}
	for i := range shops {
		shops[i].ID = i + 1
	}
	return shops, nil
}

// UpsertShop adds a shop or overwrites the row with the same name within the
// same city. The name is only a key inside one city; another city's shop of
// the same name is a different row.
func (c *Catalog) UpsertShop(shop Shop) error {
	return c.shops.Upsert(shop, func(s Shop) bool { return s.CityID == shop.CityID })
}

// DeleteShop removes the first shop row matching the name within the city.
func (c *Catalog) DeleteShop(cityID int, name string) error {
	return c.shops.Delete(name, func(s Shop) bool { return s.CityID == cityID })
}

// =============================================================================
// PRODUCTS
// =============================================================================

// Products lists every product sorted by name, numbered 1..N. Ids are not
// stable across edits.
func (c *Catalog) Products() ([]Product, error) {
	products, err := c.products.List(nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	for i := range products {
		products[i].ID = i + 1
	}
	return products, nil
}

// ProductByID resolves a display id from the current name-sorted listing.
func (c *Catalog) ProductByID(id int) (Product, bool, error) {
	products, err := c.Products()
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// ProductByName resolves a product by its natural key, case-insensitively.
func (c *Catalog) ProductByName(name string) (Product, bool, error) {
	products, err := c.Products()
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range products {
		if equalFoldTrim(p.Name, name) {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// UpsertProduct adds a product or overwrites the row with the same name.
func (c *Catalog) UpsertProduct(p Product) error {
	return c.products.Upsert(p, nil)
}

// DeleteProduct removes the first product row matching the name.
func (c *Catalog) DeleteProduct(name string) error {
	return c.products.Delete(name, nil)
}
