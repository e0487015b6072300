package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Item is one sellable entry in a catalog category. Prices are quoted
// in two-decimal USD.
type Item struct {
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Provider exposes read-only catalog lookups to the core.
type Provider interface {
	Category(key string) ([]Item, bool)
	Lookup(category, name string) (Item, bool)
}

// Catalog holds the static category → items mapping loaded at startup.
type Catalog struct {
	categories map[string][]Item
}

type catalogFile struct {
	Categories map[string][]Item `json:"categories" validate:"required,dive,min=1,dive"`
}

var validate = validator.New()

// Load reads and validates the catalog file at the given path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes catalog JSON and enforces the catalog invariants:
// non-empty categories, unique item names per category, non-negative
// prices.
func Parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	for key, items := range file.Categories {
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			if _, dup := seen[item.Name]; dup {
				return nil, fmt.Errorf("category %q: duplicate item %q", key, item.Name)
			}
			seen[item.Name] = struct{}{}
			if item.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("category %q: item %q has negative price", key, item.Name)
			}
		}
	}
	return &Catalog{categories: file.Categories}, nil
}

// Category returns the ordered items for a category key.
func (c *Catalog) Category(key string) ([]Item, bool) {
	items, ok := c.categories[key]
	if !ok {
		return nil, false
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, true
}

// Lookup finds a single item by category and name.
func (c *Catalog) Lookup(category, name string) (Item, bool) {
	items, ok := c.categories[category]
	if !ok {
		return Item{}, false
	}
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}
