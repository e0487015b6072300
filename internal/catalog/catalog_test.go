package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseValidCatalog(t *testing.T) {
	raw := []byte(`{
		"categories": {
			"games": [
				{"name": "Sword", "unit_price": "5.00"},
				{"name": "Shield", "unit_price": "3.50"}
			],
			"tools": [
				{"name": "Hammer", "unit_price": "12.99"}
			]
		}
	}`)

	cat, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, ok := cat.Category("games")
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items in games, got %v (ok=%v)", items, ok)
	}
	// Category order must match the file.
	if items[0].Name != "Sword" || items[1].Name != "Shield" {
		t.Fatalf("unexpected item order: %v", items)
	}

	item, ok := cat.Lookup("games", "Shield")
	if !ok {
		t.Fatal("expected Shield in games")
	}
	if !item.UnitPrice.Equal(decimal.RequireFromString("3.50")) {
		t.Fatalf("unexpected price %s", item.UnitPrice)
	}

	if _, ok := cat.Category("missing"); ok {
		t.Fatal("unknown category must not resolve")
	}
	if _, ok := cat.Lookup("games", "Hammer"); ok {
		t.Fatal("lookup must not cross categories")
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{"categories":`},
		{name: "missing categories", raw: `{}`},
		{name: "empty category", raw: `{"categories": {"games": []}}`},
		{name: "item without name", raw: `{"categories": {"games": [{"unit_price": "5.00"}]}}`},
		{
			name: "duplicate item names",
			raw:  `{"categories": {"games": [{"name": "Sword", "unit_price": "5.00"}, {"name": "Sword", "unit_price": "6.00"}]}}`,
		},
		{
			name: "negative price",
			raw:  `{"categories": {"games": [{"name": "Sword", "unit_price": "-1.00"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	raw := []byte(`{"categories": {"games": [{"name": "Sword", "unit_price": "5.00"}]}}`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cat.Lookup("games", "Sword"); !ok {
		t.Fatal("expected Sword loaded")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCategoryReturnsACopy(t *testing.T) {
	cat, err := Parse([]byte(`{"categories": {"games": [{"name": "Sword", "unit_price": "5.00"}]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := cat.Category("games")
	items[0].Name = "Mutated"

	again, _ := cat.Category("games")
	if again[0].Name != "Sword" {
		t.Fatal("callers must not be able to mutate the catalog")
	}
}
