package catalog

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
)

type Product struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Brand string   `json:"brand,omitempty"`
	Size  string   `json:"size,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

type Category struct {
	Name  string    `json:"name"`
	Items []Product `json:"items"`
}

type Recipe struct {
	Name        string   `json:"name"`
	Serves      int      `json:"serves"`
	Ingredients []string `json:"ingredients"` // product ids
}

// Catalog is the canonical shape every lookup operates on. Reference data
// only; never mutated after Load.
type Catalog struct {
	StoreName  string              `json:"store_name,omitempty"`
	Categories map[string]Category `json:"categories"`
	Recipes    map[string]Recipe   `json:"recipes"`
}

func empty() *Catalog {
	return &Catalog{Categories: map[string]Category{}, Recipes: map[string]Recipe{}}
}

// Load reads a catalog file and normalizes it. Two source shapes are
// accepted: category-keyed {categories: {...}, recipes: {...}} and flat
// {items: [...]}, which lands in a single "all" category. Loading never
// fails: a missing or unreadable file yields an empty catalog.
func Load(path string) *Catalog {
	b, err := os.ReadFile(path)
	if err != nil {
		return empty()
	}
	var raw struct {
		StoreName  string              `json:"store_name"`
		Categories map[string]Category `json:"categories"`
		Recipes    map[string]Recipe   `json:"recipes"`
		Items      []Product           `json:"items"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return empty()
	}
	c := empty()
	c.StoreName = raw.StoreName
	if raw.Recipes != nil {
		c.Recipes = raw.Recipes
	}
	switch {
	case raw.Categories != nil:
		c.Categories = raw.Categories
	case raw.Items != nil:
		c.Categories["all"] = Category{Name: "All Items", Items: raw.Items}
	}
	return c
}

// categoryKeys returns keys in a stable order so ties resolve the same way
// across calls.
func (c *Catalog) categoryKeys() []string {
	keys := make([]string, 0, len(c.Categories))
	for k := range c.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindItem matches name case-insensitively: first as a substring of an item
// name, then falling back to matching any whitespace token of the query.
func (c *Catalog) FindItem(name string) (Product, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return Product{}, false
	}
	for _, k := range c.categoryKeys() {
		for _, it := range c.Categories[k].Items {
			if strings.Contains(strings.ToLower(it.Name), q) {
				return it, true
			}
		}
	}
	tokens := strings.Fields(q)
	for _, k := range c.categoryKeys() {
		for _, it := range c.Categories[k].Items {
			low := strings.ToLower(it.Name)
			for _, tok := range tokens {
				if tok != "" && strings.Contains(low, tok) {
					return it, true
				}
			}
		}
	}
	return Product{}, false
}

// FindByID scans all categories for a product id.
func (c *Catalog) FindByID(id string) (Product, bool) {
	for _, k := range c.categoryKeys() {
		for _, it := range c.Categories[k].Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Product{}, false
}

// Category resolves a category by key or display-name substring.
func (c *Catalog) Category(name string) (Category, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	for _, k := range c.categoryKeys() {
		cat := c.Categories[k]
		if strings.Contains(strings.ToLower(k), q) || strings.Contains(strings.ToLower(cat.Name), q) {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryNames lists display names in stable key order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, k := range c.categoryKeys() {
		names = append(names, c.Categories[k].Name)
	}
	return names
}

// RecipeIngredients resolves a recipe by key or name substring and returns
// the matching products plus the serving count. Ingredient ids with no
// catalog entry are skipped.
func (c *Catalog) RecipeIngredients(name string) ([]Product, int, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	keys := make([]string, 0, len(c.Recipes))
	for k := range c.Recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r := c.Recipes[k]
		if !strings.Contains(strings.ToLower(k), q) && !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		var items []Product
		for _, id := range r.Ingredients {
			if it, ok := c.FindByID(id); ok {
				items = append(items, it)
			}
		}
		return items, r.Serves, true
	}
	return nil, 0, false
}
