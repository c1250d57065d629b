package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const categoryCatalog = `{
  "store_name": "GrocyMate",
  "categories": {
    "groceries": {
      "name": "Groceries",
      "items": [
        {"id": "g1", "name": "Amul Milk", "price": 30, "brand": "Amul", "size": "500ml", "tags": ["vegetarian"]},
        {"id": "g2", "name": "Basmati Rice", "price": 300, "brand": "India Gate", "size": "1kg", "tags": ["vegan", "vegetarian"]}
      ]
    },
    "spices": {
      "name": "Spices & Masalas",
      "items": [
        {"id": "s1", "name": "Turmeric Powder", "price": 60, "brand": "Everest", "size": "100g", "tags": ["vegan"]}
      ]
    }
  },
  "recipes": {
    "khichdi": {
      "name": "Khichdi",
      "serves": 4,
      "ingredients": ["g2", "s1", "missing-id"]
    }
  }
}`

const flatCatalog = `{
  "store_name": "GrocyMate",
  "items": [
    {"id": "f1", "name": "Bread", "price": 40},
    {"id": "f2", "name": "Peanut Butter", "price": 250}
  ]
}`

func TestLoad_CategoryShape(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))
	assert.Len(t, c.Categories, 2)
	assert.Len(t, c.Recipes, 1)
	assert.Equal(t, "GrocyMate", c.StoreName)
}

func TestLoad_FlatShapeGetsAllCategory(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", flatCatalog))
	require.Contains(t, c.Categories, "all")
	assert.Equal(t, "All Items", c.Categories["all"].Name)
	assert.Len(t, c.Categories["all"].Items, 2)
	assert.NotNil(t, c.Recipes)
}

func TestLoad_MissingFile(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NotNil(t, c)
	assert.Empty(t, c.Categories)
	assert.Empty(t, c.Recipes)
}

func TestLoad_CorruptFile(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", `{"categories": [not json`))
	require.NotNil(t, c)
	assert.Empty(t, c.Categories)
}

func TestFindItem_Substring(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))

	p, ok := c.FindItem("basmati rice")
	require.True(t, ok)
	assert.Equal(t, "g2", p.ID)

	// case-insensitive
	p, ok = c.FindItem("TURMERIC")
	require.True(t, ok)
	assert.Equal(t, "s1", p.ID)
}

func TestFindItem_TokenFallback(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))

	// "organic turmeric" fails as a full substring but the token matches
	p, ok := c.FindItem("organic turmeric")
	require.True(t, ok)
	assert.Equal(t, "s1", p.ID)
}

func TestFindItem_NoMatch(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))
	_, ok := c.FindItem("chocolate")
	assert.False(t, ok)
	_, ok = c.FindItem("   ")
	assert.False(t, ok)
}

func TestFindByID(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))
	p, ok := c.FindByID("s1")
	require.True(t, ok)
	assert.Equal(t, "Turmeric Powder", p.Name)
	_, ok = c.FindByID("zz")
	assert.False(t, ok)
}

func TestCategory_KeyOrNameMatch(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))

	cat, ok := c.Category("spices")
	require.True(t, ok)
	assert.Equal(t, "Spices & Masalas", cat.Name)

	cat, ok = c.Category("masala")
	require.True(t, ok)
	assert.Equal(t, "Spices & Masalas", cat.Name)

	_, ok = c.Category("electronics")
	assert.False(t, ok)
}

func TestRecipeIngredients_SkipsUnknownIDs(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))

	items, serves, ok := c.RecipeIngredients("khichdi")
	require.True(t, ok)
	assert.Equal(t, 4, serves)
	// "missing-id" is silently dropped
	require.Len(t, items, 2)
	ids := []string{items[0].ID, items[1].ID}
	assert.ElementsMatch(t, []string{"g2", "s1"}, ids)
}

func TestRecipeIngredients_NotFound(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))
	_, _, ok := c.RecipeIngredients("lasagna")
	assert.False(t, ok)
}

func TestCategoryNames_Stable(t *testing.T) {
	c := Load(writeFile(t, "catalog.json", categoryCatalog))
	assert.Equal(t, []string{"Groceries", "Spices & Masalas"}, c.CategoryNames())
}
