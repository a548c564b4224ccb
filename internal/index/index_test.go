// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cookbook/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.IndexConfig{Dir: filepath.Join(tmpDir, "index"), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	root := filepath.Join(tmpDir, "content")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return store, root
}

func writeRecipe(t *testing.T, root, category, name string, r map[string]any) string {
	t.Helper()
	dir := filepath.Join(root, category)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(r)
	require.NoError(t, err)
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func seed(t *testing.T, root string) {
	t.Helper()
	writeRecipe(t, root, "baking", "Chocolate_Cake", map[string]any{
		"title":        "Chocolate Cake",
		"ingredients":  []string{"2 cups flour", "1 cup cocoa"},
		"instructions": []string{"Mix.", "Bake at 350."},
		"tags":         []string{"Dessert", "party"},
	})
	writeRecipe(t, root, "baking", "Banana_Bread", map[string]any{
		"title":        "Banana Bread",
		"ingredients":  []string{"3 bananas", "2 cups flour"},
		"instructions": []string{"Mash.", "Bake."},
	})
	writeRecipe(t, root, "drinks", "Lemonade", map[string]any{
		"title":        "Lemonade",
		"ingredients":  []string{"lemons", "sugar", "water"},
		"instructions": []string{"Squeeze.", "Stir."},
		"tags":         []string{"summer"},
	})
}

func build(t *testing.T, s *Store, root string) (BuildSummary, string) {
	t.Helper()
	var out bytes.Buffer
	summary, err := s.Build(context.Background(), root, "", &out)
	require.NoError(t, err)
	return summary, out.String()
}

// --- Build ---

func TestBuildIndexesTree(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)

	summary, out := build(t, s, root)
	assert.Equal(t, 3, summary.Indexed)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, out, "indexed  baking/Chocolate_Cake")

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBuildIncremental(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)
	build(t, s, root)

	summary, _ := build(t, s, root)
	assert.Equal(t, 3, summary.Skipped)
	assert.Zero(t, summary.Indexed)

	path := writeRecipe(t, root, "drinks", "Lemonade", map[string]any{
		"title":       "Pink Lemonade",
		"ingredients": []string{"lemons", "raspberries"},
	})
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	require.NoError(t, os.Remove(filepath.Join(root, "baking", "Banana_Bread.json")))

	summary, out := build(t, s, root)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Contains(t, out, "updated  drinks/Lemonade")
	assert.Contains(t, out, "removed  baking/Banana_Bread")

	results, err := s.Search(context.Background(), QueryOptions{Query: "raspberries"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pink Lemonade", results[0].Title)
}

func TestBuildResolvesImages(t *testing.T) {
	s, root := testSetup(t)
	writeRecipe(t, root, "baking", "Scones", map[string]any{"title": "Scones"})
	writeRecipe(t, root, "drinks", "Lemonade", map[string]any{
		"title": "Lemonade",
		"image": "https://cdn.example.com/lemonade.jpg",
	})
	images := t.TempDir()

	var out bytes.Buffer
	_, err := s.Build(context.Background(), root, images, &out)
	require.NoError(t, err)

	results, err := s.Search(context.Background(), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Image)
	assert.Equal(t, "https://cdn.example.com/lemonade.jpg", results[1].ImageAbs)

	require.NoError(t, os.MkdirAll(filepath.Join(images, "baking"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(images, "baking", "scones.jpg"), []byte("img"), 0o644))

	summary, err := s.Build(context.Background(), root, images, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)

	results, err = s.Search(context.Background(), QueryOptions{Category: "baking"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/images/baking/scones.jpg", results[0].Image)
}

func TestBuildMissingRoot(t *testing.T) {
	s, root := testSetup(t)
	_, err := s.Build(context.Background(), filepath.Join(root, "nope"), "", &bytes.Buffer{})
	assert.Error(t, err)
}

// --- Search ---

func TestSearch(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)
	build(t, s, root)
	ctx := context.Background()

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"title term", QueryOptions{Query: "lemonade"}, []string{"drinks/Lemonade"}},
		{"ingredient term", QueryOptions{Query: "cocoa"}, []string{"baking/Chocolate_Cake"}},
		{"category filter", QueryOptions{Category: "baking"}, []string{"baking/Banana_Bread", "baking/Chocolate_Cake"}},
		{"query and category", QueryOptions{Query: "flour", Category: "drinks"}, nil},
		{"tag filter", QueryOptions{Tag: "summer"}, []string{"drinks/Lemonade"}},
		{"limit", QueryOptions{Category: "baking", MaxResults: 1}, []string{"baking/Banana_Bread"}},
		{"no match", QueryOptions{Query: "anchovies"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(ctx, tt.opts)
			require.NoError(t, err)
			var ids []string
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchDecodesLists(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)
	build(t, s, root)

	results, err := s.Search(context.Background(), QueryOptions{Query: "cocoa"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, []string{"2 cups flour", "1 cup cocoa"}, r.Ingredients)
	assert.Equal(t, []string{"Mix.", "Bake at 350."}, r.Instructions)
	assert.Equal(t, []string{"Dessert", "party"}, r.Tags)
	assert.Equal(t, "baking", r.Category)
	assert.FileExists(t, r.Path)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Tag: "x"}.IsEmpty())
}

// --- Export ---

func TestExportYAML(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)
	build(t, s, root)

	path, err := s.ExportYAML(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "export.yaml", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Export
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Len(t, doc.Recipes, 3)
	assert.Equal(t, []string{"baking", "drinks"}, doc.Categories)
	assert.Equal(t, []string{"Dessert", "party", "summer"}, doc.Tags)
}

func TestExportJSONFiltered(t *testing.T) {
	s, root := testSetup(t)
	seed(t, root)
	build(t, s, root)

	path, err := s.ExportJSON(context.Background(), QueryOptions{Category: "drinks"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Export
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Recipes, 1)
	assert.Equal(t, "Lemonade", doc.Recipes[0].Title)
	assert.Equal(t, []string{"drinks"}, doc.Categories)
}

func TestExportEmptyIndex(t *testing.T) {
	s, _ := testSetup(t)

	path, err := s.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recipes": []`)
}
