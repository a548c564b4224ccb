// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recipes reads and writes the content tree: one directory per
// category under a root, one JSON file per recipe inside each category.
package recipes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/cookbook/internal/logger"
	"github.com/pdiddy/cookbook/pkg/types"
)

const recipeExt = ".json"

// ListCategories returns the names of the immediate subdirectories of root,
// sorted.
func ListCategories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading content root %s: %w", root, err)
	}

	var categories []string
	for _, e := range entries {
		if e.IsDir() {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// ListRecipes returns the filename stems of the JSON recipes in a category,
// sorted case-insensitively.
func ListRecipes(root, category string) ([]string, error) {
	dir := filepath.Join(root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading category %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != recipeExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), recipeExt))
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// Path returns the file path of a named recipe in a category.
func Path(root, category, name string) string {
	return filepath.Join(root, category, name+recipeExt)
}

// Encode serializes r as UTF-8 JSON with two-space indentation. Non-ASCII
// and HTML-significant characters are written literally.
func Encode(r *types.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized(r)); err != nil {
		return nil, fmt.Errorf("encoding recipe %q: %w", r.Title, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save writes r to path, replacing any existing file.
func Save(path string, r *types.Recipe) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing recipe %s: %w", path, err)
	}
	return nil
}

// Load reads the recipe at path. Keys missing from the file decode as empty
// fields.
func Load(path string) (*types.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe %s: %w", path, err)
	}
	r := types.NewRecipe()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", path, err)
	}
	return normalized(r), nil
}

// LoadNamed loads a recipe by category and name. A recipe that does not
// exist yields an empty record and no error.
func LoadNamed(root, category, name string) (*types.Recipe, error) {
	r, err := Load(Path(root, category, name))
	if errors.Is(err, os.ErrNotExist) {
		return types.NewRecipe(), nil
	}
	return r, err
}

// CleanupStale deletes original when it differs from replacement and still
// exists. Paths that name the same file, such as a case-only rename on a
// case-insensitive filesystem, are never removed. Deletion failures are
// logged, never returned. It reports whether a file was removed.
func CleanupStale(original, replacement string, log *logger.Logger) bool {
	if original == replacement {
		return false
	}
	origInfo, err := os.Stat(original)
	if err != nil {
		return false
	}
	if replInfo, err := os.Stat(replacement); err == nil && os.SameFile(origInfo, replInfo) {
		return false
	}
	if err := os.Remove(original); err != nil {
		log.FileError(original, fmt.Errorf("deleting old recipe file: %w", err))
		return false
	}
	log.StaleRemoved(original)
	return true
}

// normalized replaces nil list fields so records always carry [] on disk.
func normalized(r *types.Recipe) *types.Recipe {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	return r
}
