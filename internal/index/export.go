// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Export is the document written for static-site generators.
type Export struct {
	Categories []string `json:"categories" yaml:"categories"`
	Tags       []string `json:"tags" yaml:"tags"`
	Recipes    []Result `json:"recipes" yaml:"recipes"`
}

const exportLimit = 100000

// ExportYAML writes the index to <dir>/export.yaml and returns the path.
// It supports the same filters as Search.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.exportDocument(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the index to <dir>/export.json and returns the path.
// It supports the same filters as Search.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.exportDocument(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportDocument(ctx context.Context, opts QueryOptions) (Export, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}

	doc := Export{Categories: []string{}, Tags: []string{}, Recipes: results}
	if doc.Recipes == nil {
		doc.Recipes = []Result{}
	}

	categories := make(map[string]bool)
	tags := make(map[string]string)
	for _, r := range results {
		categories[r.Category] = true
		for _, tag := range r.Tags {
			key := strings.ToLower(tag)
			if _, ok := tags[key]; !ok {
				tags[key] = tag
			}
		}
	}
	for c := range categories {
		doc.Categories = append(doc.Categories, c)
	}
	for _, tag := range tags {
		doc.Tags = append(doc.Tags, tag)
	}
	sort.Strings(doc.Categories)
	sort.Strings(doc.Tags)
	return doc, nil
}
