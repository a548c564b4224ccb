// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a tree of recipe documents into the JSON content
// tree, one record per document, with pluggable line extractors.
package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cookbook/internal/parse"
	"github.com/pdiddy/cookbook/internal/recipes"
	"github.com/pdiddy/cookbook/internal/slug"
	"github.com/pdiddy/cookbook/pkg/types"
)

// Status is the outcome of converting one document.
type Status string

const (
	StatusConverted Status = "converted"
	// StatusSkipped means the document had no non-blank paragraphs.
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(s Status) {
	switch s {
	case StatusConverted:
		r.Converted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// ConvertDocument extracts, parses, and writes a single document to
// outDir/<stem>.json with the given category. The title falls back to the
// document's filename stem. A status line is written to w.
func ConvertDocument(ex Extractor, docPath, category, outDir string, w io.Writer) Status {
	stem := slug.Stem(docPath)

	lines, err := ex.Lines(docPath)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", docPath, err)
		return StatusFailed
	}

	recipe, ok := parse.Parse(lines, stem)
	if !ok {
		fmt.Fprintf(w, "skipped:   %s (no content)\n", docPath)
		return StatusSkipped
	}
	recipe.Category = category

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", docPath, err)
		return StatusFailed
	}
	outPath := filepath.Join(outDir, stem+".json")
	if err := recipes.Save(outPath, recipe); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", docPath, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", docPath, outPath)
	return StatusConverted
}

// ConvertTree walks cfg.SourceDir and converts every document found into
// cfg.OutputDir/<category>/. The category is the first path component below
// the source root, or Uncategorized for documents in the root itself. Any
// path containing an excluded folder name is skipped. Per-document failures
// are counted and never abort the walk; only an unreadable source root
// returns an error.
func ConvertTree(ex Extractor, cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	excluded := make(map[string]bool, len(cfg.ExcludeFolders))
	for _, name := range cfg.ExcludeFolders {
		excluded[name] = true
	}
	exts := documentExts(cfg.Backend)

	if _, err := os.Stat(cfg.SourceDir); err != nil {
		return result, fmt.Errorf("reading source directory: %w", err)
	}

	err := filepath.WalkDir(cfg.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == cfg.SourceDir {
				return err
			}
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.add(StatusFailed)
			return nil
		}

		rel, relErr := filepath.Rel(cfg.SourceDir, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if rel != "." && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		category := types.UncategorizedCategory
		if parts := strings.Split(filepath.ToSlash(rel), "/"); len(parts) > 1 {
			category = parts[0]
		}

		result.add(ConvertDocument(ex, path, category, filepath.Join(cfg.OutputDir, category), w))
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walking %s: %w", cfg.SourceDir, err)
	}

	printSummary(w, result)
	return result, nil
}

// ConvertFiles converts an explicit list of documents into one category.
func ConvertFiles(ex Extractor, paths []string, category, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		result.add(ConvertDocument(ex, p, category, filepath.Join(outDir, category), w))
	}
	printSummary(w, result)
	return result
}

func printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Skipped, r.Failed, r.Total())
}

// documentExts lists the file extensions a backend can read.
func documentExts(backend types.ConversionBackend) map[string]bool {
	if backend == types.BackendMarkitdown {
		return map[string]bool{".docx": true, ".doc": true, ".odt": true, ".rtf": true}
	}
	return map[string]bool{".docx": true}
}
