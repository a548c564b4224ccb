// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a rebuildable SQLite full-text index of the content
// tree. The JSON files stay the source of truth; the index only answers
// searches and produces site exports.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cookbook/internal/catalog"
	"github.com/pdiddy/cookbook/pkg/types"
)

const (
	dbFile            = "cookbook.db"
	defaultMaxResults = 20
)

// Store manages the index database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int

	// fts is false when the sqlite3 driver was built without FTS5
	// (the sqlite_fts5 build tag); searches then fall back to LIKE.
	fts bool
}

// NewStore opens or creates the index database at cfg.Dir/cookbook.db and
// creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			requires TEXT,
			ingredients TEXT,
			instructions TEXT,
			remarks TEXT,
			yield TEXT,
			source TEXT,
			image TEXT,
			image_abs TEXT,
			tags TEXT,
			permalink TEXT,
			path TEXT,
			file_mod_time TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	if err := s.addColumn("recipes", "image_abs", "TEXT"); err != nil {
		return err
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='recipes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE recipes_fts USING fts5(
			title, ingredients, instructions, remarks,
			content=recipes, content_rowid=rowid)`,
		`CREATE TRIGGER recipes_ai AFTER INSERT ON recipes BEGIN
			INSERT INTO recipes_fts(rowid, title, ingredients, instructions, remarks)
			VALUES (new.rowid, new.title, new.ingredients, new.instructions, new.remarks);
		END`,
		`CREATE TRIGGER recipes_ad AFTER DELETE ON recipes BEGIN
			INSERT INTO recipes_fts(recipes_fts, rowid, title, ingredients, instructions, remarks)
			VALUES ('delete', old.rowid, old.title, old.ingredients, old.instructions, old.remarks);
		END`,
		`CREATE TRIGGER recipes_au AFTER UPDATE ON recipes BEGIN
			INSERT INTO recipes_fts(recipes_fts, rowid, title, ingredients, instructions, remarks)
			VALUES ('delete', old.rowid, old.title, old.ingredients, old.instructions, old.remarks);
			INSERT INTO recipes_fts(rowid, title, ingredients, instructions, remarks)
			VALUES (new.rowid, new.title, new.ingredients, new.instructions, new.remarks);
		END`,
	}
	if _, err := s.db.Exec(ftsStatements[0]); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			return nil
		}
		return fmt.Errorf("creating FTS table: %w", err)
	}
	for _, stmt := range ftsStatements[1:] {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS triggers: %w", err)
		}
	}
	s.fts = true
	return nil
}

// addColumn adds a column to a table created by an older schema.
func (s *Store) addColumn(table, column, decl string) error {
	var n int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n); err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.Exec(`ALTER TABLE ` + table + ` ADD COLUMN ` + column + ` ` + decl); err != nil {
		return fmt.Errorf("adding column %s.%s: %w", table, column, err)
	}
	return nil
}

// BuildSummary holds counts from an index build.
type BuildSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
	Failed  int
}

// Total returns the number of recipe files seen.
func (b BuildSummary) Total() int {
	return b.Indexed + b.Updated + b.Skipped + b.Failed
}

// Build indexes every recipe under contentRoot, resolving image references
// against imagesDir. Files whose modification time and resolved image
// match the stored row are skipped; rows for files that no longer exist
// are removed.
func (s *Store) Build(ctx context.Context, contentRoot, imagesDir string, w io.Writer) (BuildSummary, error) {
	var summary BuildSummary

	entries, err := catalog.LoadAll(contentRoot, catalog.ImageDir(imagesDir), w)
	if err != nil {
		return summary, fmt.Errorf("loading content tree: %w", err)
	}

	stored, err := s.storedState(ctx)
	if err != nil {
		return summary, err
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := e.ID()
		seen[id] = true
		modTime := e.ModTime.UTC().Format(time.RFC3339Nano)

		prev, exists := stored[id]
		if exists && prev == (rowState{modTime: modTime, image: e.Image, imageAbs: e.ImageAbs}) {
			summary.Skipped++
			continue
		}

		if err := s.upsert(ctx, e, modTime); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		if exists {
			fmt.Fprintf(w, "updated  %s\n", id)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s\n", id)
			summary.Indexed++
		}
	}

	for id := range stored {
		if seen[id] {
			continue
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
			return summary, fmt.Errorf("removing %s: %w", id, err)
		}
		fmt.Fprintf(w, "removed  %s\n", id)
		summary.Removed++
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed, summary.Failed)
	return summary, nil
}

// rowState is what decides whether a stored row is current. The image
// fields are included because adding an image file changes the resolved
// path without touching the recipe file.
type rowState struct {
	modTime  string
	image    string
	imageAbs string
}

func (s *Store) storedState(ctx context.Context) (map[string]rowState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, file_mod_time, image, image_abs FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("reading index state: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]rowState)
	for rows.Next() {
		var id string
		var modTime, image, imageAbs sql.NullString
		if err := rows.Scan(&id, &modTime, &image, &imageAbs); err != nil {
			return nil, fmt.Errorf("scanning index state: %w", err)
		}
		stored[id] = rowState{modTime: modTime.String, image: image.String, imageAbs: imageAbs.String}
	}
	return stored, rows.Err()
}

func (s *Store) upsert(ctx context.Context, e catalog.Entry, modTime string) error {
	ingredients, _ := json.Marshal(e.Ingredients)
	instructions, _ := json.Marshal(e.Instructions)
	tags, _ := json.Marshal(e.Tags)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (id, name, category, title, requires, ingredients, instructions,
			remarks, yield, source, image, image_abs, tags, permalink, path, file_mod_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, category=excluded.category, title=excluded.title,
			requires=excluded.requires, ingredients=excluded.ingredients,
			instructions=excluded.instructions, remarks=excluded.remarks,
			yield=excluded.yield, source=excluded.source, image=excluded.image, image_abs=excluded.image_abs,
			tags=excluded.tags, permalink=excluded.permalink, path=excluded.path,
			file_mod_time=excluded.file_mod_time`,
		e.ID(), e.Name, e.Category, e.Title, e.Requires, string(ingredients), string(instructions),
		e.Remarks, e.Yield, e.Source, e.Image, e.ImageAbs, string(tags), e.Permalink, e.Path, modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting recipe: %w", err)
	}
	return nil
}
