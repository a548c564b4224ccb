// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for index searches.
type QueryOptions struct {
	// Query is a full-text search over title, ingredients, instructions,
	// and remarks.
	Query string

	// Category restricts results to one category directory.
	Category string

	// Tag restricts results to recipes carrying the tag (exact match).
	Tag string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.Tag == ""
}

// Result is one indexed recipe.
type Result struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	Title        string   `json:"title" yaml:"title"`
	Requires     string   `json:"requires,omitempty" yaml:"requires,omitempty"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions []string `json:"instructions" yaml:"instructions"`
	Remarks      string   `json:"remarks,omitempty" yaml:"remarks,omitempty"`
	Yield        string   `json:"yield,omitempty" yaml:"yield,omitempty"`
	Source       string   `json:"source,omitempty" yaml:"source,omitempty"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAbs     string   `json:"image_abs,omitempty" yaml:"image_abs,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Permalink    string   `json:"permalink,omitempty" yaml:"permalink,omitempty"`
	Path         string   `json:"path" yaml:"path"`
}

const resultColumns = `r.id, r.name, r.category, r.title, r.requires, r.ingredients,
	r.instructions, r.remarks, r.yield, r.source, r.image, r.image_abs, r.tags, r.permalink, r.path`

// Search queries the index. Full-text results are ranked by relevance;
// filter-only results are ordered by category then title.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != "" && s.fts
	)

	if useFTS {
		qb.WriteString(`SELECT ` + resultColumns + `
			FROM recipes_fts
			JOIN recipes r ON r.rowid = recipes_fts.rowid
			WHERE recipes_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(`SELECT ` + resultColumns + ` FROM recipes r WHERE 1=1`)
		if opts.Query != "" {
			for _, term := range strings.Fields(opts.Query) {
				qb.WriteString(` AND (r.title LIKE ? OR r.ingredients LIKE ? OR r.instructions LIKE ? OR r.remarks LIKE ?)`)
				like := "%" + term + "%"
				args = append(args, like, like, like, like)
			}
		}
	}

	if opts.Category != "" {
		qb.WriteString(` AND r.category = ?`)
		args = append(args, opts.Category)
	}
	if opts.Tag != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(r.tags) WHERE value = ?)`)
		args = append(args, opts.Tag)
	}

	if useFTS {
		qb.WriteString(` ORDER BY recipes_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.category, lower(r.title)`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r                                   Result
			requires, remarks, yield, source    sql.NullString
			image, imageAbs, permalink, path    sql.NullString
			ingredientsJSON, instrJSON, tagJSON sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Title, &requires, &ingredientsJSON,
			&instrJSON, &remarks, &yield, &source, &image, &imageAbs, &tagJSON, &permalink, &path); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Requires = requires.String
		r.Remarks = remarks.String
		r.Yield = yield.String
		r.Source = source.String
		r.Image = image.String
		r.ImageAbs = imageAbs.String
		r.Permalink = permalink.String
		r.Path = path.String
		r.Ingredients = decodeList(ingredientsJSON)
		r.Instructions = decodeList(instrJSON)
		r.Tags = decodeList(tagJSON)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of indexed recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM recipes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting recipes: %w", err)
	}
	return n, nil
}

func decodeList(v sql.NullString) []string {
	out := []string{}
	if v.Valid && v.String != "" {
		_ = json.Unmarshal([]byte(v.String), &out)
	}
	return out
}
