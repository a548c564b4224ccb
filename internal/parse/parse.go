// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse segments the paragraph lines of a recipe document into a
// Recipe record using a fixed vocabulary of section headers.
//
// A line is a header when, lowercased and trimmed with one trailing colon
// removed, it equals one of: requires, ingredients, instructions, remarks,
// yield, source. Headers are matched regardless of position, so a title line
// reading "Source" starts the source section.
package parse

import (
	"strings"

	"github.com/pdiddy/cookbook/pkg/types"
)

// Section identifies the field that content lines are routed to.
type Section int

const (
	// SectionTitle is the initial state: no header seen yet.
	SectionTitle Section = iota
	SectionRequires
	SectionIngredients
	SectionInstructions
	SectionRemarks
	SectionYield
	SectionSource
)

var sectionNames = [...]string{
	SectionTitle:        "title",
	SectionRequires:     "requires",
	SectionIngredients:  "ingredients",
	SectionInstructions: "instructions",
	SectionRemarks:      "remarks",
	SectionYield:        "yield",
	SectionSource:       "source",
}

// String returns the keyword for the section ("title" for SectionTitle).
func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return "unknown"
	}
	return sectionNames[s]
}

// headers maps the six header keywords to their sections.
var headers = map[string]Section{
	"requires":     SectionRequires,
	"ingredients":  SectionIngredients,
	"instructions": SectionInstructions,
	"remarks":      SectionRemarks,
	"yield":        SectionYield,
	"source":       SectionSource,
}

// NormalizeHeader lowercases and trims line, then removes at most one
// trailing colon and trims again.
func NormalizeHeader(line string) string {
	norm := strings.TrimSpace(strings.ToLower(line))
	norm = strings.TrimSuffix(norm, ":")
	return strings.TrimSpace(norm)
}

// HeaderSection reports the section selected by line when it is a header.
func HeaderSection(line string) (Section, bool) {
	s, ok := headers[NormalizeHeader(line)]
	return s, ok
}

// Parse builds a Recipe from lines, which must already be trimmed with blank
// lines removed. Lines before the first header form the title; when there are
// none, fallbackTitle is used verbatim. Category is left empty.
//
// Parse returns false when lines is empty. It never fails otherwise.
func Parse(lines []string, fallbackTitle string) (*types.Recipe, bool) {
	if len(lines) == 0 {
		return nil, false
	}

	r := types.NewRecipe()
	current := SectionTitle

	var title []string
	var requires, remarks, yield, source strings.Builder

	for _, line := range lines {
		if s, ok := HeaderSection(line); ok {
			current = s
			continue
		}

		switch current {
		case SectionTitle:
			title = append(title, line)
		case SectionIngredients:
			r.Ingredients = append(r.Ingredients, line)
		case SectionInstructions:
			r.Instructions = append(r.Instructions, line)
		case SectionRequires:
			requires.WriteString(line + " ")
		case SectionRemarks:
			remarks.WriteString(line + " ")
		case SectionYield:
			yield.WriteString(line + " ")
		case SectionSource:
			source.WriteString(line + " ")
		}
	}

	r.Title = strings.TrimSpace(strings.Join(title, " "))
	if r.Title == "" {
		r.Title = fallbackTitle
	}
	r.Requires = strings.TrimSpace(requires.String())
	r.Remarks = strings.TrimSpace(remarks.String())
	r.Yield = strings.TrimSpace(yield.String())
	r.Source = strings.TrimSpace(source.String())

	return r, true
}
