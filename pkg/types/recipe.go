// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Recipe is the normalized record written to one JSON file per recipe under
// a category directory of the content tree.
type Recipe struct {
	// Title is the recipe name. Always non-empty for parsed records; the
	// converter falls back to the source filename stem.
	Title string `json:"title" yaml:"title"`

	// Requires lists prerequisites (other recipes, equipment) as free text.
	Requires string `json:"requires" yaml:"requires"`

	// Ingredients holds one ingredient per line, in document order.
	Ingredients []string `json:"ingredients" yaml:"ingredients"`

	// Instructions holds one step per line, in document order.
	Instructions []string `json:"instructions" yaml:"instructions"`

	Remarks string `json:"remarks" yaml:"remarks"`
	Yield   string `json:"yield" yaml:"yield"`
	Source  string `json:"source" yaml:"source"`

	// Category is the containing directory name. Set by the caller, never by
	// the document parser.
	Category string `json:"category" yaml:"category"`

	// Image is the uploaded image filename, set only by the web editor.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// NewRecipe returns a Recipe with empty (non-nil) list fields so that it
// serializes with [] rather than null.
func NewRecipe() *Recipe {
	return &Recipe{
		Ingredients:  []string{},
		Instructions: []string{},
	}
}
