// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads every recipe in the content tree for indexing and
// publishing. Unlike the strict loader in package recipes it tolerates
// hand-edited files: alternate key names, list fields stored as strings,
// numbered steps, and yield or source notes buried in the remarks.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/cookbook/internal/recipes"
	"github.com/pdiddy/cookbook/internal/slug"
	"github.com/pdiddy/cookbook/pkg/types"
)

// Entry is a normalized recipe plus the file facts needed for indexing.
type Entry struct {
	types.Recipe `yaml:",inline"`

	// Name is the filename stem (e.g. "Moms_Apple_Pie").
	Name string `json:"name" yaml:"name"`

	// Path is the JSON file location.
	Path string `json:"path" yaml:"path"`

	// SlugCategory and SlugFilename are the URL segments for the category
	// and the recipe. An explicit "slug" key overrides the filename.
	SlugCategory string `json:"slug_category" yaml:"slug_category"`
	SlugFilename string `json:"slug_filename" yaml:"slug_filename"`

	// ImageAbs holds an absolute image URL, used as-is. Recipe.Image then
	// stays empty; otherwise Recipe.Image is a site path under /images/.
	ImageAbs string `json:"image_abs,omitempty" yaml:"image_abs,omitempty"`

	Tags      []string  `json:"tags" yaml:"tags"`
	Permalink string    `json:"permalink" yaml:"permalink"`
	ModTime   time.Time `json:"-" yaml:"-"`
}

// ID identifies an entry across the tree: "<category>/<name>".
func (e Entry) ID() string {
	return e.Category + "/" + e.Name
}

var (
	titleKeys        = []string{"title", "Title", "name", "recipeTitle"}
	sourceKeys       = []string{"source", "Source", "from", "author", "Author", "credit", "Credit"}
	yieldKeys        = []string{"yield", "Yield", "servings", "Servings", "Makes", "makes", "Qty", "qty", "quantity"}
	remarksKeys      = []string{"remarks", "Remarks", "notes", "Notes", "note", "Note", "description", "Description"}
	requiresKeys     = []string{"requires", "Requires"}
	ingredientsKeys  = []string{"ingredients", "Ingredients"}
	instructionsKeys = []string{"instructions", "Instructions", "steps", "Steps"}
	tagsKeys         = []string{"tags", "Tags", "tag", "Tag"}
	imageKeys        = []string{"image", "Image", "photo", "Photo", "picture", "img", "image_url", "imageUrl", "images"}
	slugKeys         = []string{"slug", "slugFilename"}
)

// LoadAll reads every JSON file in every category under root. Directories
// starting with "." or "_" are not categories. Files that fail to parse are
// reported on w and skipped. Entries are sorted by category, then title.
// Image references are resolved against images.
func LoadAll(root string, images ImageDir, w io.Writer) ([]Entry, error) {
	categories, err := recipes.ListCategories(root)
	if err != nil {
		return nil, err
	}

	var (
		entries     []Entry
		parseErrors int
	)
	for _, category := range categories {
		if strings.HasPrefix(category, ".") || strings.HasPrefix(category, "_") {
			continue
		}
		names, err := recipes.ListRecipes(root, category)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			path := recipes.Path(root, category, name)
			e, err := LoadFile(path, category, images)
			if err != nil {
				parseErrors++
				fmt.Fprintf(w, "warning: skipping %s: %v\n", path, err)
				continue
			}
			entries = append(entries, e)
		}
	}

	if parseErrors > 0 {
		fmt.Fprintf(w, "warning: %d recipe file(s) could not be parsed\n", parseErrors)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
	})
	return entries, nil
}

// LoadFile reads and normalizes one recipe file.
func LoadFile(path, category string, images ImageDir) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Entry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	e := Normalize(raw, category, slug.Stem(path), images)
	e.Path = path
	e.ModTime = info.ModTime()
	return e, nil
}

// Normalize maps a raw JSON object onto an Entry. The category always comes
// from the containing directory, never from the file. An image reference
// without an extension is looked up in images; a recipe with no reference
// gets the first image whose name matches its slug, title, or filename.
func Normalize(raw map[string]any, category, name string, images ImageDir) Entry {
	category = strings.TrimSpace(category)

	title := pickString(raw, titleKeys)
	if title == "" {
		if meta, ok := raw["meta"].(map[string]any); ok {
			title = pickString(meta, []string{"title"})
		}
	}
	if title == "" {
		title = name
	}

	yield := pickString(raw, yieldKeys)
	source := pickString(raw, sourceKeys)
	remarks := pickString(raw, remarksKeys)
	if remarks != "" {
		var foundYield, foundSource string
		remarks, foundYield, foundSource = splitRemarks(remarks, title)
		if yield == "" {
			yield = foundYield
		}
		if source == "" {
			source = foundSource
		}
	}

	slugCategory := slug.URLSegment(category)
	slugFilename := slug.URLSegment(firstNonEmpty(pickString(raw, slugKeys), name, title))
	image, imageAbs := images.resolve(pickString(raw, imageKeys), slugCategory,
		[]string{slugFilename, slug.URLSegment(title), name})

	e := Entry{
		Recipe: types.Recipe{
			Title:        title,
			Requires:     pickString(raw, requiresKeys),
			Ingredients:  toList(pick(raw, ingredientsKeys)),
			Instructions: toSteps(pick(raw, instructionsKeys)),
			Remarks:      remarks,
			Yield:        yield,
			Source:       source,
			Category:     category,
			Image:        image,
		},
		Name:         name,
		SlugCategory: slugCategory,
		SlugFilename: slugFilename,
		ImageAbs:     imageAbs,
		Tags:         toList(pick(raw, tagsKeys)),
		Permalink:    slug.Permalink(category, title),
	}
	return e
}

// Tags returns the distinct tags across entries, compared case-insensitively
// with the first-seen spelling kept, sorted.
func Tags(entries []Entry) []string {
	seen := make(map[string]string)
	for _, e := range entries {
		for _, tag := range e.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if _, ok := seen[key]; !ok {
				seen[key] = tag
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// pick returns the first value under keys that is present and not blank.
func pick(raw map[string]any, keys []string) any {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		if list, isList := v.([]any); isList && len(list) == 0 {
			continue
		}
		return v
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pickString(raw map[string]any, keys []string) string {
	return strings.TrimSpace(toString(pick(raw, keys)))
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(toString(item)); s != "" {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

var listSep = regexp.MustCompile(`\r?\n|,`)

// toList accepts an array or a newline/comma separated string.
func toList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(toString(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range listSep.Split(t, -1) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

var stepMarker = regexp.MustCompile(`^\s*(?:\d+[.)\-:]+|[\x{2022}\x{2023}\x{25E6}\-])\s*`)

// toSteps is toList with leading step numbers and bullets removed.
func toSteps(v any) []string {
	out := []string{}
	for _, s := range toList(v) {
		if s = strings.TrimSpace(stepMarker.ReplaceAllString(s, "")); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	noteMarker   = regexp.MustCompile(`(?i)\b(yield|source)\s*:\s*`)
	trailingDots = regexp.MustCompile(`\s*\.*\s*$`)
	spaces       = regexp.MustCompile(`\s{2,}`)
)

// splitRemarks pulls "Yield: ..." and "Source: ..." notes out of remarks.
// Each note runs to the next note or the end of the text. A trailing copy of
// the title is dropped from what remains.
func splitRemarks(remarks, title string) (rest, yield, source string) {
	marks := noteMarker.FindAllStringSubmatchIndex(remarks, -1)
	if len(marks) == 0 {
		return trimTitle(strings.TrimSpace(remarks), title), "", ""
	}

	var b strings.Builder
	b.WriteString(remarks[:marks[0][0]])
	for i, m := range marks {
		end := len(remarks)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		value := trailingDots.ReplaceAllString(strings.TrimSpace(remarks[m[1]:end]), "")
		switch strings.ToLower(remarks[m[2]:m[3]]) {
		case "yield":
			if yield == "" {
				yield = value
			}
		case "source":
			if source == "" {
				source = value
			}
		}
	}

	rest = strings.TrimSpace(spaces.ReplaceAllString(b.String(), " "))
	return trimTitle(rest, title), yield, source
}

// trimTitle drops a trailing case-insensitive copy of title from s. The cut
// is made on a rune boundary of s, since folded forms may differ in byte
// length from the title.
func trimTitle(s, title string) string {
	n := utf8.RuneCountInString(title)
	if n == 0 || utf8.RuneCountInString(s) < n {
		return s
	}
	cut := len(s)
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:cut])
		cut -= size
	}
	if strings.EqualFold(s[cut:], title) {
		return strings.TrimSpace(s[:cut])
	}
	return s
}
