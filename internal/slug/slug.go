// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives on-disk recipe filenames and published URL paths from
// recipe titles.
//
// The console entry tool and the web editor name files differently and
// existing content trees depend on both rules, so each has its own function.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"

	goslug "github.com/goliatone/go-slug"
)

const jsonExt = ".json"

// punct matches any rune that is not a letter, digit, underscore,
// whitespace, or hyphen.
var punct = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// CLIName strips punctuation from title, collapses whitespace runs to single
// underscores, and lowercases the result.
func CLIName(title string) string {
	cleaned := punct.ReplaceAllString(title, "")
	return strings.ToLower(strings.Join(strings.Fields(cleaned), "_"))
}

// CLIFilename returns the JSON filename the console entry tool writes for
// title, e.g. "Mom's Apple Pie!" becomes "moms_apple_pie.json".
func CLIFilename(title string) string {
	return CLIName(title) + jsonExt
}

// EditorName replaces every space in title with an underscore and leaves
// everything else, including case and punctuation, untouched.
func EditorName(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}

// EditorFilename returns the JSON filename the web editor writes for title.
func EditorFilename(title string) string {
	return EditorName(title) + jsonExt
}

// Stem returns the filename without directory and extension. Only the
// host's path separator splits directories.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// URLSegment normalizes value into a lowercase URL path segment. When the
// normalizer rejects the value, the CLI naming rule is used instead.
func URLSegment(value string) string {
	normalized, err := goslug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.ReplaceAll(CLIName(value), "_", "-")
	}
	return normalized
}

// Permalink returns the published site path for a recipe:
// /recipes/<category>/<title>/. Empty segments yield an empty string.
func Permalink(category, title string) string {
	cat := URLSegment(category)
	t := URLSegment(title)
	if cat == "" || t == "" {
		return ""
	}
	return "/recipes/" + cat + "/" + t + "/"
}
