// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// imagesPrefix is the site path the image directory is published under.
const imagesPrefix = "/images/"

// imageExts are the extensions tried, in order, when a reference names no
// extension. Mixed-case extensions are not matched.
var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".JPG", ".PNG", ".JPEG", ".WEBP", ".GIF"}

var (
	absoluteURL = regexp.MustCompile(`(?i)^(?:https?:)?//`)
	hasExt      = regexp.MustCompile(`\.[A-Za-z0-9]{2,5}$`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]`)
)

// ImageDir is the directory of recipe images on disk, typically the
// editor's upload directory. Images may sit directly in it or in a
// subdirectory named by the category's URL segment. The zero value
// disables lookups.
type ImageDir string

// resolve turns an image reference from a recipe file into a site path or
// an absolute URL. With no reference, the candidate bases are tried in
// order against the files on disk.
func (d ImageDir) resolve(ref, slugCategory string, bases []string) (path, abs string) {
	switch {
	case ref == "":
	case absoluteURL.MatchString(ref):
		return "", ref
	case strings.HasPrefix(ref, "/"):
		return ref, ""
	case hasExt.MatchString(ref):
		return imagesPrefix + ref, ""
	default:
		if found := d.find(slugCategory, ref); found != "" {
			return found, ""
		}
		return imagesPrefix + ref, ""
	}

	for _, base := range bases {
		if base == "" {
			continue
		}
		if found := d.find(slugCategory, base); found != "" {
			return found, ""
		}
	}
	return "", ""
}

func (d ImageDir) find(slugCategory, base string) string {
	if found := d.exact(slugCategory, base); found != "" {
		return found
	}
	return d.fuzzy(slugCategory, base)
}

// exact looks for <dir>/<base><ext>, then <dir>/<slugCategory>/<base><ext>,
// for each extension in turn.
func (d ImageDir) exact(slugCategory, base string) string {
	if d == "" {
		return ""
	}
	for _, ext := range imageExts {
		if isFile(filepath.Join(string(d), base+ext)) {
			return imagesPrefix + base + ext
		}
		if slugCategory != "" && isFile(filepath.Join(string(d), slugCategory, base+ext)) {
			return imagesPrefix + slugCategory + "/" + base + ext
		}
	}
	return ""
}

// fuzzy matches base against image stems ignoring case and everything but
// ASCII letters and digits, in the image directory and then the category
// subdirectory. Directory entries are compared in name order.
func (d ImageDir) fuzzy(slugCategory, base string) string {
	if d == "" {
		return ""
	}
	wanted := fold(base)
	if wanted == "" {
		return ""
	}

	dirs := []string{""}
	if slugCategory != "" {
		dirs = append(dirs, slugCategory)
	}
	for _, sub := range dirs {
		entries, err := os.ReadDir(filepath.Join(string(d), sub))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := filepath.Ext(name)
			if !slices.Contains(imageExts, ext) || fold(strings.TrimSuffix(name, ext)) != wanted {
				continue
			}
			if sub == "" {
				return imagesPrefix + name
			}
			return imagesPrefix + sub + "/" + name
		}
	}
	return ""
}

func fold(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
