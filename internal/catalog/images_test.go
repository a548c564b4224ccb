// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImages(t *testing.T, dir string, names ...string) ImageDir {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	}
	return ImageDir(dir)
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		raw       string
		wantImage string
		wantAbs   string
	}{
		{
			name:      "explicit extension",
			raw:       `{"title": "Scones", "image": "scones.jpg"}`,
			wantImage: "/images/scones.jpg",
		},
		{
			name:      "site path kept",
			raw:       `{"title": "Scones", "photo": "/img/scones.png"}`,
			wantImage: "/img/scones.png",
		},
		{
			name:    "absolute url",
			raw:     `{"title": "Scones", "image_url": "https://cdn.example.com/scones.jpg"}`,
			wantAbs: "https://cdn.example.com/scones.jpg",
		},
		{
			name:    "protocol relative url",
			raw:     `{"title": "Scones", "img": "//cdn.example.com/scones.jpg"}`,
			wantAbs: "//cdn.example.com/scones.jpg",
		},
		{
			name:    "images array takes first entry",
			raw:     `{"title": "Scones", "images": ["", "HTTP://cdn.example.com/a.jpg", "b.jpg"]}`,
			wantAbs: "HTTP://cdn.example.com/a.jpg",
		},
		{
			name:      "no extension exact match",
			files:     []string{"scones.gif", "scones.png"},
			raw:       `{"title": "Scones", "image": "scones"}`,
			wantImage: "/images/scones.png",
		},
		{
			name:      "no extension exact match in category",
			files:     []string{"baking/scones.webp"},
			raw:       `{"title": "Scones", "image": "scones"}`,
			wantImage: "/images/baking/scones.webp",
		},
		{
			name:      "no extension fuzzy match",
			files:     []string{"Mom's Scones!.JPG"},
			raw:       `{"title": "Scones", "image": "moms_scones"}`,
			wantImage: "/images/Mom's Scones!.JPG",
		},
		{
			name:      "mixed case extension ignored",
			files:     []string{"Scones.Jpg"},
			raw:       `{"title": "Scones", "image": "sco-nes"}`,
			wantImage: "/images/sco-nes",
		},
		{
			name:      "no extension falls back to images path",
			raw:       `{"title": "Scones", "image": "scones"}`,
			wantImage: "/images/scones",
		},
		{
			name:      "discovered from filename",
			files:     []string{"baking/scones.jpg"},
			raw:       `{"title": "Cream Tea Scones"}`,
			wantImage: "/images/baking/scones.jpg",
		},
		{
			name:      "discovered from explicit slug",
			files:     []string{"cream-tea.png", "scones.png"},
			raw:       `{"title": "Scones", "slug": "cream-tea"}`,
			wantImage: "/images/cream-tea.png",
		},
		{
			name:      "discovered fuzzily from title",
			files:     []string{"baking/Fruit_Scones.jpeg"},
			raw:       `{"title": "Fruit Scones"}`,
			wantImage: "/images/baking/Fruit_Scones.jpeg",
		},
		{
			name: "nothing to discover",
			raw:  `{"title": "Scones"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := writeImages(t, t.TempDir(), tt.files...)
			e := Normalize(rawJSON(t, tt.raw), "baking", "scones", images)
			assert.Equal(t, tt.wantImage, e.Image)
			assert.Equal(t, tt.wantAbs, e.ImageAbs)
		})
	}
}

func TestNormalizeImageWithoutDirectory(t *testing.T) {
	e := Normalize(rawJSON(t, `{"title": "Scones"}`), "baking", "scones", "")
	assert.Empty(t, e.Image)

	e = Normalize(rawJSON(t, `{"title": "Scones", "image": "scones"}`), "baking", "scones", "")
	assert.Equal(t, "/images/scones", e.Image)
}

func TestNormalizeSlugs(t *testing.T) {
	e := Normalize(rawJSON(t, `{"title": "Scones"}`), "baking", "scones", "")
	assert.Equal(t, "baking", e.SlugCategory)
	assert.Equal(t, "scones", e.SlugFilename)

	e = Normalize(rawJSON(t, `{"title": "Scones", "slugFilename": "tea-scones"}`), "baking", "scones", "")
	assert.Equal(t, "tea-scones", e.SlugFilename)
}

func TestLoadAllResolvesImages(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, root, "baking", "scones", `{"title": "Scones"}`)
	images := writeImages(t, t.TempDir(), "baking/scones.png")

	entries, err := LoadAll(root, images, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/images/baking/scones.png", entries[0].Image)
}
