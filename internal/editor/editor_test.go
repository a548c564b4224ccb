// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cookbook/internal/logger"
	"github.com/pdiddy/cookbook/internal/recipes"
	"github.com/pdiddy/cookbook/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- test helpers ---

func testServer(t *testing.T, categories ...string) (*Server, types.EditorConfig) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := types.EditorConfig{
		ContentConfig: types.ContentConfig{Root: filepath.Join(tmpDir, "content")},
		UploadDir:     filepath.Join(tmpDir, "src", "images"),
	}
	for _, c := range categories {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.Root, c), 0o755))
	}
	return New(cfg, logger.Discard()), cfg
}

type upload struct {
	name    string
	content string
}

func postForm(t *testing.T, s *Server, fields map[string]string, img *upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if img != nil {
		fw, err := mw.CreateFormFile("image", img.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(img.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// --- GET / ---

func TestFormDefaultsToFirstCategory(t *testing.T) {
	s, cfg := testServer(t, "desserts", "breakfast")
	require.NoError(t, recipes.Save(recipes.Path(cfg.Root, "breakfast", "Pancakes"), &types.Recipe{Title: "Pancakes"}))

	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Add Recipe")
	assert.Contains(t, body, `<option value="breakfast" selected>`)
	assert.Contains(t, body, `<option value="Pancakes"`)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestFormPrefillsSelectedRecipe(t *testing.T) {
	s, cfg := testServer(t, "baking")
	require.NoError(t, recipes.Save(recipes.Path(cfg.Root, "baking", "Banana_Bread"), &types.Recipe{
		Title:        "Banana Bread",
		Ingredients:  []string{"3 bananas", "2 cups flour"},
		Instructions: []string{"Mash.", "Bake."},
		Yield:        "1 loaf",
		Image:        "bread.jpg",
	}))

	rec := get(s, "/?category=baking&recipe=Banana_Bread")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Edit Recipe")
	assert.Contains(t, body, `value="Banana Bread"`)
	assert.Contains(t, body, "3 bananas\n2 cups flour")
	assert.Contains(t, body, `value="1 loaf"`)
	assert.Contains(t, body, `name="original" value="Banana_Bread"`)
	assert.Contains(t, body, `name="current_image" value="bread.jpg"`)
}

func TestFormMissingRecipeRendersEmpty(t *testing.T) {
	s, _ := testServer(t, "baking")
	rec := get(s, "/?category=baking&recipe=Nope")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="title" value=""`)
}

func TestFormRejectsBadInput(t *testing.T) {
	s, _ := testServer(t, "baking")
	assert.Equal(t, http.StatusBadRequest, get(s, "/?category=nope").Code)
	assert.Equal(t, http.StatusBadRequest, get(s, "/?category=baking&recipe="+url.QueryEscape("../x")).Code)
}

func TestFormNoCategories(t *testing.T) {
	s, cfg := testServer(t)
	require.NoError(t, os.MkdirAll(cfg.Root, 0o755))
	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No categories found")
}

// --- POST /submit ---

func TestSubmitWritesRecipeAndRedirects(t *testing.T) {
	s, cfg := testServer(t, "baking")

	rec := postForm(t, s, map[string]string{
		"category":     "baking",
		"title":        "Mom's Apple Pie",
		"requires":     "Pie crust",
		"ingredients":  "6 apples\r\n1 cup sugar\r\n",
		"instructions": "Slice.\nBake.",
		"yield":        "8 slices",
	}, nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?category=baking&recipe=Mom%27s_Apple_Pie", rec.Header().Get("Location"))

	r, err := recipes.Load(filepath.Join(cfg.Root, "baking", "Mom's_Apple_Pie.json"))
	require.NoError(t, err)
	assert.Equal(t, "Mom's Apple Pie", r.Title)
	assert.Equal(t, "baking", r.Category)
	assert.Equal(t, "Pie crust", r.Requires)
	assert.Equal(t, []string{"6 apples", "1 cup sugar"}, r.Ingredients)
	assert.Equal(t, []string{"Slice.", "Bake."}, r.Instructions)
	assert.Equal(t, "8 slices", r.Yield)
	assert.Empty(t, r.Image)
}

func TestSubmitStoresImage(t *testing.T) {
	s, cfg := testServer(t, "baking")

	rec := postForm(t, s, map[string]string{"category": "baking", "title": "Scones"},
		&upload{name: `C:\photos\scones.jpg`, content: "jpeg"})
	require.Equal(t, http.StatusFound, rec.Code)

	data, err := os.ReadFile(filepath.Join(cfg.UploadDir, "scones.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	r, err := recipes.Load(filepath.Join(cfg.Root, "baking", "Scones.json"))
	require.NoError(t, err)
	assert.Equal(t, "scones.jpg", r.Image)
}

func TestSubmitImageLastWriteWins(t *testing.T) {
	s, cfg := testServer(t, "baking")

	postForm(t, s, map[string]string{"category": "baking", "title": "A"}, &upload{name: "photo.jpg", content: "first"})
	postForm(t, s, map[string]string{"category": "baking", "title": "B"}, &upload{name: "photo.jpg", content: "second"})

	data, err := os.ReadFile(filepath.Join(cfg.UploadDir, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSubmitKeepsCurrentImage(t *testing.T) {
	s, cfg := testServer(t, "baking")

	rec := postForm(t, s, map[string]string{
		"category":      "baking",
		"title":         "Scones",
		"current_image": "scones.jpg",
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)

	r, err := recipes.Load(filepath.Join(cfg.Root, "baking", "Scones.json"))
	require.NoError(t, err)
	assert.Equal(t, "scones.jpg", r.Image)
}

func TestSubmitRenameRemovesOriginal(t *testing.T) {
	s, cfg := testServer(t, "baking")
	old := recipes.Path(cfg.Root, "baking", "Banana_Bred")
	require.NoError(t, recipes.Save(old, &types.Recipe{Title: "Banana Bred"}))

	rec := postForm(t, s, map[string]string{
		"category": "baking",
		"title":    "Banana Bread",
		"original": "Banana_Bred",
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)

	assert.NoFileExists(t, old)
	assert.FileExists(t, recipes.Path(cfg.Root, "baking", "Banana_Bread"))
}

func TestSubmitSameNameKeepsFile(t *testing.T) {
	s, cfg := testServer(t, "baking")
	path := recipes.Path(cfg.Root, "baking", "Scones")
	require.NoError(t, recipes.Save(path, &types.Recipe{Title: "Scones", Yield: "8"}))

	rec := postForm(t, s, map[string]string{
		"category": "baking",
		"title":    "Scones",
		"original": "Scones",
		"yield":    "12",
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)

	r, err := recipes.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "12", r.Yield)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	s, cfg := testServer(t, "baking")

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"missing title", map[string]string{"category": "baking", "title": "  "}},
		{"missing category", map[string]string{"title": "Toast"}},
		{"unknown category", map[string]string{"category": "nope", "title": "Toast"}},
		{"traversal category", map[string]string{"category": "../baking", "title": "Toast"}},
		{"slash in title", map[string]string{"category": "baking", "title": "Toast/Jam"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, s, tt.fields, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	names, err := recipes.ListRecipes(cfg.Root, "baking")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"crlf and blank lines", " a \r\n\r\nb\n", []string{"a", "b"}},
		{"lone carriage return", "a\rb\r\nc", []string{"a", "b", "c"}},
		{"unicode separators", "a\u2028b\u2029c\fd", []string{"a", "b", "c", "d"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.in))
		})
	}
}

func TestSubmitLoneCarriageReturn(t *testing.T) {
	s, cfg := testServer(t, "baking")

	rec := postForm(t, s, map[string]string{
		"category":     "baking",
		"title":        "Toast",
		"ingredients":  "bread\rbutter",
		"instructions": "Toast.\rButter.",
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)

	r, err := recipes.Load(filepath.Join(cfg.Root, "baking", "Toast.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "butter"}, r.Ingredients)
	assert.Equal(t, []string{"Toast.", "Butter."}, r.Instructions)
}

func TestNewDefaultsAddr(t *testing.T) {
	s, _ := testServer(t)
	assert.Equal(t, DefaultAddr, s.Addr())
	assert.True(t, strings.HasPrefix(s.Addr(), "127.0.0.1:"))
}
