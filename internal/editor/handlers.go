// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/cookbook/internal/recipes"
	"github.com/pdiddy/cookbook/internal/slug"
	"github.com/pdiddy/cookbook/pkg/types"
)

// handleForm renders the selector and the form. The category defaults to the
// first one; a recipe that does not exist renders an empty form.
func (s *Server) handleForm(c *gin.Context) {
	categories, err := recipes.ListCategories(s.cfg.Root)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	data := formData{Categories: categories}
	if len(categories) == 0 {
		c.HTML(http.StatusOK, formName, data)
		return
	}

	category := c.Query("category")
	if category == "" {
		category = categories[0]
	}
	if !slices.Contains(categories, category) {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", category))
		return
	}
	data.SelectedCategory = category

	data.Recipes, err = recipes.ListRecipes(s.cfg.Root, category)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	r := types.NewRecipe()
	if name := c.Query("recipe"); name != "" {
		if !safeName(name) {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid recipe name %q", name))
			return
		}
		data.SelectedRecipe = name
		loaded, err := recipes.LoadNamed(s.cfg.Root, category, name)
		if err != nil {
			s.log.FileError(recipes.Path(s.cfg.Root, category, name), err)
		} else {
			r = loaded
		}
	}

	data.Title = r.Title
	data.Requires = r.Requires
	data.Ingredients = r.Ingredients
	data.Instructions = r.Instructions
	data.Remarks = r.Remarks
	data.Yield = r.Yield
	data.Source = r.Source
	data.Image = r.Image
	c.HTML(http.StatusOK, formName, data)
}

// handleSubmit writes the posted record to <root>/<category>/<title>.json,
// stores an uploaded image, removes the record's previous file when the
// title changed, and redirects back to the form.
func (s *Server) handleSubmit(c *gin.Context) {
	category := c.PostForm("category")
	title := strings.TrimSpace(c.PostForm("title"))
	if category == "" || title == "" {
		s.fail(c, http.StatusBadRequest, errors.New("category and title are required"))
		return
	}

	categories, err := recipes.ListCategories(s.cfg.Root)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if !slices.Contains(categories, category) {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", category))
		return
	}

	name := slug.EditorName(title)
	if !safeName(name) {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("title %q cannot be used as a file name", title))
		return
	}

	r := &types.Recipe{
		Title:        title,
		Requires:     c.PostForm("requires"),
		Ingredients:  splitLines(c.PostForm("ingredients")),
		Instructions: splitLines(c.PostForm("instructions")),
		Remarks:      c.PostForm("remarks"),
		Yield:        c.PostForm("yield"),
		Source:       c.PostForm("source"),
		Category:     category,
	}
	if current := c.PostForm("current_image"); safeName(current) {
		r.Image = current
	}

	image, err := s.storeImage(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if image != "" {
		r.Image = image
	}

	dst := recipes.Path(s.cfg.Root, category, name)
	if err := recipes.Save(dst, r); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.log.RecipeSaved(dst, category)

	if original := c.PostForm("original"); safeName(original) {
		recipes.CleanupStale(recipes.Path(s.cfg.Root, category, original), dst, s.log)
	}

	q := url.Values{"category": {category}, "recipe": {name}}
	c.Redirect(http.StatusFound, "/?"+q.Encode())
}

// storeImage saves the uploaded image under its original base name in the
// upload directory and returns that name. An existing file with the same
// name is overwritten. It returns "" when no file was uploaded.
func (s *Server) storeImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading image upload: %w", err)
	}

	name := path.Base(strings.ReplaceAll(fh.Filename, `\`, "/"))
	if !safeName(name) {
		return "", fmt.Errorf("invalid image file name %q", fh.Filename)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	dst := filepath.Join(s.cfg.UploadDir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	s.log.ImageStored(dst, fh.Size)
	return name, nil
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error("editor request failed", "request_id", c.GetString(requestIDKey), "error", err)
	} else {
		s.log.Warn("rejected request", "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.String(status, err.Error())
}

// lineBreak matches every line boundary a textarea value may carry: CRLF,
// lone CR or LF, and the other vertical separators.
var lineBreak = regexp.MustCompile(`\r\n|[\n\r\v\f\x1c\x1d\x1e\x{85}\x{2028}\x{2029}]`)

// splitLines splits a textarea value into trimmed, non-blank lines.
func splitLines(text string) []string {
	out := []string{}
	for _, line := range lineBreak.Split(text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// safeName reports whether name is usable as a single path element.
func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}
