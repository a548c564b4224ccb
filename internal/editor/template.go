// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"html/template"
	"strings"
)

const formName = "form.html"

func newFormTemplate() *template.Template {
	return template.Must(template.New(formName).Funcs(template.FuncMap{
		"lines": func(items []string) string { return strings.Join(items, "\n") },
	}).Parse(formHTML))
}

// formData is the view model for formHTML.
type formData struct {
	Categories       []string
	SelectedCategory string
	SelectedRecipe   string
	Recipes          []string
	Title            string
	Requires         string
	Ingredients      []string
	Instructions     []string
	Remarks          string
	Yield            string
	Source           string
	Image            string
}

const formHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Recipe Manager</title>
</head>
<body>
<h1>{{if .SelectedRecipe}}Edit{{else}}Add{{end}} Recipe</h1>
{{if not .Categories}}
<p>No categories found. Create a directory under the content root first.</p>
{{else}}
<form method="GET" action="/">
  <label>Select Category:</label>
  <select name="category" onchange="this.form.submit()">
    {{range .Categories}}<option value="{{.}}"{{if eq . $.SelectedCategory}} selected{{end}}>{{.}}</option>
    {{end}}
  </select>

  <label>Select Recipe:</label>
  <select name="recipe" onchange="this.form.submit()">
    <option value="">-- New Recipe --</option>
    {{range .Recipes}}<option value="{{.}}"{{if eq . $.SelectedRecipe}} selected{{end}}>{{.}}</option>
    {{end}}
  </select>
</form>

<form method="POST" action="/submit" enctype="multipart/form-data">
  <input type="hidden" name="category" value="{{.SelectedCategory}}">
  <input type="hidden" name="original" value="{{.SelectedRecipe}}">
  <input type="hidden" name="current_image" value="{{.Image}}">

  <label>Title:</label><br>
  <input name="title" value="{{.Title}}" required><br><br>

  <label>Requires:</label><br>
  <input name="requires" value="{{.Requires}}"><br><br>

  <label>Ingredients:</label><br>
  <textarea name="ingredients" rows="5" cols="60">{{lines .Ingredients}}</textarea><br><br>

  <label>Instructions:</label><br>
  <textarea name="instructions" rows="5" cols="60">{{lines .Instructions}}</textarea><br><br>

  <label>Remarks:</label><br>
  <textarea name="remarks" rows="3" cols="60">{{.Remarks}}</textarea><br><br>

  <label>Yield:</label><br>
  <input name="yield" value="{{.Yield}}"><br><br>

  <label>Source:</label><br>
  <input name="source" value="{{.Source}}"><br><br>

  <label>Upload Image:</label>{{if .Image}} (current: {{.Image}}){{end}}<br>
  <input type="file" name="image"><br><br>

  <button type="submit">Save Recipe</button>
</form>
{{end}}
</body>
</html>
`
