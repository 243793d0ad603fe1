// api/web/templates.go
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	CafesPage   = "cafes.html"
	AddCafePage = "add_cafe.html"
)

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"yesno": func(b bool) string {
			if b {
				return "✔"
			}
			return "✘"
		},
	}).ParseFS(templateFS, "templates/*.html")
}
