// Package web embeds the server-rendered admin templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded admin templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
