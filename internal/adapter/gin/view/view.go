// Package view holds the HTML templates rendered by the Gin router.
package view

import (
	"embed"
	"html/template"
)

// UsersPage is the template showing either the full user list or a single user.
const UsersPage = "users.html"

//go:embed templates/*.html
var templates embed.FS

// Load parses the embedded templates for use with gin.Engine.SetHTMLTemplate.
func Load() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.html")
}
