package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

// FlashMessage is a one-shot notice shown at the top of a page
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is the data common to every page
type PageData struct {
	Title    string
	Username string
	Role     string
	Flash    *FlashMessage
}

// LoginData is the data for the login page
type LoginData struct {
	PageData
	Email string
	Error string
	Next  string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	PageData
	Role        string
	Email       string
	Username    string
	Error       string
	FieldErrors map[string]string
}

// DashboardData is the data for the role dashboards
type DashboardData struct {
	PageData
	ProfileLines []string
}

// Renderer executes the embedded page templates
type Renderer struct {
	tmpl *template.Template
}

// New parses all embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named page template. Pages share the "header" and
// "footer" partials from layout.html.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, page, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}
