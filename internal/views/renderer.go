// Package views renders the HTML pages of the admin UI from embedded pongo2 templates.
package views

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Template names.
const (
	TemplateUsers = "users_list.html"
	TemplateForm  = "user_form.html"
	TemplateError = "error.html"
)

// Renderer executes templates, compiling each one once.
type Renderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// NewRenderer creates a Renderer over the embedded templates.
func NewRenderer() (*Renderer, error) {
	files, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: open templates: %w", err)
	}
	return &Renderer{
		set:       pongo2.NewSet("gw-user-admin", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes the named template with data and writes the result to w.
func (r *Renderer) Render(w io.Writer, name string, data pongo2.Context) error {
	tmpl, err := r.template(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("views: execute template %q: %w", name, err)
	}
	return nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("views: load template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}
