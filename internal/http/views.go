package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewList          = "task_list.html"
	viewForm          = "task_form.html"
	viewDetail        = "task_detail.html"
	viewConfirmDelete = "task_confirm_delete.html"
	viewError         = "error.html"
)

// Views holds one parsed template set per page, each layered on base.html.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template)}
	for _, page := range []string{viewList, viewForm, viewDetail, viewConfirmDelete, viewError} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		v.pages[page] = t
	}
	return v, nil
}

// Render executes the page into a buffer so a template error never leaves a
// half-written response.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown view %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
