// Package view builds the template contexts pages are rendered against.
package view

import (
	"fmt"
	"strings"

	"github.com/rgrove/selleck/internal/higgins"
	"github.com/rgrove/selleck/internal/meta"
)

// View is the data a page template sees. Metadata keys are copied in
// verbatim; toc, title and page are filled in unless the metadata sets them.
type View map[string]any

// New returns the view for a project page.
func New(m map[string]any, page string) View {
	v := View(meta.Merge(m))
	v.setDefault("toc", higgins.TOCPlaceholder)
	v.setDefault("page", page)
	v.setDefault("title", v.title())
	return v
}

// NewComponent returns the view for a component page. It adds useParams,
// the component's "use" list formatted for a YUI().use() call.
func NewComponent(m map[string]any, page string) View {
	v := New(m, page)
	v.setDefault("useParams", v.useParams())
	return v
}

// Layout returns the name of the layout the page should be wrapped in.
func (v View) Layout() string {
	return meta.String(v, "layout")
}

func (v View) setDefault(key string, val any) {
	if _, ok := v[key]; !ok {
		v[key] = val
	}
}

func (v View) title() string {
	name := meta.String(v, "displayName")
	if name == "" {
		name = meta.String(v, "name")
	}
	project := meta.String(v, "projectName")

	switch {
	case name == "":
		return project
	case project == "":
		return name
	default:
		return project + ": " + name
	}
}

func (v View) useParams() any {
	use, ok := v["use"].([]any)
	if !ok {
		return v["use"]
	}
	quoted := make([]string, len(use))
	for i, u := range use {
		quoted[i] = fmt.Sprintf("'%v'", u)
	}
	return strings.Join(quoted, ", ")
}
