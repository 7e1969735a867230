// Package higgins rewrites template-rendered HTML before it is written out.
//
// The rewrite fences code blocks, anchors headings and builds a table of
// contents from them, and resolves wiki-style [[#heading]] links. It works on
// the constrained HTML produced by Selleck templates, not on arbitrary markup.
package higgins

import (
	"strings"

	"github.com/rgrove/selleck/internal/doctree"
)

// TOCPlaceholder is the sentinel templates emit where the table of contents goes.
const TOCPlaceholder = "__SELLECK_TOC_PLACEHOLDER__"

// Renderer runs the rewrite passes. The zero value is ready to use.
// A Renderer carries no per-page state and may be shared between goroutines.
type Renderer struct {
	// Placeholder overrides TOCPlaceholder when non-empty.
	Placeholder string

	// RequireTOC only anchors headings on pages that contain the
	// placeholder. Older Selleck releases behaved this way; pages without a
	// TOC then get no heading ids and their wiki links dangle.
	RequireTOC bool
}

// Render rewrites html with the default Renderer.
func Render(html string) string {
	return Renderer{}.Render(html)
}

// Render runs the code, heading/TOC and link passes over html in that order.
func (r Renderer) Render(html string) string {
	placeholder := r.Placeholder
	if placeholder == "" {
		placeholder = TOCPlaceholder
	}

	out := parseCode(html)

	hasTOC := strings.Contains(out, placeholder)
	if hasTOC || !r.RequireTOC {
		tree := doctree.New()
		out = parseHeadings(out, tree)
		if hasTOC {
			out = strings.Replace(out, placeholder, tocList(tree, doctree.Root), 1)
		}
	}

	return parseLinks(out)
}

// Headings anchors the headings in html and returns the rewritten html with
// the resulting tree. Code fencing and links are left alone.
func Headings(html string) (string, *doctree.Tree) {
	tree := doctree.New()
	return parseHeadings(html, tree), tree
}
