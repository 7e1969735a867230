// Package render turns a page template, a view, a layout and partials into
// final HTML.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/rgrove/selleck/internal/higgins"
	"github.com/yuin/goldmark"
)

// LayoutContentPartial is the partial name layouts use to include the page.
const LayoutContentPartial = "layout_content"

var ErrTemplate = errors.New("template error")

const (
	escapedLeft  = "__SELLECK_ESCAPED_LD__"
	escapedRight = "__SELLECK_ESCAPED_RD__"
)

var (
	delimiterEscaper   = strings.NewReplacer(`\{{`, escapedLeft, `\}}`, escapedRight)
	delimiterUnescaper = strings.NewReplacer(escapedLeft, "{{", escapedRight, "}}")
)

// Renderer renders Handlebars templates and post-processes the result.
// It holds no per-page state.
type Renderer struct {
	rewriter higgins.Renderer
	markdown goldmark.Markdown
}

// New returns a Renderer that post-processes pages with rw.
func New(rw higgins.Renderer) *Renderer {
	return &Renderer{
		rewriter: rw,
		markdown: newMarkdown(),
	}
}

// Render renders source against ctx. When layout is non-empty the layout is
// rendered instead, with source available as the layout_content partial.
// Backslash-escaped \{{ and \}} come out as literal delimiters.
func (r *Renderer) Render(source string, ctx any, layout string, partials map[string]string) (string, error) {
	all := make(map[string]string, len(partials)+1)
	for name, p := range partials {
		all[name] = delimiterEscaper.Replace(p)
	}

	main := delimiterEscaper.Replace(source)
	if layout != "" {
		all[LayoutContentPartial] = main
		main = delimiterEscaper.Replace(layout)
	}

	tpl, err := raymond.Parse(main)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	tpl.RegisterPartials(all)
	tpl.RegisterHelper("markdown", r.markdownHelper)

	html, err := tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	return r.rewriter.Render(delimiterUnescaper.Replace(html)), nil
}
