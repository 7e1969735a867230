package render

import (
	"bytes"

	"github.com/aymerick/raymond"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		// Pages are trusted sources and routinely mix raw HTML into prose.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// markdownHelper is the {{#markdown}}...{{/markdown}} block helper. If the
// body cannot be converted it is emitted unchanged.
func (r *Renderer) markdownHelper(options *raymond.Options) raymond.SafeString {
	body := options.Fn()

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(body), &buf); err != nil {
		return raymond.SafeString(body)
	}
	return raymond.SafeString(buf.String())
}
