package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgrove/selleck/internal/higgins"
)

func TestRender_Context(t *testing.T) {
	r := New(higgins.Renderer{})

	got, err := r.Render("<h1>{{name}}</h1>", map[string]any{"name": "node"}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<h1>node</h1>" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRender_LayoutAndPartials(t *testing.T) {
	r := New(higgins.Renderer{})
	partials := map[string]string{"nav": "<nav>{{projectName}}</nav>"}

	got, err := r.Render(
		"<p>{{title}}</p>",
		map[string]any{"projectName": "YUI", "title": "Guide"},
		"<body>{{> nav}}{{> layout_content}}</body>",
		partials,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "<body><nav>YUI</nav><p>Guide</p></body>"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if len(partials) != 1 {
		t.Error("expected caller's partial map to be left unmodified")
	}
}

func TestRender_EscapedDelimiters(t *testing.T) {
	r := New(higgins.Renderer{})

	got, err := r.Render(`<code>\{{name\}}</code> {{name}}`, map[string]any{"name": "node"}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "<code>{{name}}</code> node"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_RunsRewriter(t *testing.T) {
	r := New(higgins.Renderer{})
	page := "{{toc}}\n<h2>Getting Started</h2>\nSee [[#Getting Started]]."

	got, err := r.Render(page, map[string]any{"toc": higgins.TOCPlaceholder}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`<ul class="toc">`,
		`<a href="#getting-started">Getting Started</a>`,
		`<h2 id="getting-started">Getting Started</h2>`,
		`See <a href="#getting-started">Getting Started</a>.`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
	if strings.Contains(got, higgins.TOCPlaceholder) {
		t.Error("expected placeholder to be replaced")
	}
}

func TestRender_MarkdownHelper(t *testing.T) {
	r := New(higgins.Renderer{})

	got, err := r.Render("{{#markdown}}## Hello *{{name}}*{{/markdown}}", map[string]any{"name": "world"}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `<h2 id="hello-world">Hello <em>world</em></h2>`; !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q, got %q", want, got)
	}
}

func TestRender_TemplateErrors(t *testing.T) {
	r := New(higgins.Renderer{})

	tests := []struct {
		name     string
		source   string
		layout   string
		partials map[string]string
	}{
		{"unclosed block", "{{#if name}}oops", "", nil},
		{"missing partial", "{{> missing}}", "", nil},
		{"bad layout", "ok", "{{#each}}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(tt.source, map[string]any{}, tt.layout, tt.partials)
			if !errors.Is(err, ErrTemplate) {
				t.Errorf("expected ErrTemplate, got %v", err)
			}
		})
	}
}
