package view

import (
	"testing"

	"github.com/rgrove/selleck/internal/higgins"
)

func TestNew_Defaults(t *testing.T) {
	v := New(map[string]any{"projectName": "YUI", "name": "node", "layout": "main"}, "index")

	if v["toc"] != higgins.TOCPlaceholder {
		t.Errorf("expected toc placeholder, got %v", v["toc"])
	}
	if v["title"] != "YUI: node" {
		t.Errorf("expected title %q, got %v", "YUI: node", v["title"])
	}
	if v["page"] != "index" {
		t.Errorf("expected page name, got %v", v["page"])
	}
	if v.Layout() != "main" {
		t.Errorf("expected layout main, got %q", v.Layout())
	}
}

func TestNew_TitleVariants(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want string
	}{
		{"project only", map[string]any{"projectName": "YUI"}, "YUI"},
		{"display name wins", map[string]any{"projectName": "YUI", "name": "node", "displayName": "Node"}, "YUI: Node"},
		{"no project", map[string]any{"name": "node"}, "node"},
		{"explicit title", map[string]any{"projectName": "YUI", "title": "Custom"}, "Custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.meta, "index")["title"]; got != tt.want {
				t.Errorf("expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestNew_DoesNotAliasMetadata(t *testing.T) {
	m := map[string]any{"projectName": "YUI"}

	New(m, "index")

	if _, ok := m["toc"]; ok {
		t.Error("expected source metadata to be left unmodified")
	}
}

func TestNewComponent_UseParams(t *testing.T) {
	v := NewComponent(map[string]any{"use": []any{"node", "event"}}, "index")
	if v["useParams"] != "'node', 'event'" {
		t.Errorf("unexpected useParams %v", v["useParams"])
	}

	v = NewComponent(map[string]any{"use": "node"}, "index")
	if v["useParams"] != "node" {
		t.Errorf("expected scalar use to pass through, got %v", v["useParams"])
	}
}
