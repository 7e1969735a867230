package source

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func makeDocDir(t *testing.T, dir string, kind Kind, meta string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, string(kind)+".json"), meta)
	writeFile(t, filepath.Join(dir, "index.mustache"), "<h1>{{name}}</h1>")
}

func TestFindDocs(t *testing.T) {
	root := t.TempDir()
	makeDocDir(t, filepath.Join(root, "docs"), KindProject, `{"projectName":"YUI"}`)
	makeDocDir(t, filepath.Join(root, "src", "node", "docs"), KindComponent, `{"name":"node"}`)
	makeDocDir(t, filepath.Join(root, "src", "anim", "docs"), KindComponent, `{"name":"anim"}`)
	makeDocDir(t, filepath.Join(root, ".hidden", "docs"), KindComponent, `{"name":"hidden"}`)
	makeDocDir(t, filepath.Join(root, "node_modules", "dep", "docs"), KindComponent, `{"name":"dep"}`)
	makeDocDir(t, filepath.Join(root, "zzz", "docs"), KindProject, `{"projectName":"Other"}`)

	docs, err := FindDocs(root, discard)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(root, "docs"), docs.Project)
	require.ElementsMatch(t, []string{
		filepath.Join(root, "src", "node", "docs"),
		filepath.Join(root, "src", "anim", "docs"),
	}, docs.Components)
}

func TestFindDocs_NotDirectory(t *testing.T) {
	_, err := FindDocs(filepath.Join(t.TempDir(), "missing"), discard)
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestIsDocDir_RequiresIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "component.json"), `{}`)
	require.False(t, IsComponentDir(dir))

	writeFile(t, filepath.Join(dir, "index.mustache"), "")
	require.True(t, IsComponentDir(dir))
	require.False(t, IsProjectDir(dir))
}

func TestMetadata(t *testing.T) {
	dir := t.TempDir()

	m, err := Metadata(dir, KindProject)
	require.NoError(t, err)
	require.Empty(t, m)

	writeFile(t, filepath.Join(dir, "project.json"), `{"projectName":"YUI","nested":{"a":1}}`)
	m, err = Metadata(dir, KindProject)
	require.NoError(t, err)
	require.Equal(t, "YUI", m["projectName"])
	require.Equal(t, map[string]any{"a": float64(1)}, m["nested"])
}

func TestMetadata_BadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "theme.json"), `{"broken":`)

	m, err := Metadata(dir, KindTheme)
	require.ErrorIs(t, err, ErrBadMetadata)
	require.NotNil(t, m)
	require.Empty(t, m)
}

func TestPagesLayoutsPartials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.mustache"), "index")
	writeFile(t, filepath.Join(dir, "guide.mustache"), "guide")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip")
	writeFile(t, filepath.Join(dir, "layouts", "main.mustache"), "main")
	writeFile(t, filepath.Join(dir, "partials", "nav.mustache"), "nav")

	pages, err := Pages(dir)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"index": "index", "guide": "guide"}, pages)
	require.Equal(t, []string{"guide", "index"}, Names(pages))

	layouts, err := Layouts(dir)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"main": "main"}, layouts)

	partials, err := Partials(dir)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"nav": "nav"}, partials)

	none, err := Partials(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestPage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.mustache"), "hello")

	got, err := Page(filepath.Join(dir, "index.mustache"))
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	_, err = Page(filepath.Join(dir, "missing.mustache"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestComponentIndex(t *testing.T) {
	root := t.TempDir()
	named := filepath.Join(root, "node")
	unnamed := filepath.Join(root, "unnamed")
	broken := filepath.Join(root, "broken")
	makeDocDir(t, named, KindComponent, `{"name":"node"}`)
	makeDocDir(t, unnamed, KindComponent, `{}`)
	makeDocDir(t, broken, KindComponent, `{`)

	index := ComponentIndex([]string{named, unnamed, broken}, discard)
	require.Equal(t, map[string]string{"node": named}, index)
}
