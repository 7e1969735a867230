// Package source finds and loads Selleck documentation sources: project and
// component directories, their JSON metadata, and their Handlebars pages,
// layouts and partials.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rgrove/selleck/internal/fileutil"
)

// PageExt is the extension of page, layout and partial templates.
const PageExt = ".mustache"

// Kind names a metadata file: <kind>.json.
type Kind string

const (
	KindProject   Kind = "project"
	KindComponent Kind = "component"
	KindTheme     Kind = "theme"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrBadMetadata  = errors.New("invalid metadata")
)

// Docs lists the documentation directories found under a root.
type Docs struct {
	Project    string   // Project directory, empty when none was found
	Components []string // Component directories in scan order
}

// FindDocs walks dir looking for project and component directories. A
// matching directory is not searched further. Only the first project is
// kept. Hidden entries and node_modules are skipped.
func FindDocs(dir string, log *slog.Logger) (Docs, error) {
	var docs Docs
	if !fileutil.IsDir(dir, true) {
		return docs, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	err := findDocs(dir, &docs, log)
	return docs, err
}

func findDocs(dir string, docs *Docs, log *slog.Logger) error {
	if filepath.Base(dir) == "node_modules" {
		log.Info("ignoring node_modules dir", "path", dir)
		return nil
	}

	switch {
	case IsComponentDir(dir):
		docs.Components = append(docs.Components, dir)
		return nil
	case IsProjectDir(dir):
		if docs.Project != "" {
			log.Warn("multiple projects found; ignoring", "path", dir, "project", docs.Project)
		} else {
			docs.Project = dir
		}
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !fileutil.IsDir(path, true) {
			continue
		}
		if err := findDocs(path, docs, log); err != nil {
			return err
		}
	}
	return nil
}

// IsComponentDir reports whether dir holds component.json and index.mustache.
func IsComponentDir(dir string) bool {
	return isDocDir(dir, KindComponent)
}

// IsProjectDir reports whether dir holds project.json and index.mustache.
func IsProjectDir(dir string) bool {
	return isDocDir(dir, KindProject)
}

func isDocDir(dir string, kind Kind) bool {
	return fileutil.IsFile(filepath.Join(dir, string(kind)+".json")) &&
		fileutil.IsFile(filepath.Join(dir, "index"+PageExt))
}

// Metadata reads <dir>/<kind>.json. A missing file yields an empty map. On a
// parse error the returned map is empty and the error wraps ErrBadMetadata.
func Metadata(dir string, kind Kind) (map[string]any, error) {
	path := filepath.Join(dir, string(kind)+".json")
	meta := make(map[string]any)
	if !fileutil.IsFile(path) {
		return meta, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return make(map[string]any), fmt.Errorf("%w: %s: %s", ErrBadMetadata, path, err)
	}
	return meta, nil
}

// Page loads a single page template. Missing pages return an error wrapping
// fs.ErrNotExist.
func Page(path string) (string, error) {
	if !fileutil.IsFile(path) {
		return "", fmt.Errorf("page %s: %w", path, fs.ErrNotExist)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Pages loads every template in dir, keyed by file name without PageExt.
// A missing dir yields an empty map.
func Pages(dir string) (map[string]string, error) {
	pages := make(map[string]string)
	if !fileutil.IsDir(dir, true) {
		return pages, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return pages, fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if filepath.Ext(e.Name()) != PageExt || !fileutil.IsFile(path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return pages, fmt.Errorf("read %s: %w", path, err)
		}
		pages[strings.TrimSuffix(e.Name(), PageExt)] = string(data)
	}
	return pages, nil
}

// Layouts loads the templates under dir/layouts.
func Layouts(dir string) (map[string]string, error) {
	return Pages(filepath.Join(dir, "layouts"))
}

// Partials loads the templates under dir/partials.
func Partials(dir string) (map[string]string, error) {
	return Pages(filepath.Join(dir, "partials"))
}

// ComponentIndex maps component names (from component.json) to their
// directories. Components without a name or with unreadable metadata are
// logged and skipped.
func ComponentIndex(dirs []string, log *slog.Logger) map[string]string {
	index := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		m, err := Metadata(dir, KindComponent)
		if err != nil {
			log.Error("component metadata", "path", dir, "error", err)
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			log.Warn("component has no name; skipping", "path", dir)
			continue
		}
		index[name] = dir
	}
	return index
}

// Names returns the keys of a page map in sorted order.
func Names(pages map[string]string) []string {
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
