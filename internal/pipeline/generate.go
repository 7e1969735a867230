package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rgrove/selleck/internal/fileutil"
	"github.com/rgrove/selleck/internal/higgins"
	"github.com/rgrove/selleck/internal/meta"
	"github.com/rgrove/selleck/internal/metrics"
	"github.com/rgrove/selleck/internal/render"
	"github.com/rgrove/selleck/internal/source"
	"github.com/rgrove/selleck/internal/view"
)

// CreateOutputDir creates path and any missing parents.
func CreateOutputDir(path string) error {
	info, err := fileutil.Stat(path)
	if err != nil {
		return err
	}
	if info != nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrOutputNotDirectory, path)
		}
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

// CopyAssets copies the from dir to to, replacing existing files. A missing
// from is not an error. With deleteFirst an existing to dir is removed first.
func CopyAssets(from, to string, deleteFirst bool) error {
	if !fileutil.IsDir(from, true) {
		return nil
	}
	if deleteFirst && fileutil.IsDir(to, false) {
		if err := fileutil.DeletePath(to); err != nil {
			return err
		}
	}
	return fileutil.CopyPath(from, to, true)
}

// Generate prepares inDir and writes its pages and assets. Components are
// written to <out>/<name> with assets under <out-assets>/<name>. It returns
// the number of pages written.
func Generate(ctx context.Context, inDir string, opts Options, log *slog.Logger) (int, error) {
	site, err := Prepare(inDir, opts, log)
	if err != nil {
		return 0, err
	}

	out, outAssets := site.Out, site.OutAssets
	if site.Component {
		name := meta.String(site.Meta, "name")
		if name == "" {
			return 0, fmt.Errorf("%w: %s: component has no name", ErrValidation, inDir)
		}
		out = filepath.Join(out, name)
		outAssets = filepath.Join(outAssets, name)
	}

	if err := CreateOutputDir(out); err != nil {
		return 0, err
	}
	if err := CopyAssets(filepath.Join(inDir, "assets"), outAssets, false); err != nil {
		return 0, fmt.Errorf("copy assets: %w", err)
	}
	return WritePages(ctx, out, site, log)
}

// WritePages renders every page of site into outDir with bounded
// concurrency. Failed pages are logged and reported together; pages that
// rendered are still written.
func WritePages(ctx context.Context, outDir string, site *Site, log *slog.Logger) (int, error) {
	names := source.Names(site.Pages)
	if len(names) == 0 {
		return 0, nil
	}

	r := render.New(higgins.Renderer{RequireTOC: site.RequireTOC})
	rec := site.recorder()
	kind := site.Kind()

	type pageResult struct {
		name string
		err  error
	}
	results := make(chan pageResult, len(names))
	sem := make(chan struct{}, site.workers())

	launched := 0
	var errs []error
	for _, name := range names {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		launched++
		go func(name string) {
			defer func() { <-sem }()
			start := time.Now()
			err := writePage(outDir, name, site, r)
			rec.ObserveRender(kind, time.Since(start))
			if err != nil {
				rec.IncRender(kind, metrics.ResultError)
			} else {
				rec.IncRender(kind, metrics.ResultSuccess)
			}
			results <- pageResult{name: name, err: err}
		}(name)
	}

	written := 0
	for range launched {
		res := <-results
		if res.err != nil {
			log.Error("page failed", "dir", site.Dir, "page", res.name, "error", res.err)
			errs = append(errs, fmt.Errorf("page %s: %w", res.name, res.err))
			continue
		}
		written++
	}

	log.Info("pages written", "dir", site.Dir, "out", outDir, "written", written, "total", len(names))
	return written, errors.Join(errs...)
}

// RenderPage renders the named page of site. An unknown page returns an
// error wrapping fs.ErrNotExist.
func (s *Site) RenderPage(r *render.Renderer, name string) (string, view.View, error) {
	src, ok := s.Pages[name]
	if !ok {
		return "", nil, fmt.Errorf("page %s: %w", name, fs.ErrNotExist)
	}

	var v view.View
	if s.Component {
		v = view.NewComponent(s.Meta, name)
	} else {
		v = view.New(s.Meta, name)
	}

	html, err := r.Render(src, v, s.Layouts[v.Layout()], s.Partials)
	if err != nil {
		return "", nil, err
	}
	return html, v, nil
}

func writePage(outDir, name string, site *Site, r *render.Renderer) error {
	html, v, err := site.RenderPage(r, name)
	if err != nil {
		return err
	}

	if site.DumpViews {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, name+".json"), data, 0o644); err != nil {
			return err
		}
	}

	return os.WriteFile(filepath.Join(outDir, name+site.outExt()), []byte(html), 0o644)
}
