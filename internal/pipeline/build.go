package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/rgrove/selleck/internal/config"
	"github.com/rgrove/selleck/internal/fileutil"
	"github.com/rgrove/selleck/internal/meta"
	"github.com/rgrove/selleck/internal/metrics"
	"github.com/rgrove/selleck/internal/source"
)

// Report tracks the outcome of a whole-site build.
type Report struct {
	mu sync.Mutex

	Project    string        `json:"project"`
	Components int           `json:"components"`
	Pages      int           `json:"pages"`
	Errors     []string      `json:"errors"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// AddPages records n written pages.
func (r *Report) AddPages(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pages += n
}

// AddComponent records a generated component.
func (r *Report) AddComponent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Components++
}

// AddError records an error.
func (r *Report) AddError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err.Error())
}

// Failed reports whether any error was recorded.
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) > 0
}

// Theme is the base every project and component is generated on.
type Theme struct {
	Dir      string
	Meta     map[string]any
	Layouts  map[string]string
	Partials map[string]string
}

// LoadTheme reads the metadata, layouts and partials of a theme dir.
func LoadTheme(dir string) (*Theme, error) {
	if !fileutil.IsDir(dir, true) {
		return nil, fmt.Errorf("theme %s: %w", dir, source.ErrNotDirectory)
	}
	m, err := source.Metadata(dir, source.KindTheme)
	if err != nil {
		return nil, err
	}
	layouts, err := source.Layouts(dir)
	if err != nil {
		return nil, err
	}
	partials, err := source.Partials(dir)
	if err != nil {
		return nil, err
	}
	return &Theme{Dir: dir, Meta: m, Layouts: layouts, Partials: partials}, nil
}

// ProjectBase layers the project dir over the theme. Components inherit it.
func (t *Theme) ProjectBase(projectDir string) (*Theme, error) {
	if projectDir == "" {
		return t, nil
	}
	m, err := source.Metadata(projectDir, source.KindProject)
	if err != nil {
		return nil, err
	}
	layouts, err := source.Layouts(projectDir)
	if err != nil {
		return nil, err
	}
	partials, err := source.Partials(projectDir)
	if err != nil {
		return nil, err
	}
	return &Theme{
		Dir:      t.Dir,
		Meta:     meta.Merge(t.Meta, m),
		Layouts:  mergeTemplates(t.Layouts, layouts),
		Partials: mergeTemplates(t.Partials, partials),
	}, nil
}

// Build generates the whole site under cfg.Root: theme assets first, then
// the project, then every component. A failing component is recorded and
// the build moves on.
func Build(ctx context.Context, cfg config.Config, rec metrics.Recorder, log *slog.Logger) (*Report, error) {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	report := &Report{StartedAt: time.Now()}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
		rec.ObserveBuild(report.Duration, !report.Failed())
	}()

	override, err := cfg.OverrideMeta()
	if err != nil {
		report.AddError(err)
		return report, err
	}

	docs, err := source.FindDocs(cfg.Root, log)
	if err != nil {
		report.AddError(err)
		return report, err
	}
	if docs.Project == "" && len(docs.Components) == 0 {
		err := fmt.Errorf("no project or component docs found under %s", cfg.Root)
		report.AddError(err)
		return report, err
	}

	theme, err := LoadTheme(cfg.Theme)
	if err != nil {
		report.AddError(err)
		return report, err
	}

	outAssets := cfg.AssetsDir()
	if err := CreateOutputDir(cfg.Out); err != nil {
		report.AddError(err)
		return report, err
	}
	if err := CopyAssets(filepath.Join(theme.Dir, "assets"), outAssets, true); err != nil {
		report.AddError(err)
		return report, fmt.Errorf("copy theme assets: %w", err)
	}

	opts := Options{
		Out:          cfg.Out,
		OutAssets:    outAssets,
		OutExt:       cfg.OutExt,
		OverrideMeta: override,
		DumpViews:    cfg.DumpViews,
		Workers:      cfg.Workers,
		RequireTOC:   cfg.RequireTOC,
		Metrics:      rec,
	}

	var errs []error
	if docs.Project != "" {
		report.Project = docs.Project
		projOpts := opts
		projOpts.Meta, projOpts.Layouts, projOpts.Partials = theme.Meta, theme.Layouts, theme.Partials

		n, err := Generate(ctx, docs.Project, projOpts, log)
		report.AddPages(n)
		if err != nil {
			report.AddError(err)
			errs = append(errs, err)
		}
	}

	base, err := theme.ProjectBase(docs.Project)
	if err != nil {
		report.AddError(err)
		return report, errors.Join(append(errs, err)...)
	}

	for _, dir := range docs.Components {
		if err := ctx.Err(); err != nil {
			report.AddError(err)
			errs = append(errs, err)
			break
		}
		compOpts := opts
		compOpts.Component = true
		compOpts.Meta, compOpts.Layouts, compOpts.Partials = base.Meta, base.Layouts, base.Partials

		n, err := Generate(ctx, dir, compOpts, log)
		report.AddPages(n)
		if err != nil {
			log.Error("component failed", "dir", dir, "error", err)
			report.AddError(err)
			errs = append(errs, err)
			continue
		}
		report.AddComponent()
	}

	log.Info("build complete", "project", report.Project, "components", report.Components, "pages", report.Pages, "errors", len(report.Errors))
	return report, errors.Join(errs...)
}
