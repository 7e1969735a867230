// Package pipeline generates static documentation from project and
// component directories.
package pipeline

import (
	"errors"

	"github.com/rgrove/selleck/internal/metrics"
)

var (
	ErrOutputNotDirectory = errors.New("output path exists and is not a directory")
	ErrValidation         = errors.New("validation failed")
)

// DefaultOutExt is the extension given to generated pages.
const DefaultOutExt = ".html"

// Options controls how one input directory is prepared and generated.
type Options struct {
	// Component marks the input as a component rather than a project.
	Component bool

	Out       string // page output dir
	OutAssets string // asset output dir
	OutExt    string // page extension, DefaultOutExt when empty

	// Meta, Layouts and Partials are the inherited base. Data loaded from
	// the input directory overrides them.
	Meta     map[string]any
	Layouts  map[string]string
	Partials map[string]string

	// OverrideMeta is mixed in last and beats everything else.
	OverrideMeta map[string]any

	// SkipLoad uses Meta, Layouts and Partials as given without reading the
	// input directory. Pages are always read.
	SkipLoad bool

	// DumpViews writes each page's view as <page>.json next to the page.
	DumpViews bool

	// Validator, when set, gets the prepared site and may reject it.
	Validator func(*Site) error

	Workers    int  // concurrent page renders, 1 when <= 0
	RequireTOC bool // only anchor headings on pages with a TOC

	Metrics metrics.Recorder
}

// Site is a prepared input directory: Options with the directory's own
// layouts, partials and metadata merged in, plus its pages.
type Site struct {
	Dir string
	Options
	Pages map[string]string
}

// Kind is the metrics label for the site's pages.
func (s *Site) Kind() metrics.Kind {
	if s.Component {
		return metrics.KindComponent
	}
	return metrics.KindProject
}

func (o Options) recorder() metrics.Recorder {
	if o.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return o.Metrics
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return 1
	}
	return o.Workers
}

func (o Options) outExt() string {
	if o.OutExt == "" {
		return DefaultOutExt
	}
	return o.OutExt
}
