package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/rgrove/selleck/internal/meta"
	"github.com/rgrove/selleck/internal/source"
)

// Prepare loads inDir and merges it over opts.
//
// Metadata is layered lowest to highest: opts.Meta, its componentDefaults
// (components only), the directory's own metadata, opts.OverrideMeta, and
// the override's componentDefaults (components only).
func Prepare(inDir string, opts Options, log *slog.Logger) (*Site, error) {
	kind := source.KindProject
	if opts.Component {
		kind = source.KindComponent
	}

	site := &Site{Dir: inDir, Options: opts}
	site.Meta = meta.Merge(opts.Meta)
	site.Layouts = mergeTemplates(opts.Layouts)
	site.Partials = mergeTemplates(opts.Partials)

	if !opts.SkipLoad {
		layouts, err := source.Layouts(inDir)
		if err != nil {
			return nil, err
		}
		partials, err := source.Partials(inDir)
		if err != nil {
			return nil, err
		}
		dirMeta, err := source.Metadata(inDir, kind)
		if err != nil {
			return nil, err
		}

		site.Layouts = mergeTemplates(site.Layouts, layouts)
		site.Partials = mergeTemplates(site.Partials, partials)
		if opts.Component {
			meta.Mix(site.Meta, meta.Map(opts.Meta, "componentDefaults"))
		}
		meta.Mix(site.Meta, dirMeta)
	}

	pages, err := source.Pages(inDir)
	if err != nil {
		return nil, err
	}
	site.Pages = pages

	meta.Mix(site.Meta, opts.OverrideMeta)
	if opts.Component {
		meta.Mix(site.Meta, meta.Map(opts.OverrideMeta, "componentDefaults"))
	}

	if meta.String(site.Meta, "projectAssets") == "" {
		if opts.Component {
			site.Meta["projectAssets"] = "../assets"
		} else {
			site.Meta["projectAssets"] = "assets"
		}
	}
	if opts.Component && meta.String(site.Meta, "componentAssets") == "" {
		site.Meta["componentAssets"] = "../assets/" + meta.String(site.Meta, "name")
	}

	if opts.Validator != nil {
		if err := opts.Validator(site); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrValidation, inDir, err)
		}
	}

	if _, ok := site.Meta["layout"]; !ok {
		if _, ok := site.Layouts[string(kind)]; ok {
			site.Meta["layout"] = string(kind)
		} else {
			site.Meta["layout"] = "main"
		}
	}

	log.Debug("prepared", "dir", inDir, "kind", kind, "pages", len(site.Pages), "layouts", len(site.Layouts))
	return site, nil
}

// mergeTemplates returns a new map holding every entry of maps, later maps
// winning.
func mergeTemplates(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
