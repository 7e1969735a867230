package cli

import (
	"fmt"

	"github.com/rgrove/selleck/internal/pipeline"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render all docs to static HTML",
		Long: `Find the project and component docs under --root, render every page
with the theme and write the site to --out.

Examples:
  selleck generate
  selleck generate --root ~/src/yui3 --out /tmp/docs
  selleck generate --meta '{"version":"3.4.0"}' --dump-views`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.Build(cmd.Context(), a.cfg, nil, a.log)
			if err != nil && report != nil && report.Pages > 0 {
				return fmt.Errorf("%d errors during build: %w", len(report.Errors), err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.cfg.Out, "out", "o", a.cfg.Out, "Output directory")
	flags.StringVar(&a.cfg.OutAssets, "out-assets", a.cfg.OutAssets, "Asset output directory (default <out>/assets)")
	flags.StringVar(&a.cfg.OutExt, "out-ext", a.cfg.OutExt, "Extension for generated pages")
	flags.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "Pages rendered concurrently")
	flags.BoolVar(&a.cfg.DumpViews, "dump-views", a.cfg.DumpViews, "Write each page's view as <page>.json")
	return cmd
}
