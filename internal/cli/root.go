// Package cli wires the selleck commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgrove/selleck/internal/config"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return NewRootCmd(config.Load()).ExecuteContext(ctx)
}

// app holds what every command shares: the config, with flags applied,
// and the logger built from it.
type app struct {
	cfg config.Config
	log *slog.Logger
}

// NewRootCmd builds the command tree. Flag defaults come from cfg, so
// flags override the environment.
func NewRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "selleck",
		Short: "Generate and preview YUI-style documentation",
		Long: `Selleck renders project and component docs written as Handlebars
templates into static HTML, or serves them live while you edit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.cfg.LogLevel, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			a.log = log
			return a.cfg.Validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Root, "root", "r", a.cfg.Root, "Directory to search for project and component docs")
	flags.StringVarP(&a.cfg.Theme, "theme", "t", a.cfg.Theme, "Theme directory")
	flags.StringVar(&a.cfg.Meta, "meta", a.cfg.Meta, "JSON object mixed over all other metadata")
	flags.BoolVar(&a.cfg.RequireTOC, "require-toc", a.cfg.RequireTOC, "Only anchor headings on pages that include a table of contents")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn or error")

	root.AddCommand(newGenerateCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
