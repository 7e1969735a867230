package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rgrove/selleck/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve docs live from source",
		Long: `Serve the docs under --root, rendering each page from source on every
request. New or removed components are picked up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVarP(&a.cfg.Port, "port", "p", a.cfg.Port, "Port to listen on")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	srv, err := server.New(a.cfg, a.log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	watchDone := make(chan error, 1)
	go func() { watchDone <- srv.Watch(ctx) }()

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		a.log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	a.log.Info("starting selleck", "port", a.cfg.Port, "url", fmt.Sprintf("http://localhost:%s", a.cfg.Port))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return <-watchDone
}
