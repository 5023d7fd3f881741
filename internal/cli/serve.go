package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/internal/server"
	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/observability"
)

// serveCommand creates the serve command for the HTTP export service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exports over HTTP",
		Long: `Start an HTTP service that exports scene snapshots on request.

POST a JSON body {"scene": {...}, "config": "<toml>"} to /exports; the
response lists the written files, which are fetched from
/exports/{id}/{file}. Counters are served on /stats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expanded, err := config.ExpandPath(dir)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, expanded)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&dir, "dir", "exports", "root directory for export output")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, dir string) error {
	srv, err := server.New(server.Options{Dir: dir, Logger: c.Logger})
	if err != nil {
		return err
	}
	observability.SetExportHooks(srv.Counter())
	observability.SetRendererHooks(srv.Counter())

	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
	printDetail("exports in %s", dir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	c.Logger.Info("server stopped")
	return ctx.Err()
}
