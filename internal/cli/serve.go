package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netscore/internal/api"
	"github.com/matzehuels/netscore/pkg/scoring"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the "serve" command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.conf()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			rt, err := c.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx, c.Logger)

			runID := scoring.NewRunID()
			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: api.New(rt.engine, api.Options{
					Workers: cfg.Workers,
					Logger:  c.Logger,
					Extra:   rt.sinks(runID),
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				c.Logger.Info("API listening", "addr", cfg.Server.Addr, "run", runID)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			c.Logger.Info("Shutting down")
			sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
