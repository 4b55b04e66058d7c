package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkessler/portplan/internal/server"
	"github.com/mkessler/portplan/pkg/cache"
	"github.com/mkessler/portplan/pkg/config"
)

// newServeCmd creates the serve command: the HTTP planning API.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP planning API",
		Long: `Serve exposes the planner over HTTP: POST a scan JSON body to
/api/plan and receive the conversion plan JSON. Plans are cached by
content hash using the configured cache backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, err := openCache(ctx, cfg.Cache)
			if err != nil {
				logger.Warn("cache unavailable, continuing without", "err", err)
				store = cache.NewNullCache()
			}
			defer store.Close()

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      server.New(cfg, store, logger),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 60 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Server.Addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
