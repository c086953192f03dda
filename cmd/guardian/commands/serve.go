package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"guardian/internal/api"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		monitor bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the presentation layer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = appCtx.Config.Server.Addr
			}
			if err := appCtx.WatchContacts(ctx); err != nil {
				return err
			}
			if monitor {
				appCtx.Session.SetEnabled(ctx, true)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(appCtx).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				appCtx.Logger.Info("API listening", "addr", addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&monitor, "monitor", false, "turn safety monitoring on at startup")
	return cmd
}
