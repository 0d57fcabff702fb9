package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the metrics as a JSON API",
		Long: `Start a read-only HTTP API over the snapshot directory:

  GET /api/v1/gex?symbol=...&expiration=...      strike GEX profile
  GET /api/v1/netgex?symbol=...&expiration=...   Net GEX time series
  GET /api/v1/dgi?symbol=...&expiration=...      DGI time series
  GET /api/v1/volume?symbol=...&expiration=...   volume by strike`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(cfg, logger)

			httpServer := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      srv.Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("port", cfg.Server.Port),
					zap.String("data_dir", cfg.DataDir),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-cmd.Context().Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	return cmd
}
