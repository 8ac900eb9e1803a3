package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsift/internal/api"
	"github.com/dgallion1/docsift/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docsift HTTP server",
	Long: `Start the HTTP API for outlines and rankings of uploaded documents.

The server provides:
  - GET  /health             - liveness check
  - POST /api/outline        - multipart "file" -> outline JSON
  - POST /api/rank           - multipart "files", "persona", "job" -> ranking JSON
  - GET  /api/stats/extract  - extraction latency snapshot

When an API key is configured every /api route requires
"Authorization: Bearer <key>".

Examples:
  docsift serve                  # listen on :8090
  docsift serve --port 3000
  DOCSIFT_API_KEY=secret docsift serve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		srv := api.NewServer(cfg, newStats(), log)
		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting docsift", "port", cfg.Port, "auth", cfg.APIKey != "")
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server error", "error", err)
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	d := config.Default()
	serveCmd.Flags().String("port", d.Port, "port to listen on")
	serveCmd.Flags().String("api-key", "", "bearer token required on /api routes (empty disables auth)")
	serveCmd.Flags().Int64("max-upload-bytes", d.MaxUploadBytes, "largest accepted upload")
	serveCmd.Flags().String("classifier", d.Classifier, "line classifier: scored or ratio (default depends on the endpoint)")
	rootCmd.AddCommand(serveCmd)
}
