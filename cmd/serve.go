package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidecat/slidecat/internal/handlers"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve <descriptor>",
		Short: "Serve a local read/edit API over a project",
		Long: `Opens the project and serves its entry listing over a local HTTP API.

Entry names, descriptions and metadata can be edited with PUT requests;
every edit is synced back to the descriptor. The server is the single
writer for the project while it runs.`,
		Example: `  # Serve on default port 8888
  slidecat serve project.scproj

  # Serve on custom port
  slidecat serve project.scproj --port 3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}
			handler := handlers.New(p)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/entries", handler.HandleEntries)
			mux.HandleFunc("/api/entries/", handler.HandleEntryDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Project API available", "project", p.Name(), "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
