package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"prep-backend/internal/shared/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API under /api/v1.

Available endpoints:
- POST /analyses, POST /analyses/upload: analyze a job description
- GET /analyses, GET /analyses/active, GET /analyses/:id: history
- PATCH /analyses/:id/confidence: skill self-assessment
- GET /analyses/:id/export: plain-text report
- /proof/checklist, /proof/links, /proof/submission: ship checklist
- GET /health, GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if app.Router == nil {
				return errors.New("router not initialized")
			}
			if port == "" {
				port = app.Config.Port
			}
			srv := &http.Server{
				Addr:              server.Addr(port),
				Handler:           app.Router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(cmd.Context(), srv)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from PORT)")
	return cmd
}

// serve runs srv until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("Shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
