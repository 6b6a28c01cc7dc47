package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/stepbook/flownote/internal/adapters/http"
	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/pkg/observability"
)

// ServeOptions contains the configuration for the 'serve' command.
type ServeOptions struct {
	ConfigPath string
	Port       string
	Debug      bool
}

// RunServe starts the HTTP API and blocks until the context is cancelled or
// the listener fails. Provisioning metrics are exposed on /metrics.
func RunServe(ctx context.Context, opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger := createLogger(cfg.LogLevel, opts.Debug)
	metrics := observability.NewMetrics()

	app, err := buildApp(cfg, logger, metrics.Hooks())
	if err != nil {
		return err
	}

	handler, err := httpAdapter.NewHandler(&httpAdapter.Server{
		Provisioner: appProvisioner{app},
		Documents:   app.Documents(),
		Renderers:   app.Renderers(),
		Metrics:     metrics,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if closeErr := srv.Close(); closeErr != nil {
				return fmt.Errorf("error killing server: %w", closeErr)
			}
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		return nil
	}
}
