package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/pkg/domain"
)

// RunList prints the notebook paths under dir, one per line.
func RunList(ctx context.Context, w io.Writer, configPath, dir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	app, err := buildApp(cfg, createLogger(cfg.LogLevel, false), domain.ProvisionHooks{})
	if err != nil {
		return err
	}

	paths, err := app.Documents().List(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}
