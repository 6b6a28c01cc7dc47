package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/pkg/domain"
)

// NewOptions contains the configuration for the 'new' command.
type NewOptions struct {
	ConfigPath string
	Dir        string
	Debug      bool
	JSON       bool
}

// RunNew provisions a flagged notebook and prints the outcome.
func RunNew(ctx context.Context, w io.Writer, opts NewOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger := createLogger(cfg.LogLevel, opts.Debug)
	app, err := buildApp(cfg, logger, domain.ProvisionHooks{})
	if err != nil {
		return err
	}

	outcome, err := app.NewNotebook(ctx, opts.Dir)
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	if outcome.Tagged() {
		fmt.Fprintf(w, "Created %s (flagged)\n", outcome.Path)
	} else {
		fmt.Fprintf(w, "Created %s (store declined tagging, left untouched)\n", outcome.Path)
	}
	return nil
}
