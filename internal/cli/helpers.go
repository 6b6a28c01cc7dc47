// Package cli implements the command logic behind the flownote binary. The
// cobra commands in cmd/flownote stay thin and delegate here, which keeps
// this logic testable without a terminal.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/term"

	"github.com/stepbook/flownote"
	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/internal/logging"
	"github.com/stepbook/flownote/pkg/adapters/file"
	"github.com/stepbook/flownote/pkg/adapters/memory"
	"github.com/stepbook/flownote/pkg/adapters/redis"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/middleware"
	"github.com/stepbook/flownote/pkg/ports"
)

// createLogger configures the application logger. Debug overrides the
// configured level; without it the config decides, defaulting to a silent
// logger so command output stays clean on stdout.
func createLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	switch level {
	case "debug":
		return logging.New(slog.LevelDebug)
	case "info":
		return logging.New(slog.LevelInfo)
	case "warn":
		return logging.New(slog.LevelWarn)
	case "error":
		return logging.New(slog.LevelError)
	}
	return logging.NewNop()
}

// isTerminal reports whether f is attached to a TTY. Renderers degrade to
// plain output when it is not.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// buildStore constructs the document manager named by the config.
func buildStore(cfg config.Config) (ports.DocumentManager, error) {
	switch cfg.Store {
	case config.StoreFile:
		return file.NewStore(cfg.Root), nil
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts := []redis.Option{
			redis.WithLocker(redis.NewLocker(client, "flownote:")),
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(time.Duration(cfg.Redis.TTL)*time.Second))
		}
		return redis.NewFromClient(client, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// appProvisioner adapts the App facade to the HTTP adapter's Provisioner.
type appProvisioner struct {
	app *flownote.App
}

func (p appProvisioner) Provision(ctx context.Context, dir string) (*domain.Outcome, error) {
	return p.app.NewNotebook(ctx, dir)
}

// buildApp assembles a FlowNote App from the loaded config.
func buildApp(cfg config.Config, logger *slog.Logger, hooks domain.ProvisionHooks) (*flownote.App, error) {
	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	store = middleware.Chain(store, middleware.NewLoggingMiddleware(logger))

	app, err := flownote.New(cfg.Root,
		flownote.WithDocumentManager(store),
		flownote.WithLogger(logger),
		flownote.WithProvisionHooks(hooks),
	)
	if err != nil {
		return nil, err
	}

	for mimeType, rank := range cfg.Renderers {
		if !app.Renderers().SetRank(mimeType, rank) {
			logger.Warn("renderer rank override ignored", "mime_type", mimeType)
		}
	}

	return app, nil
}
