package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stepbook/flownote/internal/config"
	mcpAdapter "github.com/stepbook/flownote/pkg/adapters/mcp"
	"github.com/stepbook/flownote/pkg/domain"
)

// MCPOptions contains the configuration for the 'mcp' command.
type MCPOptions struct {
	ConfigPath string
	Transport  string
	Port       int
	Debug      bool
}

// RunMCP starts the MCP server on the chosen transport. Stdio keeps stdout
// reserved for JSON-RPC; logs always go to stderr.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger := createLogger(cfg.LogLevel, opts.Debug)
	app, err := buildApp(cfg, logger, domain.ProvisionHooks{})
	if err != nil {
		return err
	}

	srv := mcpAdapter.NewServer(app)

	switch opts.Transport {
	case "stdio":
		logger.Info("starting MCP server", "transport", "stdio")
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server", "transport", "sse", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", opts.Transport)
	}
}
