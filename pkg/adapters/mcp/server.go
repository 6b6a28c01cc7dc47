// Package mcp exposes FlowNote as a Model Context Protocol server, so agent
// hosts can provision flagged notebooks and inspect documents as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stepbook/flownote"
)

// Server wraps a FlowNote App and exposes it over MCP.
type Server struct {
	app       *flownote.App
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(app *flownote.App) *Server {
	s := &Server{
		app:       app,
		mcpServer: server.NewMCPServer("flownote-mcp", flownote.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: new_notebook
	newTool := mcp.NewTool("new_notebook",
		mcp.WithDescription("Create a new notebook flagged for flow-driven behavior (use_stepbook). Returns the created path and whether the flag was persisted."),
		mcp.WithString("dir", mcp.Description("Target directory; empty means the workspace root")),
	)
	s.mcpServer.AddTool(newTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := request.GetString("dir", "")

		outcome, err := s.app.NewNotebook(ctx, dir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("provision failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(outcome)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_document
	getTool := mcp.NewTool("get_document",
		mcp.WithDescription("Load a notebook document (cells and metadata) by path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path, e.g. ws/Untitled.ipynb")),
	)
	s.mcpServer.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		doc, err := s.app.Documents().Load(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(doc)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_documents
	listTool := mcp.NewTool("list_documents",
		mcp.WithDescription("List notebook paths under a directory."),
		mcp.WithString("dir", mcp.Description("Directory to list; empty means the workspace root")),
	)
	s.mcpServer.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := request.GetString("dir", "")

		paths, err := s.app.Documents().List(ctx, dir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(map[string][]string{"paths": paths})
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) registerResources() {
	// EXPOSE: flownote://renderers
	s.mcpServer.AddResource(mcp.NewResource("flownote://renderers", "Registered MIME Renderers",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.app.Renderers().Registrations())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal registrations: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "flownote://renderers",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
