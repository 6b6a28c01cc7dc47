// Package http exposes the FlowNote provisioner and document store as a JSON
// API. The OpenAPI description is embedded and validated at construction
// time, so a drifting spec fails fast instead of at documentation time.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/stepbook/flownote"
	"github.com/stepbook/flownote/internal/logging"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/observability"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/registry"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Provisioner is the slice of the provisioning core the server needs.
type Provisioner interface {
	Provision(ctx context.Context, dir string) (*domain.Outcome, error)
}

// Server wires the provisioner, document store and renderer registry into an
// HTTP handler.
type Server struct {
	Provisioner Provisioner
	Documents   ports.DocumentManager
	Renderers   *registry.Registry
	Metrics     *observability.Metrics
	Logger      *slog.Logger

	apiVersion string
}

// NewHandler validates the embedded OpenAPI spec and builds the router.
func NewHandler(s *Server) (http.Handler, error) {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("embedded openapi spec is invalid: %w", err)
	}
	s.apiVersion = doc.Info.Version

	r := chi.NewRouter()

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})

	r.Post("/api/documents", s.provisionDocument)
	r.Get("/api/documents", s.listDocuments)
	r.Get("/api/documents/*", s.getDocument)
	r.Get("/api/renderers", s.listRenderers)

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	return r, nil
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "flownote-http",
		"version":     flownote.Version,
		"api_version": s.apiVersion,
	})
}

type provisionRequest struct {
	Dir string `json:"dir"`
}

func (s *Server) provisionDocument(w http.ResponseWriter, r *http.Request) {
	var body provisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	outcome, err := s.Provisioner.Provision(r.Context(), body.Dir)
	if err != nil {
		s.Logger.Error("provision failed", "dir", body.Dir, "error", err)
		http.Error(w, fmt.Sprintf("Provision error: %v", err), http.StatusInternalServerError)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ObserveDuration(time.Since(start))
	}

	writeJSON(w, http.StatusCreated, outcome)
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	paths, err := s.Documents.List(r.Context(), dir)
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"paths": paths})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	doc, err := s.Documents.Load(r.Context(), path)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) listRenderers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Renderers.Registrations())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}
