package middleware

import (
	"context"
	"log/slog"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DocumentManager
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs document operations at
// debug level, including store declines, which are otherwise silent.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DocumentManager) ports.DocumentManager {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	ref, err := m.next.NewUntitled(ctx, dir, kind)
	if err != nil {
		m.logger.Debug("create failed", "dir", dir, "kind", kind, "err", err)
		return nil, err
	}
	m.logger.Debug("created document", "path", ref.Path, "kind", ref.Kind)
	return ref, nil
}

func (m *loggingMiddleware) Open(ctx context.Context, path string) (ports.Handle, bool) {
	h, ok := m.next.Open(ctx, path)
	if !ok {
		m.logger.Debug("store declined open", "path", path)
	}
	return h, ok
}

func (m *loggingMiddleware) ContextFor(h ports.Handle) (ports.DocumentContext, bool) {
	dc, ok := m.next.ContextFor(h)
	if !ok {
		m.logger.Debug("no editing context", "path", h.Path())
	}
	return dc, ok
}

func (m *loggingMiddleware) Load(ctx context.Context, path string) (*domain.Document, error) {
	doc, err := m.next.Load(ctx, path)
	if err != nil {
		m.logger.Debug("load failed", "path", path, "err", err)
	}
	return doc, err
}

func (m *loggingMiddleware) List(ctx context.Context, dir string) ([]string, error) {
	return m.next.List(ctx, dir)
}
