package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

type lockingMiddleware struct {
	next   ports.DocumentManager
	locker ports.DistributedLocker
	ttl    time.Duration
}

// NewLockingMiddleware creates a middleware that serializes untitled-name
// allocation across replicas. Without it two instances sharing a store can
// both pick Untitled1.ipynb; the lock is held only for the create call.
func NewLockingMiddleware(locker ports.DistributedLocker, ttl time.Duration) Middleware {
	return func(next ports.DocumentManager) ports.DocumentManager {
		return &lockingMiddleware{next: next, locker: locker, ttl: ttl}
	}
}

func (m *lockingMiddleware) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	unlock, err := m.locker.Lock(ctx, "untitled:"+dir, m.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire create lock: %w", err)
	}
	defer func() {
		_ = unlock(ctx)
	}()

	return m.next.NewUntitled(ctx, dir, kind)
}

func (m *lockingMiddleware) Open(ctx context.Context, path string) (ports.Handle, bool) {
	return m.next.Open(ctx, path)
}

func (m *lockingMiddleware) ContextFor(h ports.Handle) (ports.DocumentContext, bool) {
	return m.next.ContextFor(h)
}

func (m *lockingMiddleware) Load(ctx context.Context, path string) (*domain.Document, error) {
	return m.next.Load(ctx, path)
}

func (m *lockingMiddleware) List(ctx context.Context, dir string) ([]string, error) {
	return m.next.List(ctx, dir)
}
