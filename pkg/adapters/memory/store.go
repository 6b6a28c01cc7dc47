// Package memory implements ports.DocumentManager in memory.
// Useful for tests and for embedding FlowNote without a filesystem.
package memory

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

// Store holds documents in a map. Safe for concurrent use.
// Documents are cloned on read and write so callers never share state
// with the store.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*domain.Document
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]*domain.Document),
	}
}

// NewUntitled creates a uniquely named notebook under dir.
func (s *Store) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	if kind != domain.KindNotebook {
		return nil, fmt.Errorf("unsupported document kind: %s", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; ; i++ {
		candidate := path.Join(dir, untitledName(i))
		if _, exists := s.docs[candidate]; exists {
			continue
		}
		s.docs[candidate] = domain.NewNotebook(candidate)
		return &domain.DocumentRef{Path: candidate, Kind: kind}, nil
	}
}

// Open hands out a handle for notebook paths. It declines (ok=false) for
// unsupported extensions and for paths it has never seen; a decline is host
// policy, not an error.
func (s *Store) Open(ctx context.Context, p string) (ports.Handle, bool) {
	if !strings.HasSuffix(p, domain.NotebookExt) {
		return nil, false
	}
	s.mu.RLock()
	_, exists := s.docs[p]
	s.mu.RUnlock()
	if !exists {
		return nil, false
	}
	return &handle{path: p}, true
}

// ContextFor resolves an editing context for an open handle.
func (s *Store) ContextFor(h ports.Handle) (ports.DocumentContext, bool) {
	hd, ok := h.(*handle)
	if !ok {
		return nil, false
	}
	return &editContext{store: s, path: hd.path}, true
}

// Load returns a snapshot of the stored document.
func (s *Store) Load(ctx context.Context, p string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[p]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

// List returns the paths of all documents under dir.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := ""
	if dir != "" {
		prefix = strings.TrimSuffix(dir, "/") + "/"
	}

	paths := make([]string, 0)
	for p := range s.docs {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func (s *Store) put(doc *domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Path] = doc.Clone()
}

func untitledName(i int) string {
	if i == 0 {
		return "Untitled" + domain.NotebookExt
	}
	return fmt.Sprintf("Untitled%d%s", i, domain.NotebookExt)
}

type handle struct {
	path string
}

func (h *handle) Path() string { return h.path }

// editContext is the in-memory editing context. Ready loads a private copy
// of the document; Save writes it back.
type editContext struct {
	store *Store
	path  string

	mu  sync.Mutex
	doc *domain.Document
}

func (c *editContext) Path() string { return c.path }

// Ready loads the document content. The in-memory store is always ready, so
// this resolves immediately (or fails if the document vanished).
func (c *editContext) Ready(ctx context.Context) error {
	doc, err := c.store.Load(ctx, c.path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
	return nil
}

// Model returns the shared metadata model. Only valid after Ready.
func (c *editContext) Model() ports.SharedModel {
	return &model{ctx: c}
}

// Save persists the edited document back into the store.
func (c *editContext) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return fmt.Errorf("document %s not loaded", c.path)
	}
	c.store.put(c.doc)
	return nil
}

type model struct {
	ctx *editContext
}

func (m *model) SetMetadata(key string, value any) error {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.doc == nil {
		return fmt.Errorf("document %s not loaded", m.ctx.path)
	}
	m.ctx.doc.Metadata[key] = value
	return nil
}

func (m *model) GetMetadata(key string) (any, bool) {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.doc == nil {
		return nil, false
	}
	v, ok := m.ctx.doc.Metadata[key]
	return v, ok
}
