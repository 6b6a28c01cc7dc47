package registry

import (
	"fmt"
	"sync"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

// entry holds a registered factory and its lazily constructed renderer.
type entry struct {
	factory  ports.RendererFactory
	rank     int
	once     sync.Once
	renderer ports.Renderer
	err      error
}

// Registry manages the available renderers, keyed by MIME type.
// Factories run at most once, on first lookup of their MIME type.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// Registration describes one registered MIME type.
type Registration struct {
	MimeType string `json:"mime_type"`
	Rank     int    `json:"rank"`
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Register adds a renderer factory for a MIME type. Lower rank wins when a
// MIME bundle offers several registered types. Re-registering a MIME type
// replaces the previous factory (and discards any constructed renderer).
func (r *Registry) Register(mimeType string, rank int, factory ports.RendererFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[mimeType] = &entry{factory: factory, rank: rank}
}

// Get returns the renderer for a MIME type, constructing it on first use.
// Returns domain.ErrRendererNotFound if the type was never registered.
func (r *Registry) Get(mimeType string) (ports.Renderer, error) {
	r.mu.RLock()
	e, ok := r.entries[mimeType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRendererNotFound, mimeType)
	}

	e.once.Do(func() {
		e.renderer, e.err = e.factory()
	})
	if e.err != nil {
		return nil, fmt.Errorf("renderer factory for %s failed: %w", mimeType, e.err)
	}
	return e.renderer, nil
}

// SetRank changes the rank of an already registered MIME type without
// discarding its factory or constructed renderer. Returns false when the
// type was never registered.
func (r *Registry) SetRank(mimeType string, rank int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[mimeType]
	if !ok {
		return false
	}
	e.rank = rank
	return true
}

// Preferred picks the registered MIME type with the lowest rank out of the
// types present in an output's MIME bundle. Returns false when none of the
// offered types is registered.
func (r *Registry) Preferred(mimeTypes []string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := ""
	bestRank := 0
	for _, mt := range mimeTypes {
		e, ok := r.entries[mt]
		if !ok {
			continue
		}
		if best == "" || e.rank < bestRank {
			best = mt
			bestRank = e.rank
		}
	}
	return best, best != ""
}

// Registrations lists the registered MIME types and their ranks.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, 0, len(r.entries))
	for mt, e := range r.entries {
		regs = append(regs, Registration{MimeType: mt, Rank: e.rank})
	}
	return regs
}
