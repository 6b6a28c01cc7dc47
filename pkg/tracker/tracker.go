// Package tracker keeps the set of open notebook panels and fans each one
// out to registered handlers. A handler connected at any point sees every
// panel: the ones already open when it connects and every panel added later.
package tracker

import (
	"sync"

	"github.com/stepbook/flownote/pkg/ports"
)

// Handler is invoked once per tracked panel.
type Handler func(ports.DocumentContext)

// Tracker is safe for concurrent use. Handlers run synchronously on the
// goroutine that calls Connect or Add, outside the tracker's lock, so they
// may call back into the tracker.
type Tracker struct {
	mu       sync.Mutex
	panels   []ports.DocumentContext
	handlers []Handler
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Connect registers a handler. It is applied immediately to every panel
// currently tracked, then to every panel added in the future.
func (t *Tracker) Connect(h Handler) {
	t.mu.Lock()
	current := append([]ports.DocumentContext(nil), t.panels...)
	t.handlers = append(t.handlers, h)
	t.mu.Unlock()

	for _, p := range current {
		h(p)
	}
}

// Add tracks a newly opened panel and notifies every connected handler.
func (t *Tracker) Add(panel ports.DocumentContext) {
	t.mu.Lock()
	t.panels = append(t.panels, panel)
	handlers := append([]Handler(nil), t.handlers...)
	t.mu.Unlock()

	for _, h := range handlers {
		h(panel)
	}
}

// Len returns the number of tracked panels.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.panels)
}
