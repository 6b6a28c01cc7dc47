package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/stepbook/flownote/pkg/ports"
)

// Markdown renders text/markdown payloads using glamour.
type Markdown struct {
	mu sync.Mutex
	tr *glamour.TermRenderer
}

// NewMarkdown constructs the markdown renderer with automatic light/dark
// style detection. It matches the ports.RendererFactory signature.
func NewMarkdown() (ports.Renderer, error) {
	return NewMarkdownStyled(glamour.WithAutoStyle())
}

// NewMarkdownStyled constructs a markdown renderer with explicit glamour
// options (e.g. a fixed style in tests or non-tty environments).
func NewMarkdownStyled(opts ...glamour.TermRendererOption) (ports.Renderer, error) {
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	return &Markdown{tr: tr}, nil
}

// Render writes the styled markdown to w.
func (m *Markdown) Render(w io.Writer, data []byte) error {
	// glamour's TermRenderer is stateful; serialize access.
	m.mu.Lock()
	out, err := m.tr.Render(string(data))
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("markdown render failed: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
