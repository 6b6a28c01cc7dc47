package ports

import "io"

// Renderer turns a single MIME payload into terminal output.
type Renderer interface {
	Render(w io.Writer, data []byte) error
}

// RendererFactory constructs a renderer. Factories are invoked lazily, on
// first use of their MIME type, so expensive renderers cost nothing until a
// matching output actually appears.
type RendererFactory func() (Renderer, error)
