package render

import (
	"io"
	"strings"

	"github.com/stepbook/flownote/pkg/ports"
)

// PlainText passes text/plain payloads through, ensuring a trailing newline.
type PlainText struct{}

// NewPlainText constructs the plain text renderer. It matches the
// ports.RendererFactory signature.
func NewPlainText() (ports.Renderer, error) {
	return &PlainText{}, nil
}

func (PlainText) Render(w io.Writer, data []byte) error {
	s := string(data)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
