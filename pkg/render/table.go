package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/stepbook/flownote/pkg/ports"
)

// dataResource is the wire shape of application/vnd.dataresource+json:
// a tabular payload with a field schema and row objects.
type dataResource struct {
	Schema struct {
		Fields []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"fields"`
	} `json:"schema"`
	Data []map[string]any `json:"data"`
}

// Table renders data-resource payloads as an aligned text table. Header
// styling degrades to plain text on non-tty writers.
type Table struct{}

// NewTable constructs the table renderer. It matches the
// ports.RendererFactory signature.
func NewTable() (ports.Renderer, error) {
	return &Table{}, nil
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer, data []byte) error {
	var res dataResource
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("invalid data resource payload: %w", err)
	}
	if len(res.Schema.Fields) == 0 {
		return fmt.Errorf("data resource payload has no schema fields")
	}

	cols := make([]string, len(res.Schema.Fields))
	for i, f := range res.Schema.Fields {
		cols[i] = f.Name
	}

	// Column widths from header and cell values.
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	rows := make([][]string, len(res.Data))
	for ri, row := range res.Data {
		cells := make([]string, len(cols))
		for ci, c := range cols {
			cells[ci] = formatCell(row[c])
			if len(cells[ci]) > widths[ci] {
				widths[ci] = len(cells[ci])
			}
		}
		rows[ri] = cells
	}

	out := termenv.NewOutput(w)
	var b strings.Builder

	for ci, c := range cols {
		if ci > 0 {
			b.WriteString("  ")
		}
		b.WriteString(out.String(pad(c, widths[ci])).Bold().String())
	}
	b.WriteByte('\n')

	for ci := range cols {
		if ci > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", widths[ci]))
	}
	b.WriteByte('\n')

	for _, cells := range rows {
		for ci, cell := range cells {
			if ci > 0 {
				b.WriteString("  ")
			}
			b.WriteString(pad(cell, widths[ci]))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers arrive as float64; keep integers clean.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
