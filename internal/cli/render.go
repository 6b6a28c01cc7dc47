package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/registry"
	"github.com/stepbook/flownote/pkg/render"
)

// RenderOptions contains the configuration for the 'render' command.
type RenderOptions struct {
	ConfigPath string
	Path       string
	Debug      bool
	// Plain forces style-free output. It is also set automatically when
	// stdout is not a terminal.
	Plain bool
}

// RunRender loads a notebook and renders its cells to w. Markdown cells are
// rendered from their source; code cell outputs go through the registry,
// which picks the best registered MIME type per output.
func RunRender(ctx context.Context, w io.Writer, opts RenderOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger := createLogger(cfg.LogLevel, opts.Debug)
	app, err := buildApp(cfg, logger, domain.ProvisionHooks{})
	if err != nil {
		return err
	}

	if opts.Plain || !isTerminal(os.Stdout) {
		app.Renderers().Register(render.MimeMarkdown, render.RankMarkdown, func() (ports.Renderer, error) {
			return render.NewMarkdownStyled(glamour.WithStandardStyle("notty"))
		})
	}

	doc, err := app.Documents().Load(ctx, opts.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", opts.Path, err)
	}

	return renderDocument(w, doc, app.Renderers())
}

func renderDocument(w io.Writer, doc *domain.Document, reg *registry.Registry) error {
	for _, cell := range doc.Cells {
		switch cell.Type {
		case "markdown":
			r, err := reg.Get(render.MimeMarkdown)
			if err != nil {
				return err
			}
			if err := r.Render(w, []byte(cell.Source)); err != nil {
				return fmt.Errorf("markdown cell failed: %w", err)
			}
		default:
			for _, out := range cell.Outputs {
				mimeTypes := make([]string, 0, len(out.Data))
				for mt := range out.Data {
					mimeTypes = append(mimeTypes, mt)
				}
				best, ok := reg.Preferred(mimeTypes)
				if !ok {
					continue
				}
				r, err := reg.Get(best)
				if err != nil {
					return err
				}
				if err := r.Render(w, []byte(out.Data[best])); err != nil {
					return fmt.Errorf("output (%s) failed: %w", best, err)
				}
			}
		}
	}
	return nil
}
