package flownote

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/stepbook/flownote/internal/dto"
	"github.com/stepbook/flownote/internal/logging"
	"github.com/stepbook/flownote/pkg/adapters/file"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/provision"
	"github.com/stepbook/flownote/pkg/registry"
	"github.com/stepbook/flownote/pkg/render"
	"github.com/stepbook/flownote/pkg/tracker"
)

// Version of the FlowNote toolkit.
const Version = "0.3.0"

// Integration is the external collaborator that attaches flow-driven
// behavior to a flagged notebook panel. FlowNote only routes panels to it;
// what "manage" means is entirely the integration's business.
type Integration interface {
	Manage(ctx context.Context, panel ports.DocumentContext)
}

// App is the high-level entry point for the FlowNote library. It wires a
// document store, the provisioner, the renderer registry and the panel
// tracker behind a simplified API.
type App struct {
	docs      ports.DocumentManager
	prov      *provision.Provisioner
	renderers *registry.Registry
	panels    *tracker.Tracker
	logger    *slog.Logger
	hooks     domain.ProvisionHooks
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithDocumentManager injects a custom store, bypassing the default
// filesystem store.
func WithDocumentManager(docs ports.DocumentManager) Option {
	return func(a *App) {
		a.docs = docs
	}
}

// WithLogger sets a structured logger for the app and its provisioner.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithProvisionHooks registers observability hooks for provisioning runs.
func WithProvisionHooks(hooks domain.ProvisionHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// New initializes a FlowNote App. By default it stores notebooks on the
// filesystem under root; WithDocumentManager overrides that, in which case
// root may be empty. The built-in renderers are always registered; callers
// may re-register MIME types with their own factories afterwards.
func New(root string, opts ...Option) (*App, error) {
	app := &App{
		renderers: registry.New(),
		panels:    tracker.New(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.docs == nil {
		if root == "" {
			return nil, fmt.Errorf("root is required when no custom document manager is provided")
		}
		absPath, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("invalid root path: %w", err)
		}
		app.docs = file.NewStore(absPath)
	}

	if app.logger == nil {
		app.logger = logging.NewNop()
	}

	render.RegisterDefaults(app.renderers)

	app.prov = provision.New(app.docs,
		provision.WithLogger(app.logger),
		provision.WithHooks(app.hooks),
	)

	return app, nil
}

// NewNotebook provisions a new flagged notebook under dir. See
// provision.Provisioner for the exact sequence and its early-exit behavior.
func (a *App) NewNotebook(ctx context.Context, dir string) (*domain.Outcome, error) {
	return a.prov.Provision(ctx, dir)
}

// Open opens an existing notebook, waits until its content is loaded and
// registers the panel with the tracker. Unlike provisioning, a store decline
// here is an error: the caller asked for this specific document.
func (a *App) Open(ctx context.Context, path string) (ports.DocumentContext, error) {
	h, ok := a.docs.Open(ctx, path)
	if !ok {
		return nil, fmt.Errorf("store declined to open %s", path)
	}
	dc, ok := a.docs.ContextFor(h)
	if !ok {
		return nil, fmt.Errorf("no editing context for %s", path)
	}
	if err := dc.Ready(ctx); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	a.panels.Add(dc)
	return dc, nil
}

// AttachIntegration routes every current and future panel whose metadata
// carries the use_stepbook flag to the integration.
func (a *App) AttachIntegration(ctx context.Context, integration Integration) {
	a.panels.Connect(func(panel ports.DocumentContext) {
		raw, ok := panel.Model().GetMetadata(domain.MetadataUseStepbook)
		if !ok {
			return
		}
		meta, err := dto.DecodeMetadata(domain.Metadata{domain.MetadataUseStepbook: raw})
		if err != nil || !meta.UseStepbook {
			return
		}
		a.logger.Debug("attaching integration", "path", panel.Path())
		integration.Manage(ctx, panel)
	})
}

// Documents exposes the underlying document manager.
func (a *App) Documents() ports.DocumentManager { return a.docs }

// Renderers exposes the MIME renderer registry.
func (a *App) Renderers() *registry.Registry { return a.renderers }

// Panels exposes the notebook panel tracker.
func (a *App) Panels() *tracker.Tracker { return a.panels }
