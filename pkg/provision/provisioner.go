package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stepbook/flownote/internal/logging"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

// Provisioner creates a new notebook, tags it with the use_stepbook flag and
// persists the tag, using a host-provided document manager.
//
// Each invocation is one linear, single-pass sequence:
//
//	Created -> Opened -> ContextAcquired -> Ready -> Tagged -> Saved
//
// with an early exit to the terminal Untagged state when the open or
// context-resolution step declines. Declines are not errors: the created file
// simply stays untagged. Failures from create, metadata write or save
// propagate to the caller; there are no retries. Concurrent invocations are
// independent — each creates its own document, and name uniqueness is the
// document manager's responsibility.
type Provisioner struct {
	docs   ports.DocumentManager
	logger *slog.Logger
	hooks  domain.ProvisionHooks
}

// Option configures the Provisioner.
type Option func(*Provisioner)

// WithLogger sets a structured logger for provisioning events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// WithHooks registers observability hooks, invoked on every state transition.
func WithHooks(hooks domain.ProvisionHooks) Option {
	return func(p *Provisioner) {
		p.hooks = hooks
	}
}

// New creates a Provisioner backed by the given document manager.
func New(docs ports.DocumentManager, opts ...Option) *Provisioner {
	p := &Provisioner{
		docs:   docs,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provision runs one full provisioning sequence under dir. An empty dir means
// the store root.
//
// The returned outcome always names the created document and the terminal
// state it reached (Saved or Untagged). Outcome is nil only when an error is
// returned before the document exists.
func (p *Provisioner) Provision(ctx context.Context, dir string) (*domain.Outcome, error) {
	ref, err := p.docs.NewUntitled(ctx, dir, domain.KindNotebook)
	if err != nil {
		return nil, fmt.Errorf("failed to create notebook: %w", err)
	}
	p.transition(ctx, domain.StateCreated, ref.Path)

	handle, ok := p.docs.Open(ctx, ref.Path)
	if !ok {
		// Host policy declined the handle. Leave the created file untagged.
		p.logger.Debug("open declined, leaving notebook untagged", "path", ref.Path)
		return p.untagged(ctx, ref.Path), nil
	}
	p.transition(ctx, domain.StateOpened, ref.Path)

	dc, ok := p.docs.ContextFor(handle)
	if !ok {
		p.logger.Debug("no editing context, leaving notebook untagged", "path", ref.Path)
		return p.untagged(ctx, ref.Path), nil
	}
	p.transition(ctx, domain.StateContextAcquired, ref.Path)

	// The single suspension point: block until the host reports the content
	// loaded. No timeout here; callers cancel through ctx if at all.
	if err := dc.Ready(ctx); err != nil {
		return nil, fmt.Errorf("notebook %s never became ready: %w", ref.Path, err)
	}
	p.transition(ctx, domain.StateReady, ref.Path)

	if err := dc.Model().SetMetadata(domain.MetadataUseStepbook, true); err != nil {
		return nil, fmt.Errorf("failed to tag notebook %s: %w", ref.Path, err)
	}
	p.transition(ctx, domain.StateTagged, ref.Path)

	if err := dc.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to save notebook %s: %w", ref.Path, err)
	}
	p.transition(ctx, domain.StateSaved, ref.Path)

	p.logger.Info("notebook provisioned", "path", ref.Path)
	return &domain.Outcome{Path: ref.Path, State: domain.StateSaved}, nil
}

func (p *Provisioner) untagged(ctx context.Context, path string) *domain.Outcome {
	p.transition(ctx, domain.StateUntagged, path)
	return &domain.Outcome{Path: path, State: domain.StateUntagged}
}

func (p *Provisioner) transition(ctx context.Context, state domain.ProvisionState, path string) {
	if p.hooks.OnTransition == nil {
		return
	}
	p.hooks.OnTransition(ctx, &domain.ProvisionEvent{
		Timestamp: time.Now(),
		State:     state,
		Path:      path,
	})
}
