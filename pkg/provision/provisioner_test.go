package provision_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManager is a scriptable DocumentManager double that records how the
// provisioner drives it.
type fakeManager struct {
	mu sync.Mutex

	createErr      error
	declineOpen    bool
	declineContext bool
	readyGate      chan struct{} // when set, Ready blocks until closed
	metadataErr    error
	saveErr        error

	created      []string
	setMetadata  int
	saves        int
	readyReached bool
}

type fakeHandle struct{ path string }

func (h *fakeHandle) Path() string { return h.path }

type fakeContext struct {
	mgr  *fakeManager
	path string
	meta domain.Metadata
}

func (f *fakeManager) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := dir + "/Untitled" + domain.NotebookExt
	if n := len(f.created); n > 0 {
		path = dir + "/Untitled" + string(rune('0'+n)) + domain.NotebookExt
	}
	f.created = append(f.created, path)
	return &domain.DocumentRef{Path: path, Kind: kind}, nil
}

func (f *fakeManager) Open(ctx context.Context, path string) (ports.Handle, bool) {
	if f.declineOpen {
		return nil, false
	}
	return &fakeHandle{path: path}, true
}

func (f *fakeManager) ContextFor(h ports.Handle) (ports.DocumentContext, bool) {
	if f.declineContext {
		return nil, false
	}
	return &fakeContext{mgr: f, path: h.Path(), meta: make(domain.Metadata)}, true
}

func (f *fakeManager) Load(ctx context.Context, path string) (*domain.Document, error) {
	return nil, domain.ErrDocumentNotFound
}

func (f *fakeManager) List(ctx context.Context, dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...), nil
}

func (c *fakeContext) Path() string { return c.path }

func (c *fakeContext) Ready(ctx context.Context) error {
	if c.mgr.readyGate != nil {
		select {
		case <-c.mgr.readyGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.mgr.mu.Lock()
	c.mgr.readyReached = true
	c.mgr.mu.Unlock()
	return nil
}

func (c *fakeContext) Model() ports.SharedModel { return c }

func (c *fakeContext) Save(ctx context.Context) error {
	c.mgr.mu.Lock()
	c.mgr.saves++
	c.mgr.mu.Unlock()
	return c.mgr.saveErr
}

func (c *fakeContext) SetMetadata(key string, value any) error {
	if c.mgr.metadataErr != nil {
		return c.mgr.metadataErr
	}
	c.mgr.mu.Lock()
	c.mgr.setMetadata++
	c.meta[key] = value
	c.mgr.mu.Unlock()
	return nil
}

func (c *fakeContext) GetMetadata(key string) (any, bool) {
	c.mgr.mu.Lock()
	defer c.mgr.mu.Unlock()
	v, ok := c.meta[key]
	return v, ok
}

func TestProvision_HappyPath(t *testing.T) {
	mgr := &fakeManager{}
	p := provision.New(mgr)

	outcome, err := p.Provision(context.Background(), "/workspace")
	require.NoError(t, err)

	assert.Equal(t, "/workspace/Untitled.ipynb", outcome.Path)
	assert.Equal(t, domain.StateSaved, outcome.State)
	assert.True(t, outcome.Tagged())
	assert.Equal(t, 1, mgr.setMetadata, "flag should be written exactly once")
	assert.Equal(t, 1, mgr.saves, "save should be invoked exactly once")
}

func TestProvision_NotIdempotent(t *testing.T) {
	mgr := &fakeManager{}
	p := provision.New(mgr)

	first, err := p.Provision(context.Background(), "/workspace")
	require.NoError(t, err)
	second, err := p.Provision(context.Background(), "/workspace")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path, "each call must create a new document")
	assert.Len(t, mgr.created, 2)
}

func TestProvision_OpenDeclined(t *testing.T) {
	mgr := &fakeManager{declineOpen: true}
	p := provision.New(mgr)

	outcome, err := p.Provision(context.Background(), "/workspace")
	require.NoError(t, err, "a declined open is not an error")

	assert.Equal(t, domain.StateUntagged, outcome.State)
	assert.False(t, outcome.Tagged())
	assert.Len(t, mgr.created, 1, "the file stays behind")
	assert.Zero(t, mgr.setMetadata, "no metadata write after a declined open")
	assert.Zero(t, mgr.saves, "no save after a declined open")
}

func TestProvision_ContextDeclined(t *testing.T) {
	mgr := &fakeManager{declineContext: true}
	p := provision.New(mgr)

	outcome, err := p.Provision(context.Background(), "/workspace")
	require.NoError(t, err)

	assert.Equal(t, domain.StateUntagged, outcome.State)
	assert.Zero(t, mgr.setMetadata)
	assert.Zero(t, mgr.saves)
}

func TestProvision_BlocksUntilReady(t *testing.T) {
	gate := make(chan struct{})
	mgr := &fakeManager{readyGate: gate}
	p := provision.New(mgr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Provision(context.Background(), "/workspace")
	}()

	// While readiness is pending, no metadata write may have happened.
	time.Sleep(20 * time.Millisecond)
	mgr.mu.Lock()
	assert.Zero(t, mgr.setMetadata, "no write before readiness")
	assert.False(t, mgr.readyReached)
	mgr.mu.Unlock()

	close(gate)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("provision did not resume after readiness")
	}
	assert.Equal(t, 1, mgr.setMetadata)
}

func TestProvision_CreateFailure(t *testing.T) {
	createErr := errors.New("storage unavailable")
	mgr := &fakeManager{createErr: createErr}
	p := provision.New(mgr)

	outcome, err := p.Provision(context.Background(), "/workspace")
	require.ErrorIs(t, err, createErr)
	assert.Nil(t, outcome)
	assert.Empty(t, mgr.created, "nothing is created when the store rejects")
}

func TestProvision_MetadataFailure(t *testing.T) {
	metaErr := errors.New("metadata store rejected write")
	mgr := &fakeManager{metadataErr: metaErr}
	p := provision.New(mgr)

	_, err := p.Provision(context.Background(), "/workspace")
	require.ErrorIs(t, err, metaErr)
	assert.Len(t, mgr.created, 1, "the untagged document exists")
	assert.Zero(t, mgr.saves, "no save after a failed metadata write")
}

func TestProvision_SaveFailure(t *testing.T) {
	saveErr := errors.New("disk full")
	mgr := &fakeManager{saveErr: saveErr}
	p := provision.New(mgr)

	_, err := p.Provision(context.Background(), "/workspace")
	require.ErrorIs(t, err, saveErr)
	assert.Equal(t, 1, mgr.setMetadata, "flag was set in memory before the save failed")
}

func TestProvision_TransitionHooks(t *testing.T) {
	var states []domain.ProvisionState
	hooks := domain.ProvisionHooks{
		OnTransition: func(_ context.Context, ev *domain.ProvisionEvent) {
			states = append(states, ev.State)
		},
	}

	t.Run("Full Sequence", func(t *testing.T) {
		states = nil
		p := provision.New(&fakeManager{}, provision.WithHooks(hooks))
		_, err := p.Provision(context.Background(), "ws")
		require.NoError(t, err)

		assert.Equal(t, []domain.ProvisionState{
			domain.StateCreated,
			domain.StateOpened,
			domain.StateContextAcquired,
			domain.StateReady,
			domain.StateTagged,
			domain.StateSaved,
		}, states)
	})

	t.Run("Early Exit", func(t *testing.T) {
		states = nil
		p := provision.New(&fakeManager{declineOpen: true}, provision.WithHooks(hooks))
		_, err := p.Provision(context.Background(), "ws")
		require.NoError(t, err)

		assert.Equal(t, []domain.ProvisionState{
			domain.StateCreated,
			domain.StateUntagged,
		}, states)
	})
}
