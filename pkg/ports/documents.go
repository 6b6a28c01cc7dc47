package ports

import (
	"context"

	"github.com/stepbook/flownote/pkg/domain"
)

// DocumentManager is the host-side document service consumed by the
// provisioner. Storage backends (file, memory, redis) implement it.
type DocumentManager interface {
	// NewUntitled creates a new, uniquely named document of the given kind
	// under dir. An empty dir means the store root. The returned ref carries
	// the final path chosen by the store.
	NewUntitled(ctx context.Context, dir string, kind string) (*domain.DocumentRef, error)

	// Open prepares a document for editing. ok is false when the store
	// declines to handle the path (e.g. unsupported document kind). A decline
	// is host policy, not an error.
	Open(ctx context.Context, path string) (handle Handle, ok bool)

	// ContextFor resolves the editing context for an open handle. ok is false
	// when no context can be obtained for the handle.
	ContextFor(handle Handle) (dc DocumentContext, ok bool)

	// Load returns a snapshot of the persisted document.
	// Returns domain.ErrDocumentNotFound if the path does not exist.
	Load(ctx context.Context, path string) (*domain.Document, error)

	// List returns the paths of all documents under dir.
	List(ctx context.Context, dir string) ([]string, error)
}

// Handle is an opaque reference to an opened document.
type Handle interface {
	Path() string
}

// DocumentContext is the editing context of an opened document.
type DocumentContext interface {
	// Path of the underlying document.
	Path() string

	// Ready blocks until the document content is fully loaded. There is no
	// timeout; cancellation happens through ctx at the host layer.
	Ready(ctx context.Context) error

	// Model returns the canonical, collaboration-safe metadata store.
	// Only valid after Ready has returned nil.
	Model() SharedModel

	// Save persists the document, including metadata changes.
	Save(ctx context.Context) error
}

// SharedModel is the canonical in-memory representation of a document's
// metadata, as opposed to ephemeral view state.
type SharedModel interface {
	SetMetadata(key string, value any) error
	GetMetadata(key string) (any, bool)
}
