package memory_test

import (
	"context"
	"testing"

	"github.com/stepbook/flownote/pkg/adapters/memory"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunDocumentManagerContract(t, memory.NewStore())
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	ref, err := store.NewUntitled(ctx, "ws", domain.KindNotebook)
	require.NoError(t, err)

	doc, err := store.Load(ctx, ref.Path)
	require.NoError(t, err)
	doc.Metadata["mutated"] = true

	reloaded, err := store.Load(ctx, ref.Path)
	require.NoError(t, err)
	_, ok := reloaded.Metadata["mutated"]
	assert.False(t, ok, "mutating a loaded snapshot must not leak into the store")
}

func TestMemoryStore_OpenMissingDocument(t *testing.T) {
	store := memory.NewStore()
	_, ok := store.Open(context.Background(), "ws/nothere.ipynb")
	assert.False(t, ok)
}
