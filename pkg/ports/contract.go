package ports

import (
	"context"
	"testing"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentManagerContract runs a suite of tests to verify that a
// DocumentManager implementation adheres to the defined interface contract.
func RunDocumentManagerContract(t *testing.T, mgr DocumentManager) {
	ctx := context.Background()

	t.Run("NewUntitled Unique Names", func(t *testing.T) {
		first, err := mgr.NewUntitled(ctx, "contract", domain.KindNotebook)
		require.NoError(t, err, "NewUntitled should not return error")
		second, err := mgr.NewUntitled(ctx, "contract", domain.KindNotebook)
		require.NoError(t, err)

		assert.NotEqual(t, first.Path, second.Path, "two creates must yield two distinct documents")
		assert.Equal(t, domain.KindNotebook, first.Kind)
	})

	t.Run("Open Tag Save Roundtrip", func(t *testing.T) {
		ref, err := mgr.NewUntitled(ctx, "contract-roundtrip", domain.KindNotebook)
		require.NoError(t, err)

		h, ok := mgr.Open(ctx, ref.Path)
		require.True(t, ok, "Open should accept a notebook path")
		assert.Equal(t, ref.Path, h.Path())

		dc, ok := mgr.ContextFor(h)
		require.True(t, ok, "ContextFor should resolve a context for an open handle")

		require.NoError(t, dc.Ready(ctx))
		require.NoError(t, dc.Model().SetMetadata(domain.MetadataUseStepbook, true))
		require.NoError(t, dc.Save(ctx))

		doc, err := mgr.Load(ctx, ref.Path)
		require.NoError(t, err)
		assert.Equal(t, true, doc.Metadata[domain.MetadataUseStepbook])
	})

	t.Run("Open Declines Unsupported Path", func(t *testing.T) {
		_, ok := mgr.Open(ctx, "contract/notes.txt")
		assert.False(t, ok, "Open must decline non-notebook paths")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := mgr.Load(ctx, "contract/missing"+domain.NotebookExt)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ref1, err := mgr.NewUntitled(ctx, "contract-list", domain.KindNotebook)
		require.NoError(t, err)
		ref2, err := mgr.NewUntitled(ctx, "contract-list", domain.KindNotebook)
		require.NoError(t, err)

		paths, err := mgr.List(ctx, "contract-list")
		require.NoError(t, err)
		assert.Contains(t, paths, ref1.Path)
		assert.Contains(t, paths, ref2.Path)
	})
}
