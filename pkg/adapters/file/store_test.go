package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stepbook/flownote/pkg/adapters/file"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentManagerContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_UntitledNaming(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	first, err := store.NewUntitled(ctx, "", domain.KindNotebook)
	require.NoError(t, err)
	second, err := store.NewUntitled(ctx, "", domain.KindNotebook)
	require.NoError(t, err)

	assert.Equal(t, "Untitled.ipynb", first.Path)
	assert.Equal(t, "Untitled1.ipynb", second.Path)
}

func TestFileStore_PersistedEnvelope(t *testing.T) {
	base := t.TempDir()
	store := file.NewStore(base)
	ctx := context.Background()

	ref, err := store.NewUntitled(ctx, "notes", domain.KindNotebook)
	require.NoError(t, err)

	h, ok := store.Open(ctx, ref.Path)
	require.True(t, ok)
	dc, ok := store.ContextFor(h)
	require.True(t, ok)
	require.NoError(t, dc.Ready(ctx))
	require.NoError(t, dc.Model().SetMetadata(domain.MetadataUseStepbook, true))
	require.NoError(t, dc.Save(ctx))

	// Inspect the raw file: the flag must be inside the metadata map of a
	// well-formed notebook envelope.
	raw, err := os.ReadFile(filepath.Join(base, "notes", "Untitled.ipynb"))
	require.NoError(t, err)

	var envelope struct {
		Cells    []any          `json:"cells"`
		Metadata map[string]any `json:"metadata"`
		NBFormat int            `json:"nbformat"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, 4, envelope.NBFormat)
	assert.Equal(t, true, envelope.Metadata["use_stepbook"])
	assert.NotNil(t, envelope.Cells)
}

func TestFileStore_OpenDeclines(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	t.Run("Wrong Extension", func(t *testing.T) {
		_, ok := store.Open(ctx, "readme.md")
		assert.False(t, ok)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, ok := store.Open(ctx, "ghost.ipynb")
		assert.False(t, ok)
	})
}

func TestFileStore_CorruptNotebook(t *testing.T) {
	base := t.TempDir()
	store := file.NewStore(base)
	ctx := context.Background()

	p := filepath.Join(base, "broken.ipynb")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0644))

	h, ok := store.Open(ctx, "broken.ipynb")
	require.True(t, ok, "open only checks existence, not content")
	dc, ok := store.ContextFor(h)
	require.True(t, ok)

	err := dc.Ready(ctx)
	assert.Error(t, err, "readiness fails when the content cannot be parsed")
}
