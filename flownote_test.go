package flownote_test

import (
	"context"
	"testing"

	"github.com/stepbook/flownote"
	"github.com/stepbook/flownote/pkg/adapters/memory"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresRootOrStore(t *testing.T) {
	_, err := flownote.New("")
	assert.Error(t, err)

	app, err := flownote.New("", flownote.WithDocumentManager(memory.NewStore()))
	require.NoError(t, err)
	assert.NotNil(t, app)
}

func TestApp_NewNotebook_FileStore(t *testing.T) {
	app, err := flownote.New(t.TempDir())
	require.NoError(t, err)

	outcome, err := app.NewNotebook(context.Background(), "flows")
	require.NoError(t, err)
	assert.Equal(t, "flows/Untitled.ipynb", outcome.Path)
	assert.True(t, outcome.Tagged())

	doc, err := app.Documents().Load(context.Background(), outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, true, doc.Metadata[domain.MetadataUseStepbook])
}

type recordingIntegration struct {
	managed []string
}

func (r *recordingIntegration) Manage(_ context.Context, panel ports.DocumentContext) {
	r.managed = append(r.managed, panel.Path())
}

func TestApp_AttachIntegration(t *testing.T) {
	app, err := flownote.New("", flownote.WithDocumentManager(memory.NewStore()))
	require.NoError(t, err)
	ctx := context.Background()

	// One flagged notebook, one plain one.
	flagged, err := app.NewNotebook(ctx, "ws")
	require.NoError(t, err)

	plainRef, err := app.Documents().NewUntitled(ctx, "ws", domain.KindNotebook)
	require.NoError(t, err)

	_, err = app.Open(ctx, flagged.Path)
	require.NoError(t, err)
	_, err = app.Open(ctx, plainRef.Path)
	require.NoError(t, err)

	integration := &recordingIntegration{}
	app.AttachIntegration(ctx, integration)

	assert.Equal(t, []string{flagged.Path}, integration.managed,
		"only flagged panels reach the integration")

	// A panel opened after attachment is routed too.
	second, err := app.NewNotebook(ctx, "ws")
	require.NoError(t, err)
	_, err = app.Open(ctx, second.Path)
	require.NoError(t, err)

	assert.Equal(t, []string{flagged.Path, second.Path}, integration.managed)
}

func TestApp_OpenDeclined(t *testing.T) {
	app, err := flownote.New("", flownote.WithDocumentManager(memory.NewStore()))
	require.NoError(t, err)

	_, err = app.Open(context.Background(), "missing.ipynb")
	assert.Error(t, err, "opening a specific missing document is an error")
}
