package registry_test

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopRenderer struct{}

func (nopRenderer) Render(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

func TestRegistry_LazyConstruction(t *testing.T) {
	r := registry.New()

	var built atomic.Int32
	r.Register("text/markdown", 60, func() (ports.Renderer, error) {
		built.Add(1)
		return nopRenderer{}, nil
	})

	assert.Zero(t, built.Load(), "factory must not run at registration time")

	first, err := r.Get("text/markdown")
	require.NoError(t, err)
	second, err := r.Get("text/markdown")
	require.NoError(t, err)

	assert.Equal(t, int32(1), built.Load(), "factory runs exactly once")
	assert.Equal(t, first, second, "repeated lookups return the cached renderer")
}

func TestRegistry_UnknownMimeType(t *testing.T) {
	r := registry.New()
	_, err := r.Get("application/vnd.unknown+json")
	assert.ErrorIs(t, err, domain.ErrRendererNotFound)
}

func TestRegistry_FactoryError(t *testing.T) {
	r := registry.New()
	boom := errors.New("widget unavailable")
	r.Register("application/vnd.dataresource+json", 10, func() (ports.Renderer, error) {
		return nil, boom
	})

	_, err := r.Get("application/vnd.dataresource+json")
	assert.ErrorIs(t, err, boom)

	// The error is sticky: the factory is not retried.
	_, err = r.Get("application/vnd.dataresource+json")
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_SetRank(t *testing.T) {
	r := registry.New()

	var built atomic.Int32
	r.Register("text/plain", 120, func() (ports.Renderer, error) {
		built.Add(1)
		return nopRenderer{}, nil
	})
	r.Register("text/markdown", 60, func() (ports.Renderer, error) { return nopRenderer{}, nil })

	_, err := r.Get("text/plain")
	require.NoError(t, err)

	assert.True(t, r.SetRank("text/plain", 5))
	assert.False(t, r.SetRank("image/png", 5), "unregistered type cannot be reranked")

	mt, ok := r.Preferred([]string{"text/plain", "text/markdown"})
	require.True(t, ok)
	assert.Equal(t, "text/plain", mt)

	// Reranking keeps the constructed renderer.
	_, err = r.Get("text/plain")
	require.NoError(t, err)
	assert.Equal(t, int32(1), built.Load())
}

func TestRegistry_Preferred(t *testing.T) {
	r := registry.New()
	r.Register("text/plain", 120, func() (ports.Renderer, error) { return nopRenderer{}, nil })
	r.Register("application/vnd.dataresource+json", 10, func() (ports.Renderer, error) { return nopRenderer{}, nil })

	t.Run("Lowest Rank Wins", func(t *testing.T) {
		mt, ok := r.Preferred([]string{"text/plain", "application/vnd.dataresource+json"})
		require.True(t, ok)
		assert.Equal(t, "application/vnd.dataresource+json", mt)
	})

	t.Run("Unregistered Types Skipped", func(t *testing.T) {
		mt, ok := r.Preferred([]string{"image/png", "text/plain"})
		require.True(t, ok)
		assert.Equal(t, "text/plain", mt)
	})

	t.Run("Nothing Registered", func(t *testing.T) {
		_, ok := r.Preferred([]string{"image/png"})
		assert.False(t, ok)
	})
}
