package tracker_test

import (
	"context"
	"testing"

	"github.com/stepbook/flownote/pkg/ports"
	"github.com/stepbook/flownote/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

type stubPanel struct{ path string }

func (s *stubPanel) Path() string { return s.path }

func (s *stubPanel) Ready(ctx context.Context) error { return nil }

func (s *stubPanel) Model() ports.SharedModel { return nil }

func (s *stubPanel) Save(ctx context.Context) error { return nil }

func TestTracker_CurrentAndFuturePanels(t *testing.T) {
	tr := tracker.New()

	existing := &stubPanel{path: "a.ipynb"}
	tr.Add(existing)

	var seen []string
	tr.Connect(func(p ports.DocumentContext) {
		seen = append(seen, p.Path())
	})

	assert.Equal(t, []string{"a.ipynb"}, seen, "handler sees panels that were already open")

	tr.Add(&stubPanel{path: "b.ipynb"})
	assert.Equal(t, []string{"a.ipynb", "b.ipynb"}, seen, "handler sees panels opened later")
	assert.Equal(t, 2, tr.Len())
}

func TestTracker_MultipleHandlers(t *testing.T) {
	tr := tracker.New()

	var first, second int
	tr.Connect(func(ports.DocumentContext) { first++ })
	tr.Connect(func(ports.DocumentContext) { second++ })

	tr.Add(&stubPanel{path: "a.ipynb"})
	tr.Add(&stubPanel{path: "b.ipynb"})

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}
