package observability_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HooksAndExposition(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()

	ctx := context.Background()
	for _, state := range []domain.ProvisionState{
		domain.StateCreated,
		domain.StateOpened,
		domain.StateContextAcquired,
		domain.StateReady,
		domain.StateTagged,
		domain.StateSaved,
	} {
		hooks.OnTransition(ctx, &domain.ProvisionEvent{State: state, Path: "ws/Untitled.ipynb"})
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `flownote_provision_transitions_total{state="saved"} 1`)
	assert.Contains(t, string(body), `flownote_provision_outcomes_total{state="saved"} 1`)
}
