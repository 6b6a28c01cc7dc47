package domain

import (
	"context"
	"time"
)

// ProvisionEvent is emitted on every state transition of a provisioning run.
type ProvisionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	State     ProvisionState `json:"state"`
	Path      string         `json:"path"`
}

// ProvisionHooks defines callbacks for provisioner observability.
// Nil callbacks are skipped.
type ProvisionHooks struct {
	OnTransition func(context.Context, *ProvisionEvent)
}
