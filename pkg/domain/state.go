package domain

// ProvisionState identifies a step of the provisioning sequence.
type ProvisionState string

const (
	// StateCreated: the untitled document exists in the store.
	StateCreated ProvisionState = "created"
	// StateOpened: the store handed out an editing handle.
	StateOpened ProvisionState = "opened"
	// StateContextAcquired: the editing context was resolved.
	StateContextAcquired ProvisionState = "context_acquired"
	// StateReady: the context reported its content loaded.
	StateReady ProvisionState = "ready"
	// StateTagged: the use_stepbook flag is set on the shared model.
	StateTagged ProvisionState = "tagged"

	// StateSaved is the terminal success state: the flag is persisted.
	StateSaved ProvisionState = "saved"
	// StateUntagged is the terminal early-exit state: the document was
	// created but the open or context step declined, so no flag was written.
	StateUntagged ProvisionState = "untagged"
)

// Terminal reports whether the state ends a provisioning sequence.
func (s ProvisionState) Terminal() bool {
	return s == StateSaved || s == StateUntagged
}

// Outcome is the result of one provisioning invocation.
type Outcome struct {
	// Path of the created document.
	Path string `json:"path"`
	// State is the terminal state the sequence reached.
	State ProvisionState `json:"state"`
}

// Tagged reports whether the document carries the persisted flag.
func (o *Outcome) Tagged() bool {
	return o.State == StateSaved
}
