// Package ports defines the interfaces between the FlowNote core and its
// host-provided collaborators: document management, rendering, and
// distributed locking. Adapters implement these; the core only consumes them.
package ports
