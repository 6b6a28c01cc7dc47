// Package domain holds the core entities of FlowNote: notebook documents,
// the provisioning state machine, and the sentinel errors shared by all
// adapters. It has no dependencies on the ports or adapter layers.
package domain
