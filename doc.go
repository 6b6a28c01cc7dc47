/*
Package flownote provisions flow-flagged notebook documents and renders their
outputs in the terminal.

The core is a single sequenced operation: create an untitled notebook, open
it, wait for its editing context to become ready, stamp the use_stepbook flag
into its metadata, and save. Around it sit pluggable document stores
(filesystem, in-memory, Redis), a rank-keyed MIME renderer registry with lazy
construction, and a panel tracker that applies handlers to every current and
future open notebook. This hexagonal split lets the same core drive a CLI, an
HTTP API, or an MCP server.
*/
package flownote
