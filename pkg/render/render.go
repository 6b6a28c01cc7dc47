// Package render provides the built-in terminal renderers and their default
// registry ranks. Renderers are registered as factories and constructed
// lazily, so a registry carrying all of them only pays for the ones used.
package render

import (
	"github.com/stepbook/flownote/pkg/registry"
)

// MIME types handled by the built-in renderers.
const (
	MimeMarkdown     = "text/markdown"
	MimeDataResource = "application/vnd.dataresource+json"
	MimePlainText    = "text/plain"
)

// Default ranks. Lower wins; the table widget outranks generic text.
const (
	RankDataResource = 10
	RankMarkdown     = 60
	RankPlainText    = 120
)

// RegisterDefaults wires the built-in renderer factories into a registry.
func RegisterDefaults(r *registry.Registry) {
	r.Register(MimeDataResource, RankDataResource, NewTable)
	r.Register(MimeMarkdown, RankMarkdown, NewMarkdown)
	r.Register(MimePlainText, RankPlainText, NewPlainText)
}
