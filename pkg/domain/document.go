package domain

// Document kinds understood by the document managers.
const (
	// KindNotebook is a cell-structured document with a metadata map.
	KindNotebook = "notebook"
)

// MetadataUseStepbook is the metadata key that flags a notebook for
// flow-driven behavior. FlowNote only writes this key; reading and reacting
// to it is the integration's responsibility.
const MetadataUseStepbook = "use_stepbook"

// NotebookExt is the file extension document managers accept for notebooks.
const NotebookExt = ".ipynb"

// Metadata is the flexible key-value map attached to a document.
type Metadata map[string]any

// DocumentRef points to a document owned by a document manager.
type DocumentRef struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Output is a single cell output, keyed by MIME type. A cell output may carry
// the same result in several representations; renderers pick one.
type Output struct {
	Data map[string]string `json:"data"`
}

// Cell is one unit of a notebook document.
type Cell struct {
	Type    string   `json:"cell_type"`
	Source  string   `json:"source"`
	Outputs []Output `json:"outputs,omitempty"`
}

// Document is the in-memory representation of a notebook.
type Document struct {
	Path     string   `json:"path"`
	Kind     string   `json:"kind"`
	Cells    []Cell   `json:"cells"`
	Metadata Metadata `json:"metadata"`
}

// NewNotebook creates an empty notebook document at the given path.
func NewNotebook(path string) *Document {
	return &Document{
		Path:     path,
		Kind:     KindNotebook,
		Cells:    []Cell{},
		Metadata: make(Metadata),
	}
}

// Clone returns a deep copy of the document so stores can hand out snapshots
// without sharing mutable state.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Metadata = make(Metadata, len(d.Metadata))
	for k, v := range d.Metadata {
		cp.Metadata[k] = v
	}
	cp.Cells = make([]Cell, len(d.Cells))
	copy(cp.Cells, d.Cells)
	return &cp
}
