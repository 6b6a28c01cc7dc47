// Package file implements ports.DocumentManager on the local filesystem.
// Notebooks are stored as JSON files with the conventional
// cells/metadata/nbformat envelope.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

// notebookFile is the on-disk envelope of a notebook document.
type notebookFile struct {
	Cells         []domain.Cell   `json:"cells"`
	Metadata      domain.Metadata `json:"metadata"`
	NBFormat      int             `json:"nbformat"`
	NBFormatMinor int             `json:"nbformat_minor"`
}

// Store manages notebook files under a base directory. Document paths are
// slash-separated and relative to the base.
type Store struct {
	BasePath string
}

// NewStore creates a Store rooted at basePath. If basePath is empty, it
// defaults to the current directory.
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

func (s *Store) abs(p string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(p))
}

// NewUntitled creates a uniquely named notebook file under dir. Uniqueness
// is enforced with O_EXCL, so concurrent creates never collide.
func (s *Store) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	if kind != domain.KindNotebook {
		return nil, fmt.Errorf("unsupported document kind: %s", kind)
	}

	// s.abs("") is the base path itself, which may not exist yet either.
	if err := os.MkdirAll(s.abs(dir), 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure directory %s: %w", dir, err)
	}

	skeleton, err := json.MarshalIndent(notebookFile{
		Cells:         []domain.Cell{},
		Metadata:      domain.Metadata{},
		NBFormat:      4,
		NBFormatMinor: 5,
	}, "", " ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notebook skeleton: %w", err)
	}

	for i := 0; ; i++ {
		candidate := path.Join(dir, untitledName(i))
		f, err := os.OpenFile(s.abs(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return nil, fmt.Errorf("failed to create notebook file: %w", err)
		}
		if _, err := f.Write(skeleton); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write notebook skeleton: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to close notebook file: %w", err)
		}
		return &domain.DocumentRef{Path: candidate, Kind: kind}, nil
	}
}

// Open hands out a handle for existing notebook files. Other extensions and
// missing files are declined, not errors.
func (s *Store) Open(ctx context.Context, p string) (ports.Handle, bool) {
	if !strings.HasSuffix(p, domain.NotebookExt) {
		return nil, false
	}
	if _, err := os.Stat(s.abs(p)); err != nil {
		return nil, false
	}
	return &handle{path: p}, true
}

// ContextFor resolves an editing context for an open handle.
func (s *Store) ContextFor(h ports.Handle) (ports.DocumentContext, bool) {
	hd, ok := h.(*handle)
	if !ok {
		return nil, false
	}
	return &editContext{store: s, path: hd.path}, true
}

// Load reads a notebook file into a document snapshot.
func (s *Store) Load(ctx context.Context, p string) (*domain.Document, error) {
	nb, err := s.read(p)
	if err != nil {
		return nil, err
	}
	return &domain.Document{
		Path:     p,
		Kind:     domain.KindNotebook,
		Cells:    nb.Cells,
		Metadata: nb.Metadata,
	}, nil
}

// List returns the notebook paths directly under dir.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(s.abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	paths := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), domain.NotebookExt) {
			continue
		}
		paths = append(paths, path.Join(dir, entry.Name()))
	}
	return paths, nil
}

func (s *Store) read(p string) (*notebookFile, error) {
	data, err := os.ReadFile(s.abs(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read notebook file: %w", err)
	}

	var nb notebookFile
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook %s: %w", p, err)
	}
	if nb.Metadata == nil {
		nb.Metadata = domain.Metadata{}
	}
	return &nb, nil
}

func (s *Store) write(p string, nb *notebookFile) error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal notebook: %w", err)
	}
	if err := os.WriteFile(s.abs(p), data, 0644); err != nil {
		return fmt.Errorf("failed to write notebook file: %w", err)
	}
	return nil
}

func untitledName(i int) string {
	if i == 0 {
		return "Untitled" + domain.NotebookExt
	}
	return fmt.Sprintf("Untitled%d%s", i, domain.NotebookExt)
}

type handle struct {
	path string
}

func (h *handle) Path() string { return h.path }

// editContext loads the file content on Ready and writes it back on Save.
type editContext struct {
	store *Store
	path  string

	mu sync.Mutex
	nb *notebookFile
}

func (c *editContext) Path() string { return c.path }

// Ready loads the notebook content from disk. Readiness means the content is
// fully parsed and editable.
func (c *editContext) Ready(ctx context.Context) error {
	nb, err := c.store.read(c.path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.nb = nb
	c.mu.Unlock()
	return nil
}

// Model returns the shared metadata model. Only valid after Ready.
func (c *editContext) Model() ports.SharedModel {
	return &model{ctx: c}
}

// Save writes the edited notebook back to disk.
func (c *editContext) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nb == nil {
		return fmt.Errorf("document %s not loaded", c.path)
	}
	return c.store.write(c.path, c.nb)
}

type model struct {
	ctx *editContext
}

func (m *model) SetMetadata(key string, value any) error {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.nb == nil {
		return fmt.Errorf("document %s not loaded", m.ctx.path)
	}
	m.ctx.nb.Metadata[key] = value
	return nil
}

func (m *model) GetMetadata(key string) (any, bool) {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.nb == nil {
		return nil, false
	}
	v, ok := m.ctx.nb.Metadata[key]
	return v, ok
}
