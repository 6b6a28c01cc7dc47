// Package redis implements ports.DocumentManager on Redis, for shared
// workspaces served by multiple replicas. It also provides a distributed
// locker used to serialize untitled-name allocation across replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/stepbook/flownote/pkg/domain"
	"github.com/stepbook/flownote/pkg/ports"
)

// Store keeps documents as JSON values with a per-directory ZSET index.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	locker ports.DistributedLocker
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets an expiration for documents (scratch workspaces).
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLocker serializes untitled-name allocation across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Store) {
		s.locker = locker
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "flownote:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(p string) string {
	return s.prefix + "doc:" + p
}

func (s *Store) indexKey(dir string) string {
	return s.prefix + "index:" + dir
}

// NewUntitled allocates a unique name under dir and stores an empty notebook
// there. SETNX makes the allocation atomic; the optional locker additionally
// keeps replicas from racing through long candidate scans.
func (s *Store) NewUntitled(ctx context.Context, dir, kind string) (*domain.DocumentRef, error) {
	if kind != domain.KindNotebook {
		return nil, fmt.Errorf("unsupported document kind: %s", kind)
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "untitled:"+dir, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to lock untitled allocation: %w", err)
		}
		defer func() { _ = unlock(ctx) }()
	}

	for i := 0; ; i++ {
		candidate := path.Join(dir, untitledName(i))
		doc := domain.NewNotebook(candidate)
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notebook: %w", err)
		}

		created, err := s.client.SetNX(ctx, s.key(candidate), data, s.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error creating notebook: %w", err)
		}
		if !created {
			continue
		}

		if err := s.index(ctx, path.Dir(candidate), candidate); err != nil {
			return nil, err
		}
		return &domain.DocumentRef{Path: candidate, Kind: kind}, nil
	}
}

// Open hands out a handle for existing notebook keys. Other extensions and
// missing keys are declined, not errors.
func (s *Store) Open(ctx context.Context, p string) (ports.Handle, bool) {
	if !strings.HasSuffix(p, domain.NotebookExt) {
		return nil, false
	}
	n, err := s.client.Exists(ctx, s.key(p)).Result()
	if err != nil || n == 0 {
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

// Load returns a snapshot of the stored document.
func (s *Store) Load(ctx context.Context, p string) (*domain.Document, error) {
	data, err := s.client.Get(ctx, s.key(p)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("redis error loading document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", p, err)
	}
	if doc.Metadata == nil {
		doc.Metadata = domain.Metadata{}
	}
	return &doc, nil
}

// List returns all document paths indexed under dir. Expired documents are
// lazily removed from the index.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	if dir == "" {
		dir = "." // root documents are indexed under "."
	}
	members, err := s.client.ZRange(ctx, s.indexKey(dir), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing documents: %w", err)
	}

	paths := make([]string, 0, len(members))
	for _, p := range members {
		n, err := s.client.Exists(ctx, s.key(p)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error listing documents: %w", err)
		}
		if n == 0 {
			_ = s.client.ZRem(ctx, s.indexKey(dir), p).Err()
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Store) index(ctx context.Context, dir, p string) error {
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, far enough
	}
	if err := s.client.ZAdd(ctx, s.indexKey(dir), backend.Z{Score: score, Member: p}).Err(); err != nil {
		return fmt.Errorf("redis error indexing document: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := s.client.Set(ctx, s.key(doc.Path), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving document: %w", err)
	}
	return s.index(ctx, path.Dir(doc.Path), doc.Path)
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

type editContext struct {
	store *Store
	path  string

	mu  sync.Mutex
	doc *domain.Document
}

func (c *editContext) Path() string { return c.path }

// Ready fetches and parses the document from Redis.
func (c *editContext) Ready(ctx context.Context) error {
	doc, err := c.store.Load(ctx, c.path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
	return nil
}

// Model returns the shared metadata model. Only valid after Ready.
func (c *editContext) Model() ports.SharedModel {
	return &model{ctx: c}
}

// Save writes the edited document back to Redis.
func (c *editContext) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return fmt.Errorf("document %s not loaded", c.path)
	}
	return c.store.save(ctx, c.doc)
}

type model struct {
	ctx *editContext
}

func (m *model) SetMetadata(key string, value any) error {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.doc == nil {
		return fmt.Errorf("document %s not loaded", m.ctx.path)
	}
	m.ctx.doc.Metadata[key] = value
	return nil
}

func (m *model) GetMetadata(key string) (any, bool) {
	m.ctx.mu.Lock()
	defer m.ctx.mu.Unlock()
	if m.ctx.doc == nil {
		return nil, false
	}
	v, ok := m.ctx.doc.Metadata[key]
	return v, ok
}
