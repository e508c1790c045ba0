package store

import (
	"context"
	"sort"
	"sync"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/errors"
	"github.com/cdmlens/cdmlens/pkg/graph"
)

// MemoryStore is an in-process Store for tests and single-shot CLI runs.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]catalog.Object
	lists   map[string]catalog.List
	graphs  map[string]graph.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]catalog.Object),
		lists:   make(map[string]catalog.List),
		graphs:  make(map[string]graph.Graph),
	}
}

// PutObject inserts or replaces an object.
func (s *MemoryStore) PutObject(ctx context.Context, o catalog.Object) error {
	if err := o.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[o.ID] = o
	return nil
}

// GetObject retrieves an object by ID.
func (s *MemoryStore) GetObject(ctx context.Context, id string) (catalog.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[id]
	if !ok {
		return catalog.Object{}, errors.New(errors.ErrCodeObjectNotFound, "object %s", id)
	}
	return o, nil
}

// ListObjects returns all objects sorted by ID.
func (s *MemoryStore) ListObjects(ctx context.Context) ([]catalog.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteObject removes an object by ID.
func (s *MemoryStore) DeleteObject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return errors.New(errors.ErrCodeObjectNotFound, "object %s", id)
	}
	delete(s.objects, id)
	return nil
}

// PutList inserts or replaces a list.
func (s *MemoryStore) PutList(ctx context.Context, l catalog.List) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[l.ID] = l
	return nil
}

// GetList retrieves a list by ID.
func (s *MemoryStore) GetList(ctx context.Context, id string) (catalog.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[id]
	if !ok {
		return catalog.List{}, errors.New(errors.ErrCodeNotFound, "list %s", id)
	}
	return l, nil
}

// ListLists returns all lists sorted by ID.
func (s *MemoryStore) ListLists(ctx context.Context) ([]catalog.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.List, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteList removes a list by ID.
func (s *MemoryStore) DeleteList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "list %s", id)
	}
	delete(s.lists, id)
	return nil
}

// PutGraph saves a projected graph view under a name.
func (s *MemoryStore) PutGraph(ctx context.Context, name string, g graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[name] = g
	return nil
}

// GetGraph retrieves a saved graph view by name.
func (s *MemoryStore) GetGraph(ctx context.Context, name string) (graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[name]
	if !ok {
		return graph.Graph{}, errors.New(errors.ErrCodeGraphNotFound, "graph %s", name)
	}
	return g, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
