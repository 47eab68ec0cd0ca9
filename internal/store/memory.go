package store

import (
	"context"
	"sync"

	"business-canvas/internal/models"
)

// MemoryStore holds canvases for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	canvases map[string]*models.BusinessCanvas
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{canvases: make(map[string]*models.BusinessCanvas)}
}

func (s *MemoryStore) Create(_ context.Context, c *models.BusinessCanvas) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.canvases[c.ID]; exists {
		return ErrAlreadyExists
	}
	s.canvases[c.ID] = c.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.BusinessCanvas, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.canvases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.BusinessCanvas, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.BusinessCanvas, 0, len(s.canvases))
	for _, c := range s.canvases {
		out = append(out, c.Clone())
	}
	return out, nil
}

// Update applies fn to a private copy and swaps it in only when fn succeeds.
func (s *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*models.BusinessCanvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.canvases[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	s.canvases[id] = next
	return next.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.canvases[id]; !ok {
		return ErrNotFound
	}
	delete(s.canvases, id)
	return nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.canvases), nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
