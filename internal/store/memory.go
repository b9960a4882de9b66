package store

import (
	"context"
	"sync"

	"github.com/jonesrussell/formsight/internal/domain"
)

// MemoryStore is an in-process ResultStore for single-node deployments
// and tests. Whole-record replacement under the mutex gives the atomic
// replace-on-write guarantee.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]domain.ClassificationResult
}

// NewMemoryStore creates an empty in-memory result store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[string]domain.ClassificationResult),
	}
}

// Put replaces the stored result for the result's page.
func (s *MemoryStore) Put(_ context.Context, result *domain.ClassificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.PageID] = *result
	return nil
}

// Get returns the latest result for a page, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, pageID string) (*domain.ClassificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[pageID]
	if !ok {
		return nil, ErrNotFound
	}
	return &result, nil
}

// Delete removes the stored result for a page.
func (s *MemoryStore) Delete(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, pageID)
	return nil
}
