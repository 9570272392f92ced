package content

import (
	"sync"
	"time"

	"github.com/igegov/cv-portfolio/internal/types"
)

// Store holds the current content in memory for concurrent readers.
// Stored values are treated as immutable: Replace swaps the pointer, it never edits in place.
type Store struct {
	mu        sync.RWMutex
	cv        *types.CVData
	revision  int
	updatedAt time.Time
}

// NewStore creates a store seeded with cv
func NewStore(cv *types.CVData) *Store {
	return &Store{cv: cv, revision: 1, updatedAt: time.Now().UTC()}
}

// Get returns the current content. Callers must not modify it.
func (s *Store) Get() *types.CVData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cv
}

// Snapshot returns the content together with its revision and update time
func (s *Store) Snapshot() (*types.CVData, int, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cv, s.revision, s.updatedAt
}

// Replace validates cv and makes it the current content, returning the new revision
func (s *Store) Replace(cv *types.CVData) (int, error) {
	if cv == nil {
		return 0, &ValidationError{Message: "content is empty"}
	}
	if err := cv.Validate(); err != nil {
		return 0, &ValidationError{Message: "content failed field validation", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cv = cv
	s.revision++
	s.updatedAt = time.Now().UTC()
	return s.revision, nil
}
