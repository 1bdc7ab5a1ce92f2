// Package history keeps the graded submissions of a session in the order they
// were graded.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/essay-grader/internal/models"
)

// Store is an append-only log of graded submissions. It is safe for
// concurrent use; readers always get a snapshot copy.
type Store struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append records a copy of result under theme and returns the stored entry.
// Sequence indexes start at 0 and grow by one per call.
func (s *Store) Append(theme string, result models.GradingResult) models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.HistoryEntry{
		ID:            uuid.New(),
		Theme:         theme,
		Result:        result.Clone(),
		SequenceIndex: len(s.entries),
		GradedAt:      s.now(),
	}
	s.entries = append(s.entries, entry)
	return entry.Clone()
}

// All returns copies of the entries in insertion order.
func (s *Store) All() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.HistoryEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) Find(id uuid.UUID) (models.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.HistoryEntry{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
