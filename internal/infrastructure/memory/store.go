// Package memory holds in-process implementations of the repository ports.
// They honor the same uniqueness rules as the PostgreSQL schema and back
// STORAGE_DRIVER=memory as well as the use case and HTTP tests.
package memory

import (
	"sort"
	"sync"
	"time"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	mu  sync.RWMutex
	seq int64

	users       map[string]*userRow
	suggestions map[string]*suggestionRow
	quotations  map[string]*quotationRow // keyed by business id

	txMu sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]*userRow),
		suggestions: make(map[string]*suggestionRow),
		quotations:  make(map[string]*quotationRow),
	}
}

// nextSeq must be called with mu held.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// newestFirst orders rows by creation time, then by insertion order, both descending.
func newestFirst[T any](rows []T, createdAt func(T) time.Time, seq func(T) int64) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := createdAt(rows[i]), createdAt(rows[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return seq(rows[i]) > seq(rows[j])
	})
}
