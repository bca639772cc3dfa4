// Package inmemory provides an in-memory implementation of the remote
// store contract. It backs the "memory" backend for offline development
// and doubles as a controllable fake in tests.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dspolyakov/buildpad/internal/remote"
)

// Store keeps one owner-scoped collection per owner id. All methods are
// safe for concurrent use.
type Store[R any] struct {
	mu   sync.RWMutex
	data map[string]map[string]R // owner -> id -> record

	id      func(R) string
	stamp   func(r R, created, updated time.Time) R
	created func(R) time.Time
	updated func(R) time.Time

	// Now is the clock used to stamp created_at/updated_at on writes.
	// Tests may replace it.
	Now func() time.Time

	// FailFetch, when set, makes every FetchAll call fail with it.
	FailFetch error

	// FailUpsert, when set, is consulted per record id before a write.
	FailUpsert func(id string) error
}

func newStore[R any](
	id func(R) string,
	stamp func(R, time.Time, time.Time) R,
	created func(R) time.Time,
	updated func(R) time.Time,
) *Store[R] {
	return &Store[R]{
		data:    map[string]map[string]R{},
		id:      id,
		stamp:   stamp,
		created: created,
		updated: updated,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewProjectStore returns an empty in-memory project collection.
func NewProjectStore() *Store[remote.ProjectRecord] {
	return newStore(
		func(r remote.ProjectRecord) string { return r.ID },
		func(r remote.ProjectRecord, c, u time.Time) remote.ProjectRecord {
			r.CreatedAt, r.UpdatedAt = c, u
			return r
		},
		func(r remote.ProjectRecord) time.Time { return r.CreatedAt },
		func(r remote.ProjectRecord) time.Time { return r.UpdatedAt },
	)
}

// NewIdeaStore returns an empty in-memory idea collection.
func NewIdeaStore() *Store[remote.IdeaRecord] {
	return newStore(
		func(r remote.IdeaRecord) string { return r.ID },
		func(r remote.IdeaRecord, c, u time.Time) remote.IdeaRecord {
			r.CreatedAt, r.UpdatedAt = c, u
			return r
		},
		func(r remote.IdeaRecord) time.Time { return r.CreatedAt },
		func(r remote.IdeaRecord) time.Time { return r.UpdatedAt },
	)
}

// FetchAll returns the owner's records ordered by updated_at descending.
func (s *Store[R]) FetchAll(ctx context.Context, ownerID string) ([]R, error) {
	if s.FailFetch != nil {
		return nil, s.FailFetch
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]R, 0, len(s.data[ownerID]))
	for _, r := range s.data[ownerID] {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return s.updated(records[i]).After(s.updated(records[j]))
	})
	return records, nil
}

// Upsert creates or overwrites the record under the owner's collection,
// stamping updated_at with the store clock and preserving created_at for
// existing records.
func (s *Store[R]) Upsert(ctx context.Context, ownerID string, record R) error {
	id := s.id(record)
	if s.FailUpsert != nil {
		if err := s.FailUpsert(id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	created := now
	if existing, ok := s.data[ownerID][id]; ok {
		created = s.created(existing)
	}

	if s.data[ownerID] == nil {
		s.data[ownerID] = map[string]R{}
	}
	s.data[ownerID][id] = s.stamp(record, created, now)
	return nil
}

// Delete removes the record with the given id from whichever owner's
// collection holds it. Deleting an absent id is a no-op.
func (s *Store[R]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for owner, records := range s.data {
		if _, ok := records[id]; ok {
			delete(records, id)
			if len(records) == 0 {
				delete(s.data, owner)
			}
			return nil
		}
	}
	return nil
}

// Seed stores a record verbatim, without stamping timestamps. Test helper.
func (s *Store[R]) Seed(ownerID string, record R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[ownerID] == nil {
		s.data[ownerID] = map[string]R{}
	}
	s.data[ownerID][s.id(record)] = record
}

// Get returns the stored record by owner and id. Test helper.
func (s *Store[R]) Get(ownerID, id string) (R, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[ownerID][id]
	return r, ok
}
