package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process CacheStore. Entries expire lazily on read.
type MemoryStore struct {
	entries map[string]memoryEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Set(ctx context.Context, a *Assessment) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.entries[assessmentKey(a.ID)] = memoryEntry{data: data, expiresAt: exp}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Assessment, error) {
	s.mutex.RLock()
	e, ok := s.entries[assessmentKey(id)]
	s.mutex.RUnlock()

	if !ok || s.expired(e) {
		if ok {
			s.mutex.Lock()
			delete(s.entries, assessmentKey(id))
			s.mutex.Unlock()
		}
		return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
	}

	var a Assessment
	if err := json.Unmarshal(e.data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (*Assessment, error) {
	s.mutex.Lock()
	e, ok := s.entries[assessmentKey(id)]
	delete(s.entries, assessmentKey(id))
	s.mutex.Unlock()

	if !ok || s.expired(e) {
		return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
	}

	var a Assessment
	if err := json.Unmarshal(e.data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.entries, assessmentKey(id))
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

// MemoryRepository is an in-process Repository.
type MemoryRepository struct {
	assessments map[string]*Assessment
	mutex       sync.RWMutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		assessments: make(map[string]*Assessment),
	}
}

func (r *MemoryRepository) Save(ctx context.Context, a *Assessment) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *a
	r.assessments[a.ID] = &stored
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*Assessment, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	a, ok := r.assessments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
	}
	out := *a
	return &out, nil
}

func (r *MemoryRepository) ListByChild(ctx context.Context, childID string, limit, offset int) ([]*Assessment, error) {
	r.mutex.RLock()
	var all []*Assessment
	for _, a := range r.assessments {
		if a.ChildID == childID {
			out := *a
			all = append(all, &out)
		}
	}
	r.mutex.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*Assessment{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}
