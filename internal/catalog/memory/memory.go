// internal/catalog/memory/memory.go
package memory

import (
	"sort"
	"sync"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/pkg/core"
)

// Backend stores the catalog in process memory. It is the default backend
// for development and the authoritative store when a seed file is the only
// data source.
type Backend struct {
	mu           sync.RWMutex
	universities map[string]core.University
	order        []string // insertion order, for deterministic iteration
	mentors      []core.Mentor
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{
		universities: make(map[string]core.University),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// ReplaceUniversities swaps the whole university set.
func (b *Backend) ReplaceUniversities(universities []core.University) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.universities = make(map[string]core.University, len(universities))
	b.order = b.order[:0]
	for _, u := range universities {
		if _, dup := b.universities[u.ID]; dup {
			continue
		}
		b.universities[u.ID] = u
		b.order = append(b.order, u.ID)
	}
	return nil
}

// AddUniversity inserts or overwrites one university.
func (b *Backend) AddUniversity(u core.University) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.universities[u.ID]; !exists {
		b.order = append(b.order, u.ID)
	}
	b.universities[u.ID] = u
	return nil
}

// UniversityByID looks up one university.
func (b *Backend) UniversityByID(id string) (core.University, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	u, ok := b.universities[id]
	if !ok {
		return core.University{}, catalog.ErrNotFound
	}
	return u, nil
}

// Disciplines returns the sorted set of disciplines offered by any university.
func (b *Backend) Disciplines() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, u := range b.universities {
		for d := range u.Programs {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

// TopByDiscipline returns the ranked slice of universities offering the
// discipline.
func (b *Backend) TopByDiscipline(discipline string, limit int) ([]core.University, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	matched := make([]core.University, 0, len(b.order))
	for _, id := range b.order {
		u := b.universities[id]
		if catalog.OffersDiscipline(u, discipline) {
			matched = append(matched, u)
		}
	}
	catalog.SortByRank(matched)

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// AddMentor appends a mentor directory entry.
func (b *Backend) AddMentor(m core.Mentor) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mentors = append(b.mentors, m)
	return nil
}

// ListMentors returns all mentor directory entries.
func (b *Backend) ListMentors() ([]core.Mentor, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.Mentor, len(b.mentors))
	copy(out, b.mentors)
	return out, nil
}
