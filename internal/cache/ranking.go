package cache

import (
	"sync"

	"github.com/unimap/globe/pkg/core"
)

// RankingCache maps a discipline name to its ranked university slice for the
// current catalog generation. Reset whenever the catalog is reseeded.
type RankingCache struct {
	mu       sync.RWMutex
	rankings map[string][]core.University
}

// NewRankingCache creates a new RankingCache
func NewRankingCache() *RankingCache {
	return &RankingCache{
		rankings: make(map[string][]core.University),
	}
}

// Get retrieves the cached ranking for a discipline
func (c *RankingCache) Get(discipline string) ([]core.University, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ranking, ok := c.rankings[discipline]
	return ranking, ok
}

// Set stores a ranking for a discipline
func (c *RankingCache) Set(discipline string, ranking []core.University) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rankings[discipline] = ranking
}

// Delete removes one discipline's cached ranking
func (c *RankingCache) Delete(discipline string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rankings, discipline)
}

// Reset clears all cached rankings
func (c *RankingCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rankings = make(map[string][]core.University)
}
