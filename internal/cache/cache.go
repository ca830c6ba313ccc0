package cache

import (
	"sync"

	"github.com/unimap/globe/pkg/core"
)

// UniversityCache caches university records by id so repeated detail
// lookups avoid a storage round trip.
type UniversityCache struct {
	m            sync.Mutex
	Universities map[string]core.University
}

func NewUniversityCache() *UniversityCache {
	return &UniversityCache{
		Universities: make(map[string]core.University),
	}
}

func (c *UniversityCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.Universities = make(map[string]core.University)
}

func (c *UniversityCache) Get(id string) (core.University, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if u, ok := c.Universities[id]; ok {
		return u, true
	}
	return core.University{}, false
}

func (c *UniversityCache) Add(u core.University) {
	c.m.Lock()
	defer c.m.Unlock()
	c.Universities[u.ID] = u
}

func (c *UniversityCache) AddAll(universities []core.University) {
	c.m.Lock()
	defer c.m.Unlock()
	for _, u := range universities {
		c.Universities[u.ID] = u
	}
}

func (c *UniversityCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.Universities)
}
