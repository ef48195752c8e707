package services

import (
	"sync"
	"time"
)

const (
	profileCacheCap = 50
	profileCacheTTL = 5 * time.Minute
)

type profileEntry struct {
	profile *Profile
	addedAt time.Time
}

// profileCache is an advisory read cache in front of profile lookups. A miss
// or expiry always falls through to the database; nothing may rely on it for
// correctness. Eviction drops the oldest-added entry once the cap is hit.
type profileCache struct {
	mu      sync.Mutex
	entries map[uint]profileEntry
	order   []uint
}

func newProfileCache() *profileCache {
	return &profileCache{entries: make(map[uint]profileEntry)}
}

func (c *profileCache) get(userID uint) (*Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if time.Since(e.addedAt) > profileCacheTTL {
		c.remove(userID)
		return nil, false
	}
	return e.profile, true
}

func (c *profileCache) put(userID uint, p *Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[userID]; ok {
		c.remove(userID)
	}
	for len(c.entries) >= profileCacheCap && len(c.order) > 0 {
		c.remove(c.order[0])
	}
	c.entries[userID] = profileEntry{profile: p, addedAt: time.Now()}
	c.order = append(c.order, userID)
}

func (c *profileCache) invalidate(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(userID)
}

// remove assumes c.mu is held.
func (c *profileCache) remove(userID uint) {
	delete(c.entries, userID)
	for i, id := range c.order {
		if id == userID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
