package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCachePutGet(t *testing.T) {
	c := newProfileCache()

	p := &Profile{ID: 1, Email: "u@example.com"}
	c.put(1, p)

	got, ok := c.get(1)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = c.get(2)
	assert.False(t, ok)
}

func TestProfileCacheTTLExpiry(t *testing.T) {
	c := newProfileCache()
	c.put(1, &Profile{ID: 1})

	// backdate the entry past the TTL
	c.mu.Lock()
	e := c.entries[1]
	e.addedAt = time.Now().Add(-profileCacheTTL - time.Second)
	c.entries[1] = e
	c.mu.Unlock()

	_, ok := c.get(1)
	assert.False(t, ok)
}

func TestProfileCacheEvictsOldestAdded(t *testing.T) {
	c := newProfileCache()

	for i := 1; i <= profileCacheCap+3; i++ {
		c.put(uint(i), &Profile{ID: uint(i), Email: fmt.Sprintf("u%d@example.com", i)})
	}

	assert.Len(t, c.entries, profileCacheCap)

	// the three oldest entries are gone, the newest survive
	for i := 1; i <= 3; i++ {
		_, ok := c.get(uint(i))
		assert.False(t, ok, "entry %d should be evicted", i)
	}
	for i := 4; i <= profileCacheCap+3; i++ {
		_, ok := c.get(uint(i))
		assert.True(t, ok, "entry %d should survive", i)
	}
}

func TestProfileCacheInvalidate(t *testing.T) {
	c := newProfileCache()
	c.put(1, &Profile{ID: 1})
	c.invalidate(1)

	_, ok := c.get(1)
	assert.False(t, ok)
	assert.Empty(t, c.order)
}
