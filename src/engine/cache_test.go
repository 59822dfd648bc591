package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachePutGet(t *testing.T) {
	c := NewConfigCache(time.Minute, time.Now)
	_, ok := c.Get("seasons:tahoe")
	assert.False(t, ok)

	c.Put("seasons:tahoe", "value")
	v, ok := c.Get("seasons:tahoe")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestCacheTTLExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewConfigCache(5*time.Minute, clock)

	c.Put("policy:tahoe:room", 42)
	_, ok := c.Get("policy:tahoe:room")
	assert.True(t, ok)

	now = now.Add(5*time.Minute + time.Second)
	_, ok = c.Get("policy:tahoe:room")
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewConfigCache(time.Minute, time.Now)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.InvalidateAll()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheSetTTL(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewConfigCache(time.Hour, clock)

	c.SetTTL(time.Minute)
	c.Put("seasons:tahoe", 1)

	now = now.Add(2 * time.Minute)
	_, ok := c.Get("seasons:tahoe")
	assert.False(t, ok)
}

// A write immediately followed by a read must observe the write: reads may
// never be staler than the last write within the process.
func TestCacheReadYourWrites(t *testing.T) {
	c := NewConfigCache(time.Minute, time.Now)
	c.Put("pricing:tahoe:room", "old")
	c.Put("pricing:tahoe:room", "new")
	v, ok := c.Get("pricing:tahoe:room")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}
