package engine

import (
	"fmt"
	"sync"
	"time"

	"crs/src/types"
)

// ConfigCache is the in-process cache for season, pricing-rule and refund-
// policy configuration. Values change rarely (admin edits) so reads are
// served from memory with a TTL; admin mutations invalidate by key, or drop
// everything. The clock is injectable so TTL behavior is testable.
type ConfigCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

func NewConfigCache(ttl time.Duration, now func() time.Time) *ConfigCache {
	return &ConfigCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ConfigCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}
	return entry.value, true
}

func (c *ConfigCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

func (c *ConfigCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *ConfigCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *ConfigCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetTTL replaces the cache TTL. The configured value is applied at boot,
// after env loading; package init must not read the environment.
func (c *ConfigCache) SetTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

const defaultConfigTTL = 5 * time.Minute

// Cache is the process-wide configuration cache owned by the engine.
var Cache = NewConfigCache(defaultConfigTTL, time.Now)

func SeasonsCacheKey(property types.Property) string {
	return fmt.Sprintf("seasons:%s", property)
}

func PricingRulesCacheKey(property types.Property, mode types.BookingMode) string {
	return fmt.Sprintf("pricing:%s:%s", property, mode)
}

func PolicyCacheKey(property types.Property, mode types.BookingMode) string {
	return fmt.Sprintf("policy:%s:%s", property, mode)
}
