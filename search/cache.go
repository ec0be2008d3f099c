// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/poiesic/verdant/core"
)

// DefaultCacheTTL is how long a cached response stays servable.
const DefaultCacheTTL = 10 * time.Minute

// Cache stores search responses keyed by query, mode and filters.
// Implementations must be safe for concurrent use and must return cached
// responses verbatim, SearchTime included.
type Cache interface {
	// Get returns the cached response for key, or false when absent or
	// expired.
	Get(ctx context.Context, key core.ID) (*core.Response, bool)

	// Set stores a response under key. Last write wins.
	Set(ctx context.Context, key core.ID, response *core.Response)
}

// CacheKey derives the cache key from everything that changes a response.
// Filters are serialized to JSON so that equal filters always key alike.
func CacheKey(queryText string, mode core.SearchMode, filters *Filters) core.ID {
	payload, err := json.Marshal(filters)
	if err != nil {
		payload = []byte("null")
	}
	return core.IDFromContent(queryText + "\x00" + mode.String() + "\x00" + string(payload))
}

type cacheEntry struct {
	response *core.Response
	storedAt time.Time
}

// MemoryCache is an in-process Cache with lazy expiry. Entries are checked
// for age at lookup time rather than evicted by a background sweeper.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[core.ID]cacheEntry
}

var _ Cache = (*MemoryCache)(nil)

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache) error

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) error {
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		c.ttl = ttl
		return nil
	}
}

// NewMemoryCache creates an in-process response cache.
func NewMemoryCache(opts ...MemoryCacheOption) (*MemoryCache, error) {
	c := &MemoryCache{
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		entries: make(map[core.ID]cacheEntry),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the cached response for key when one exists and is younger
// than the TTL. Expired entries are dropped on access.
func (c *MemoryCache) Get(_ context.Context, key core.ID) (*core.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.response, true
}

// Set stores a response, replacing any existing entry under the same key.
func (c *MemoryCache) Set(_ context.Context, key core.ID, response *core.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{response: response, storedAt: c.now()}
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
