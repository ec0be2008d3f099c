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


// Package redis provides a Redis-backed search response cache for
// deployments where several processes should share one cache.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poiesic/verdant/core"
)

const keyPrefix = "verdant:qc:"

// QueryCache caches search responses in Redis with a native TTL, so expiry
// needs no sweeper on our side. Cache trouble is never fatal: errors are
// logged and reported as misses.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a QueryCache.
type Option func(*QueryCache) error

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *QueryCache) error {
		if ttl > 0 {
			c.ttl = ttl
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *QueryCache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewQueryCache creates a response cache on an existing Redis client.
// The default TTL is ten minutes.
func NewQueryCache(client *redis.Client, opts ...Option) (*QueryCache, error) {
	if client == nil {
		return nil, ErrClientRequired
	}

	c := &QueryCache{
		client: client,
		ttl:    10 * time.Minute,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the cached response for key, or false when absent, expired or
// unreadable.
func (c *QueryCache) Get(ctx context.Context, key core.ID) (*core.Response, bool) {
	data, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("query cache read failed", "key", key, "error", err)
		return nil, false
	}

	var response core.Response
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("query cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	response.Mode, _ = core.ParseSearchMode(response.ModeName)
	return &response, true
}

// Set stores a response under key with the configured TTL. Last write wins.
func (c *QueryCache) Set(ctx context.Context, key core.ID, response *core.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		c.logger.Warn("query cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("query cache write failed", "key", key, "error", err)
	}
}

func cacheKey(key core.ID) string {
	return fmt.Sprintf("%s%d", keyPrefix, key)
}
