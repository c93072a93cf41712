// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

// Valkey-backed cache for the rendered category tree JSON. It sits in
// front of the HTTP tree endpoint only; the store traversal methods
// always re-read from the database. Every category mutation invalidates
// the cached tree.

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// treeKey is the Valkey key holding the rendered tree JSON.
	treeKey = "taxonomy:tree"

	// DefaultTreeTTL is how long the rendered tree stays cached.
	DefaultTreeTTL = 5 * time.Minute
)

// TreeCache stores the serialized category tree in Valkey.
type TreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTreeCache creates a tree cache backed by the given Valkey client.
func NewTreeCache(client *redis.Client, ttl time.Duration) *TreeCache {
	if ttl == 0 {
		ttl = DefaultTreeTTL
	}
	return &TreeCache{client: client, ttl: ttl}
}

// Get retrieves the cached tree JSON. Returns false on miss.
func (tc *TreeCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := tc.client.Get(ctx, treeKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("tree cache get error", "error", err)
		return nil, false
	}
	slog.Debug("tree cache hit")
	return val, true
}

// Set stores the rendered tree JSON with the configured TTL.
func (tc *TreeCache) Set(ctx context.Context, data []byte) {
	if err := tc.client.Set(ctx, treeKey, data, tc.ttl).Err(); err != nil {
		slog.Warn("tree cache set error", "error", err)
	}
}

// Invalidate drops the cached tree. Called after every category mutation.
func (tc *TreeCache) Invalidate(ctx context.Context) {
	if err := tc.client.Del(ctx, treeKey).Err(); err != nil {
		slog.Warn("tree cache invalidate error", "error", err)
	}
	slog.Debug("tree cache invalidated")
}
