package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// ResultCache memoizes operation results in Redis. Only operations whose
// registry metadata says idempotent+cacheable go through it. A nil client
// turns every call into a miss, so the cache is safe to leave unwired.
type ResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// Key derives a stable cache key from the operation name and its raw input.
func Key(op string, input []byte) string {
	sum := sha256.Sum256(input)
	return "railpass:op:" + op + ":" + hex.EncodeToString(sum[:])
}

// Get fetches a cached result. Misses and transport errors both return
// (nil, false); the caller recomputes either way.
func (c ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.Client == nil {
		return nil, false
	}
	val, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a result. Errors are swallowed; the cache is an optimization.
func (c ResultCache) Set(ctx context.Context, key string, value []byte) {
	if c.Client == nil {
		return
	}
	ttl := c.TTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	c.Client.Set(ctx, key, value, ttl)
}

// SetJSON marshals and stores in one step.
func (c ResultCache) SetJSON(ctx context.Context, key string, value any) {
	if c.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw)
}
