package cache

import (
	"context"
	"time"
)

// Cache is the contract for the Redis-backed session/token store.
// Values are plain strings: revoked session JTIs and one-shot
// password-reset tokens, both with a TTL.
type Cache interface {
	// Set stores value under key with a TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetDel atomically fetches and removes key.
	// Returns found=false when the key is absent or expired.
	GetDel(ctx context.Context, key string) (string, bool, error)

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
