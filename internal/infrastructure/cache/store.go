package cache

import (
	"context"
	"time"
)

// Store is the interface for the response cache backing the read endpoints.
// Implementations must treat a missing key as (nil, false, nil), not an error.
type Store interface {
	// Get returns the cached value for key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes specific keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every key starting with prefix and returns how many were dropped
	DeletePrefix(ctx context.Context, prefix string) (int64, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}
