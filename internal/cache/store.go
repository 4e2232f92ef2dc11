// Package cache implements the key-value snapshot mirror behind the cache
// service. Entries are opaque JSON blobs stored under composite string
// keys: "user:<username>" for user snapshots and "call:<username>:<date>"
// for call snapshots. Writes are last-write-wins with no expiry and no
// eviction; a read of an absent key is a miss, never an error.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when no entry exists under the key.
var ErrMiss = errors.New("cache miss")

// Store is the snapshot store consumed by the cache service handlers.
// The production implementation is RedisStore; tests substitute an
// in-process fake.
type Store interface {
	// Set stores blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error
	// Get returns the blob stored under key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
}

// UserKey builds the cache key for a user snapshot.
func UserKey(username string) string {
	return "user:" + username
}

// CallKey builds the cache key for a call snapshot. The date component is
// the caller-supplied string, not a parsed timestamp: the mirror treats
// both parts as opaque and a lookup must use the exact submitted value.
func CallKey(username, date string) string {
	return "call:" + username + ":" + date
}
