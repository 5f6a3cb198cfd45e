package service

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when the requested feed page is not cached.
var ErrCacheMiss = errors.New("feed cache miss")

// FeedCache defines the interface for short-lived caching of rendered feed
// pages. Only anonymous pages are cached; authenticated pages carry
// viewer-specific liked flags and always hit the database.
type FeedCache interface {
	// Get returns the cached payload for the key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under the key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// InvalidateFeed drops all cached feed pages. Called after any write that
	// changes what the public feed shows.
	InvalidateFeed(ctx context.Context) error
}
