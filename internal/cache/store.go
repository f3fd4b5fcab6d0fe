// Package cache provides TTL key-value stores for provider payloads.
//
// Two scopes exist. The session scope is an in-memory LRU and holds
// weather, marine and tide payloads. The long-lived scope holds geocoding
// and coastline results and can be backed by DynamoDB, S3 or SQLite with
// the LRU in front.
package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-entry TTL. Get returns (nil, nil)
// when the key is absent or expired.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Scope names the lifetime class of a cache key.
type Scope string

const (
	ScopeSession   Scope = "session"
	ScopeLongLived Scope = "long_lived"
)

// Scopes bundles the two stores handed to adapters.
type Scopes struct {
	Session   Store
	LongLived Store
}

// For returns the store for a scope.
func (s Scopes) For(scope Scope) Store {
	if scope == ScopeLongLived {
		return s.LongLived
	}
	return s.Session
}

// Nop never stores anything. Used when caching is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
