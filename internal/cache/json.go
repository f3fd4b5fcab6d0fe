package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON decodes the cached value for key into dst. It reports false on a
// miss. A value that no longer decodes is treated as a miss.
func GetJSON(ctx context.Context, store Store, key string, dst interface{}) (bool, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading cache key %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	return store.Set(ctx, key, data, ttl)
}
