package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON loads key and decodes it into out.
// A missing key surfaces as ErrKeyNotFound, a corrupt payload as a decode error.
func GetJSON(ctx context.Context, c Cache, key string, out any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl)
}
