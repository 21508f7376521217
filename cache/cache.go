// Package cache stores rendered chart bytes. The dataset never changes after
// startup, so a rendered chart stays valid until it expires.
package cache

import "context"

// Cache is a byte cache keyed by string.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
