// Package kv provides the key-value store that backs saved analyses.
// Values are opaque strings; callers own their encoding.
package kv

import "context"

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
