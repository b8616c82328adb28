// Package kv is the persistent string key-value store that survives across
// sessions. Values are opaque strings; callers serialize structured data
// themselves.
package kv

import "context"

// UpdateFunc receives the current value (ok=false when absent) and returns
// the value to store. Returning an error aborts the update.
type UpdateFunc func(old string, ok bool) (string, error)

type Repository interface {
	// Get returns the stored value and ok=true, or ok=false if key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// List returns a copy of every stored pair.
	List(ctx context.Context) (map[string]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Update performs an atomic read-modify-write of key. If fn fails nothing
	// is written and fn's error is returned unchanged.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
