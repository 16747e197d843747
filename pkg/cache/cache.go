// Package cache provides byte-level caching for pipeline results with
// pluggable backends: file-based for CLI usage, Redis for the server,
// and a null cache for tests or when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLs per entry type.
const (
	// TTLLayout is how long computed layouts stay cached. Layouts are
	// pure functions of document and options, so this is generous.
	TTLLayout = 7 * 24 * time.Hour

	// TTLHTTP is how long cached HTTP responses stay fresh.
	TTLHTTP = time.Hour
)

// Cache is the byte-level storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
