// Package httputil provides HTTP utilities for API clients.
//
// # Overview
//
// This package provides infrastructure used by outbound API clients,
// primarily the GitHub contents client that persists configuration edits:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/meanwhile/)
// with configurable TTL. This avoids refetching file metadata that rarely
// changes between requests.
//
// Usage:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	data, ok := cache.Get("github:config-sha")  // Check cache
//	if !ok {
//	    data = fetchFromAPI()
//	    cache.Set("github:config-sha", data)   // Store for later
//	}
//
// Cache keys should be namespaced by client to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid hammering a struggling server:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return commitConfig(ctx, doc)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/meanwhile/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `meanwhile cache clear` or by deleting
// the cache directory.
package httputil
