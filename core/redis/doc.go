// Package redis connects to the Redis server backing the shared version store.
//
// Connect parses a redis:// URL, applies pool and timeout overrides from Config and pings the
// server before returning the client. An empty URL means Redis is disabled and Connect returns
// ErrNotConfigured.
package redis
