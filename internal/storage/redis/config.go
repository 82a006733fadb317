package redis

import "time"

// Config holds Redis connection settings
type Config struct {
	// URL is a redis:// connection URL
	URL string
	// PoolSize is the maximum number of connections
	PoolSize int
	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int
	// ResultTTL bounds how long individual results are retained; the
	// ranking set itself has no expiry. Zero means keep forever.
	ResultTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		ResultTTL:    0,
	}
}
