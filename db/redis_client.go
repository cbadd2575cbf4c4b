package db

import (
	"context"
	"time"
)

// A missing key is reported by Get as redis.Nil, by every implementation.

// RedisClient defines the methods available in the RedisClient
type RedisClient interface {
	Get(key string) (string, error)
	// SetNX stores value only when key does not exist yet. A zero ttl never
	// expires.
	SetNX(key, value string, ttl time.Duration) (bool, error)
	// DelIfEqual deletes key only while it still holds value.
	DelIfEqual(key, value string) (bool, error)
	// ExpireIfEqual resets the ttl of key only while it still holds value.
	ExpireIfEqual(key, value string, ttl time.Duration) (bool, error)
	GetContext() context.Context
	Ping() error
}
