package db

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// MockRedisClient simulates a Redis client for testing purposes.
type MockRedisClient struct {
	data    map[string]string    // Key-value store
	expiry  map[string]time.Time // Expiration per key, absent = never
	mu      sync.Mutex
	context context.Context

	// Now is the clock used for expiry.
	Now func() time.Time
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		expiry:  make(map[string]time.Time),
		context: ctx,
		Now:     time.Now,
	}
}

// expireLocked drops key when its deadline has passed. m.mu must be held.
func (m *MockRedisClient) expireLocked(key string) {
	if deadline, ok := m.expiry[key]; ok && !m.Now().Before(deadline) {
		delete(m.data, key)
		delete(m.expiry, key)
	}
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	delete(m.expiry, key)
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(key)
	value, exists := m.data[key]
	if !exists {
		return "", redis.Nil
	}
	return value, nil
}

func (m *MockRedisClient) SetNX(key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(key)
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = value
	if ttl > 0 {
		m.expiry[key] = m.Now().Add(ttl)
	}
	return true, nil
}

func (m *MockRedisClient) DelIfEqual(key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(key)
	if current, exists := m.data[key]; !exists || current != value {
		return false, nil
	}
	delete(m.data, key)
	delete(m.expiry, key)
	return true, nil
}

func (m *MockRedisClient) ExpireIfEqual(key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(key)
	if current, exists := m.data[key]; !exists || current != value {
		return false, nil
	}
	if ttl > 0 {
		m.expiry[key] = m.Now().Add(ttl)
	} else {
		delete(m.expiry, key)
	}
	return true, nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a Redis Ping operation.
func (m *MockRedisClient) Ping() error {
	return nil
}
