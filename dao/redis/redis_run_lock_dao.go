package redis

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dataset-uploader/config"
	"dataset-uploader/db"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockLost is returned by Refresh when the lock expired and was taken or
// dropped before it could be extended.
var ErrLockLost = errors.New("run lock is no longer held")

// RedisRunLockDAO keeps one batch run per domain across processes.
type RedisRunLockDAO struct {
	client db.RedisClient
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisRunLockDAO initializes a RedisRunLockDAO. The ttl bounds how long
// a crashed run keeps the domain locked; a live run extends it with Refresh.
func NewRedisRunLockDAO(client db.RedisClient, ttl time.Duration) *RedisRunLockDAO {
	return &RedisRunLockDAO{client: client, ttl: ttl, tokens: map[string]string{}}
}

func lockKey(domain string) string {
	return fmt.Sprintf(config.RUN_LOCK_KEY_FORMAT, domain)
}

// Acquire takes the lock for domain. It returns false when another run holds
// it.
func (dao *RedisRunLockDAO) Acquire(domain string) (bool, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	token := uuid.NewString()
	ok, err := dao.client.SetNX(lockKey(domain), token, dao.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock for %s: %w", domain, err)
	}
	if ok {
		dao.tokens[domain] = token
	}
	return ok, nil
}

// Release gives the lock back if this DAO still owns it.
func (dao *RedisRunLockDAO) Release(domain string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	token, ok := dao.tokens[domain]
	if !ok {
		return nil
	}
	delete(dao.tokens, domain)
	if _, err := dao.client.DelIfEqual(lockKey(domain), token); err != nil {
		return fmt.Errorf("failed to release run lock for %s: %w", domain, err)
	}
	return nil
}

// Refresh extends the ttl of a lock this DAO owns.
func (dao *RedisRunLockDAO) Refresh(domain string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	token, ok := dao.tokens[domain]
	if !ok {
		return ErrLockLost
	}
	extended, err := dao.client.ExpireIfEqual(lockKey(domain), token, dao.ttl)
	if err != nil {
		return fmt.Errorf("failed to refresh run lock for %s: %w", domain, err)
	}
	if !extended {
		return fmt.Errorf("domain %s: %w", domain, ErrLockLost)
	}
	return nil
}

// Holder returns the token of the current lock owner, or "" when free.
func (dao *RedisRunLockDAO) Holder(domain string) (string, error) {
	v, err := dao.client.Get(lockKey(domain))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read run lock for %s: %w", domain, err)
	}
	return v, nil
}
