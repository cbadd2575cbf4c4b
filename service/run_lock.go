package services

import "sync"

// RunLock allows one batch run per domain at a time. Refresh is called after
// every row so a lock with a ttl outlives a slow batch.
type RunLock interface {
	Acquire(domain string) (bool, error)
	Refresh(domain string) error
	Release(domain string) error
}

// LocalRunLock is a RunLock scoped to the current process.
type LocalRunLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalRunLock() *LocalRunLock {
	return &LocalRunLock{held: map[string]struct{}{}}
}

func (l *LocalRunLock) Acquire(domain string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[domain]; busy {
		return false, nil
	}
	l.held[domain] = struct{}{}
	return true, nil
}

func (l *LocalRunLock) Release(domain string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, domain)
	return nil
}

// Refresh is a no-op: the local lock never expires.
func (l *LocalRunLock) Refresh(domain string) error {
	return nil
}
