package srv

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionLocker serializes question handling per chat session. TryLock
// returns false when another request already holds the session; Unlock is
// safe to call even if the lock expired underneath.
type SessionLocker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}

const sessionLockTTL = time.Minute * 2

type RedisSessionLocker struct {
	client redis.UniversalClient
}

func NewRedisSessionLocker(client redis.UniversalClient) *RedisSessionLocker {
	return &RedisSessionLocker{client: client}
}

func (s *RedisSessionLocker) TryLock(ctx context.Context, key string) (bool, error) {
	// TTL covers a crashed holder, Unlock releases the normal path
	return s.client.SetNX(ctx, key, 1, sessionLockTTL).Result()
}

func (s *RedisSessionLocker) Unlock(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func ApplySessionLocker(locker SessionLocker) ApplyFunc {
	return func(s *Srv) {
		s.locker = locker
	}
}

// LocalSessionLocker covers single-process deployments where redis is not
// configured.
type LocalSessionLocker struct {
	mu    sync.Mutex
	locks map[string]bool
}

func NewLocalSessionLocker() *LocalSessionLocker {
	return &LocalSessionLocker{
		locks: make(map[string]bool),
	}
}

func (s *LocalSessionLocker) TryLock(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *LocalSessionLocker) Unlock(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}
