package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the lock key only when it still holds our token, so
// a locker whose TTL already expired cannot release a competitor's lock.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

const redisPollInterval = 100 * time.Millisecond

// RedisLocker implements Locker on a shared Redis key, for deployments that
// run more than one instance of the service. The key carries a TTL so a
// crashed holder cannot block submissions forever.
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	wait   time.Duration

	mu    sync.Mutex
	token string
}

// NewRedisLocker creates a Redis-backed locker on the given key.
func NewRedisLocker(client *redis.Client, key string, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisLocker) Acquire() error {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(context.Background(), l.key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("redis lock acquire: %w", err)
		}
		if ok {
			l.mu.Lock()
			l.token = token
			l.mu.Unlock()
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(redisPollInterval)
	}
}

func (l *RedisLocker) Release() {
	l.mu.Lock()
	token := l.token
	l.token = ""
	l.mu.Unlock()
	if token == "" {
		return
	}
	l.client.Eval(context.Background(), releaseScript, []string{l.key}, token)
}
