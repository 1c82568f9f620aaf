package submissionlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker блокировки на SET NX в Redis
type Locker struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Locker {
	return &Locker{client: client}
}

// Acquire ставит ключ, если его еще нет. false означает, что ключ уже занят
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submissionlock: setnx %s: %w", key, err)
	}
	return ok, nil
}

func (l *Locker) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("submissionlock: del %s: %w", key, err)
	}
	return nil
}
