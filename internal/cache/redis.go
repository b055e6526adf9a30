package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/emrgen/doctrack/internal/config"
	redis "github.com/redis/go-redis/v9"
)

var _ Flag = (*RedisFlag)(nil)

// RedisFlag shares the dirty flag between processes working on the same
// store. Every Raise bumps a version counter, a process sees the flag raised
// when the counter moved since its last Take.
type RedisFlag struct {
	client *redis.Client
	key    string

	mu   sync.Mutex
	seen int64
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: 2, // Connection protocol
	})
}

func NewRedisFlag(client *redis.Client, key string) *RedisFlag {
	return &RedisFlag{client: client, key: key}
}

func (r *RedisFlag) Raise(ctx context.Context) error {
	return r.client.Incr(ctx, r.key).Err()
}

func (r *RedisFlag) Take(ctx context.Context) (bool, error) {
	version, err := r.client.Get(ctx, r.key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dirty := version != r.seen
	r.seen = version

	return dirty, nil
}
