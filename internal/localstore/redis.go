package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisTimeout = 5 * time.Second

// Redis keeps the slots in a shared Redis instance so several kiosk
// processes can resume the same session. Slot keys are namespaced under
// "nance:".
type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

// OpenRedis connects to the given address and verifies the connection with
// a ping.
func OpenRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// Close releases the underlying connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, "nance:"+key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, "nance:"+key, value, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_ = r.client.Del(ctx, "nance:"+key).Err()
}
