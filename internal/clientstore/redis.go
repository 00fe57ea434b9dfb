package clientstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "clientstore:"

// Redis stores each area as one hash. Every write slides the hash TTL so
// idle browsers eventually disappear.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// NewRedisClient connects and pings before handing the client out.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *Redis) Storage(contextID string) Storage {
	return &redisArea{r: r, key: redisKeyPrefix + contextID}
}

type redisArea struct {
	r   *Redis
	key string
}

func (a *redisArea) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := a.r.client.HGet(ctx, a.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (a *redisArea) SetItem(ctx context.Context, key, value string) error {
	_, err := a.r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, a.key, key, value)
		if a.r.ttl > 0 {
			pipe.Expire(ctx, a.key, a.r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (a *redisArea) RemoveItem(ctx context.Context, key string) error {
	if err := a.r.client.HDel(ctx, a.key, key).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (a *redisArea) Clear(ctx context.Context) error {
	if err := a.r.client.Del(ctx, a.key).Err(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
