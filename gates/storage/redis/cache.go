package redis

import (
	"context"
	"errors"
	"fmt"
	goredis "github.com/redis/go-redis/v9"
	"playerd/domain"
	"playerd/internal/config"
	"time"
)

const keyPrefix = "player:handle:"

// HandleCache keeps handles that are known to be registered.
type HandleCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// New connects to cfg.Addr and pings it before returning.
func New(ctx context.Context, cfg config.Redis) (*HandleCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

func NewWithClient(client *goredis.Client, ttl time.Duration) *HandleCache {
	return &HandleCache{client: client, ttl: ttl}
}

func key(handle domain.Handle) string {
	return keyPrefix + string(handle)
}

func (c *HandleCache) Seen(ctx context.Context, handle domain.Handle) (bool, error) {
	err := c.client.Get(ctx, key(handle)).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *HandleCache) Remember(ctx context.Context, handle domain.Handle) error {
	return c.client.Set(ctx, key(handle), 1, c.ttl).Err()
}

func (c *HandleCache) Close() error {
	return c.client.Close()
}
