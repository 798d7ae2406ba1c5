package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * 24 * time.Hour

// Persister stores carts as JSON strings; every save refreshes the TTL so
// abandoned carts expire on their own.
type Persister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPersister(client *redis.Client, ttl time.Duration) *Persister {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Persister{client: client, ttl: ttl}
}

func (p *Persister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (p *Persister) Save(ctx context.Context, key string, payload []byte) error {
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
