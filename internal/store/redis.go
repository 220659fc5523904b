package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

// Redis keeps a backup copy of every domain under app_data:<domain>.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis backup store.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Load(ctx context.Context, d registry.Domain) (registry.DomainData, error) {
	raw, err := r.client.Get(ctx, key(d)).Bytes()
	if errors.Is(err, redis.Nil) {
		return registry.DomainData{}, ErrNotFound
	}
	if err != nil {
		return registry.DomainData{}, fmt.Errorf("get backup: %w", err)
	}

	var data registry.DomainData
	if err := json.Unmarshal(raw, &data); err != nil {
		return registry.DomainData{}, fmt.Errorf("decode backup: %w", err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, d registry.Domain, data registry.DomainData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return r.client.Set(ctx, key(d), raw, r.ttl).Err()
}

func key(d registry.Domain) string {
	return "app_data:" + string(d)
}
