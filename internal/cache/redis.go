package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/telvoice/go-callcenter-backend/internal/config"
)

// RedisStore is the production Store backed by a Redis server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using cfg and verifies the connection
// with a ping before returning.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Set stores blob under key with no expiration.
func (s *RedisStore) Set(ctx context.Context, key string, blob []byte) error {
	return s.client.Set(ctx, key, blob, 0).Err()
}

// Get returns the blob stored under key, mapping redis.Nil to ErrMiss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return b, nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
