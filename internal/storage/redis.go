package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a wrapper around redis.Client implementing Storage.
// Keys are written without expiration; the session and ticket records live
// until the application removes them.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage creates a new Redis-backed storage from the provided URL
func NewRedisStorage(redisURL string) (*RedisStorage, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStorage) Exists(ctx context.Context, key string) bool {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return count > 0
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
