package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage adapts a redis client to fiber.Storage so the session
// middleware can keep identities out of process memory. With no Redis
// configured the session store falls back to its in-memory default.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to Redis and verifies the connection
func NewRedisStorage(redisURL string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStorage{client: client}, nil
}

// Get retrieves a session by key. A missing key returns nil, nil per the
// fiber.Storage contract.
func (r *RedisStorage) Get(key string) ([]byte, error) {
	val, err := r.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores a session with expiration
func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	return r.client.Set(context.Background(), key, val, exp).Err()
}

// Delete removes a session
func (r *RedisStorage) Delete(key string) error {
	return r.client.Del(context.Background(), key).Err()
}

// Reset removes all sessions in the current database
func (r *RedisStorage) Reset() error {
	return r.client.FlushDB(context.Background()).Err()
}

// Close closes the Redis connection
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
