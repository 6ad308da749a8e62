package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"edge-shortener/internal/domain"
)

// RedisOptions configures the connection made by DialRedis.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore is a Store backed by Redis. TTLs are enforced by Redis itself
// through SET ... EX, so expired keys simply read back as missing.
type RedisStore struct {
	client    *goredis.Client
	keyPrefix string
}

// NewRedisStore wraps an existing client. Every key is stored as keyPrefix+key.
func NewRedisStore(client *goredis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// DialRedis connects to Redis and verifies the connection with PING.
func DialRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis connect failed")
	}
	return NewRedisStore(client, opts.KeyPrefix), nil
}

// Get retrieves the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == goredis.Nil {
		return "", domain.ErrNotFound
	} else if err != nil {
		return "", errors.Wrap(err, "get redis failed")
	}
	return val, nil
}

// Put stores value under key with the given TTL.
func (s *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	// go-redis treats a non-positive expiration as "no expiry", which would
	// make the record permanent.
	if ttl <= 0 {
		return domain.ErrInvalidTTL
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "set redis failed")
	}
	return nil
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "ping redis failed")
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
