package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/CATyPH67/shop-api/internal/platform/envutil"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

// ErrMiss reports that a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is the shared cache collaborator. Writes are last-write-wins with
// no locking; every cached value is a pure function of its key's arguments,
// so overlapping writes are interchangeable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisStore(rdb *goredis.Client, log *logger.Logger) Store {
	return &redisStore{log: log.With("service", "RedisCacheStore"), rdb: rdb}
}

// NewRedisStoreFromEnv dials REDIS_ADDR and verifies the connection.
func NewRedisStoreFromEnv(log *logger.Logger) (Store, error) {
	addr := strings.TrimSpace(envutil.String("REDIS_ADDR", ""))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(rdb, log), nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
