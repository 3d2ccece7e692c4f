package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when a key is absent or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache holds short-lived values (verification codes). Entries are lost on
// restart regardless of backend; callers must treat it as best-effort.
type Cache interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCache struct {
	c *redis.Client
}

func NewRedis(addr string) Cache {
	return &redisCache{c: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *redisCache) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}

type entry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu sync.Mutex
	m  map[string]entry
}

// NewMemory is the cache used when REDIS_URL is unset and in tests.
// Expired entries are swept on access.
func NewMemory() Cache {
	return &memoryCache{m: make(map[string]entry)}
}

func (mc *memoryCache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.m[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (mc *memoryCache) Get(_ context.Context, key string) (string, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	e, ok := mc.m[key]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(mc.m, key)
		return "", ErrNotFound
	}
	return e.value, nil
}

func (mc *memoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	delete(mc.m, key)
	return nil
}
