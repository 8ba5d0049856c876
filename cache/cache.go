// Package cache provides an optional Redis-backed cache for per-SKU
// predictions. The backend stays fully functional without Redis; a nil
// client disables caching.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// PredictionTTL bounds how stale a served prediction can be.
const PredictionTTL = 5 * time.Minute

// RedisClient wraps redis.Client. All methods are nil-safe.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to Redis, returning nil when the host is unset or
// unreachable so callers can treat caching as best-effort.
func NewRedisClient(host, port, password string) *RedisClient {
	if host == "" {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Failed to connect to Redis at %s, prediction cache disabled: %v", addr, err)
		return nil
	}

	log.Printf("✅ Connected to Redis at %s", addr)
	return &RedisClient{client: client}
}

// Set stores a JSON-encoded value with expiration.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, expiration).Err()
}

// Get retrieves a value into dest. ok is false on miss or when caching is
// disabled.
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) (ok bool) {
	if r == nil || r.client == nil {
		return false
	}
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Delete removes a key.
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// PredictionKey is the cache key for a SKU's prediction.
func PredictionKey(sku string) string {
	return "predict:" + sku
}
