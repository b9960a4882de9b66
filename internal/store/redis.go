package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/formsight/internal/domain"
)

// Redis configuration defaults.
const (
	DefaultResultTTL  = 24 * time.Hour
	connectionTimeout = 5 * time.Second
	keyPrefix         = "formsight:result:"
)

// RedisConfig holds Redis connection configuration for the result store.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// ResultTTL bounds how long a cached result outlives its page view.
	ResultTTL time.Duration
}

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

// RedisStore is a redis-backed ResultStore. A single SET per Put gives
// the required atomic replace-on-write semantics.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a ResultStore backed by Redis and verifies the
// connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = DefaultResultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.ResultTTL}, nil
}

// Put replaces the stored result for the result's page.
func (s *RedisStore) Put(ctx context.Context, result *domain.ClassificationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+result.PageID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result for page %s: %w", result.PageID, err)
	}
	return nil
}

// Get returns the latest result for a page, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, pageID string) (*domain.ClassificationResult, error) {
	payload, err := s.client.Get(ctx, keyPrefix+pageID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result for page %s: %w", pageID, err)
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode result for page %s: %w", pageID, err)
	}
	return &result, nil
}

// Delete removes the stored result for a page.
func (s *RedisStore) Delete(ctx context.Context, pageID string) error {
	if err := s.client.Del(ctx, keyPrefix+pageID).Err(); err != nil {
		return fmt.Errorf("delete result for page %s: %w", pageID, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
