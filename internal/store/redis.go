package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
)

// RedisStore keeps step payloads in Redis with a per-entry TTL
type RedisStore struct {
	client *redis.Client
	logger logging.Logger
}

// NewRedisStore creates a new Redis-backed step store
func NewRedisStore(cfg *config.Config) *RedisStore {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB

	// Configure timeouts
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logging.GetGlobalLogger(),
	}
}

// Set stores a step payload with the given TTL
func (s *RedisStore) Set(ctx context.Context, identity, stepKey string, payload []byte, ttl time.Duration) error {
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to store invalid JSON payload for step %s", stepKey)
	}

	if err := s.client.Set(ctx, s.stepRedisKey(identity, stepKey), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store step payload: %w", err)
	}
	return nil
}

// Get retrieves a step payload. Corrupt entries are removed and reported
// as missing so the wizard re-renders an empty step.
func (s *RedisStore) Get(ctx context.Context, identity, stepKey string) ([]byte, error) {
	key := s.stepRedisKey(identity, stepKey)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get step payload: %w", err)
	}

	if !json.Valid(data) {
		s.logger.Warn("Discarding corrupt step payload", map[string]interface{}{
			"identity": identity,
			"step_key": stepKey,
		})
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Error("Failed to delete corrupt step payload", map[string]interface{}{
				"identity": identity,
				"step_key": stepKey,
				"error":    delErr.Error(),
			})
		}
		return nil, ErrNotFound
	}

	return data, nil
}

// Delete removes a step payload
func (s *RedisStore) Delete(ctx context.Context, identity, stepKey string) error {
	return s.client.Del(ctx, s.stepRedisKey(identity, stepKey)).Err()
}

// HealthCheck verifies the Redis connection
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// stepRedisKey generates the Redis key for a step payload
func (s *RedisStore) stepRedisKey(identity, stepKey string) string {
	return fmt.Sprintf("wizard:step:%s:%s", identity, stepKey)
}
