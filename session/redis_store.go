package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comanda-io/comanda/core"
)

const redisSessionKey = "comanda:session"

// RedisStore keeps the session in Redis so several terminals on the same
// station share one login. The key carries a TTL; an expired key reads as
// logged out.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger core.Logger
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(redisURL string, ttl time.Duration, logger core.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}, nil
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	result, err := r.client.HGetAll(ctx, redisSessionKey).Result()
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if len(result) == 0 {
		return Session{}, nil
	}
	return Session{
		Token: result["token"],
		Role:  core.Role(result["role"]),
	}, nil
}

func (r *RedisStore) Establish(ctx context.Context, s Session) error {
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, redisSessionKey, map[string]interface{}{
		"token":      s.Token,
		"role":       string(s.Role),
		"created_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, redisSessionKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to establish session: %w", err)
	}
	r.logger.Debug("Session established", map[string]interface{}{
		"operation": "session_establish",
		"store":     "redis",
		"role":      string(s.Role),
	})
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, redisSessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
