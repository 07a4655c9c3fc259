package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/pautinka/internal/models"
)

// DefaultTTL время жизни результата поиска по умолчанию
const DefaultTTL = 5 * time.Minute

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis реализация SearchCache поверх Redis
type Redis struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

var _ SearchCache = (*Redis)(nil)

// NewRedis подключается к Redis и проверяет соединение
func NewRedis(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{client: client, logger: logger, ttl: ttl}, nil
}

// GetUsers читает результат поиска из Redis
func (r *Redis) GetUsers(ctx context.Context, tags []string) ([]models.User, bool, error) {
	b, err := r.client.Get(ctx, SearchKey(tags)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, false, fmt.Errorf("decode cached users: %w", err)
	}

	return users, true, nil
}

// SetUsers сохраняет результат поиска с TTL
func (r *Redis) SetUsers(ctx context.Context, tags []string, users []models.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	if err := r.client.Set(ctx, SearchKey(tags), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Invalidate удаляет все ключи поиска
func (r *Redis) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, searchPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.logger.WarnContext(ctx, "Failed to delete cache key",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	return nil
}

// Ping проверяет соединение
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает соединение
func (r *Redis) Close() error {
	return r.client.Close()
}
