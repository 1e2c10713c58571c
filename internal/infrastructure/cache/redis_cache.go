package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/pkg/config"
)

var _ ports.SuggestionCache = (*RedisCache)(nil)

const defaultTTL = 24 * time.Hour

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// RedisCache caché de sugerencias de enriquecimiento serializadas como JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache construye la caché; ttl <= 0 usa 24h.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get devuelve (nil, nil) si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) (*dto.MarketIntelligenceSuggestion, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var s dto.MarketIntelligenceSuggestion
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return &s, nil
}

// Set guarda la sugerencia con el TTL configurado.
func (c *RedisCache) Set(ctx context.Context, key string, s *dto.MarketIntelligenceSuggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// HealthCheck PING a Redis.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
