package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/pkg/config"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, time.Hour)
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	platform, followers := "Instagram", 1200
	in := &dto.MarketIntelligenceSuggestion{
		BusinessNiche:         "Confeitaria",
		DigitalPresenceScore:  75,
		EstimatedMaturity:     "Em Expansão",
		SocialMediaPlatform:   &platform,
		SocialMediaFollowers:  &followers,
		HasGoogleMapsPresence: true,
		RecommendedApproach:   "Oferecer MEI",
	}
	require.NoError(t, c.Set(ctx, "enrichment:c1:1", in))

	out, err := c.Get(ctx, "enrichment:c1:1")
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, time.Hour, mr.TTL("enrichment:c1:1"))
	require.NoError(t, c.HealthCheck(ctx))
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := setupTestRedis(t)
	out, err := c.Get(context.Background(), "enrichment:none:0")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedisCache_Expira(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &dto.MarketIntelligenceSuggestion{BusinessNiche: "x"}))
	mr.FastForward(2 * time.Hour)
	out, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedisCache_ValorCorrupto(t *testing.T) {
	mr, c := setupTestRedis(t)
	require.NoError(t, mr.Set("k", "no-json"))
	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedisClient_SinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
