package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LLM_PROVIDER", "none")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAIModel)
	assert.Equal(t, 1000, cfg.LLM.OpenAIMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout())
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
}

func TestLoad_LeeVariables(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")
	t.Setenv("SEED_ON_STARTUP", "true")
	t.Setenv("ENRICHMENT_CACHE_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LLMProviderAnthropic, cfg.LLM.Provider)
	assert.True(t, cfg.LLM.Enabled())
	assert.InDelta(t, 0.7, cfg.LLM.OpenAITemperature, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout())
	assert.True(t, cfg.Seed.OnStartup)
	assert.Equal(t, 15*time.Minute, cfg.Redis.CacheTTL())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "mei", Password: "p@ss", DBName: "mei_mentor", SSLMode: "disable"}
	assert.Equal(t, "postgres://mei:p%40ss@db:5432/mei_mentor?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
