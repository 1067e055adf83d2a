package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, 20, cfg.Recipes.DefaultMaxTime)
	assert.Equal(t, 5, cfg.Recipes.TopN)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 32, cfg.Queue.MaxSize)
}

func TestLoadConfigRejectsNegativeQueue(t *testing.T) {
	t.Setenv("QUEUE_WORKERS", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid queue size")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_API_KEY", "sk-test-123456789")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.LLMAvailable())
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestLLMAvailable(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Enabled: true, APIKey: "  "}}
	assert.False(t, cfg.LLMAvailable())

	cfg.LLM.APIKey = "key"
	assert.True(t, cfg.LLMAvailable())

	cfg.LLM.Enabled = false
	assert.False(t, cfg.LLMAvailable())
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", MaskAPIKey("sk-abcdefghwxyz"))
}
