package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "/data/phone.db", cfg.DatabasePath)
	assert.Equal(t, BackendSQLite, cfg.StateBackend)
	assert.Equal(t, 800*time.Millisecond, cfg.BubbleDelay)
	assert.Equal(t, "gpt-4o-mini", cfg.InitialModel)
	assert.Equal(t, "English", cfg.BaseLanguage)
	assert.Empty(t, cfg.FrontendDir)
}

func TestLoadConfig_Environment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("APP_PORT", "9090")
	t.Setenv("STATE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("BUBBLE_DELAY", "250ms")
	t.Setenv("INITIAL_API_URL", "https://api.example.com/v1")
	t.Setenv("BASE_LANGUAGE", "Chinese")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, BackendRedis, cfg.StateBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.BubbleDelay)
	assert.Equal(t, "https://api.example.com/v1", cfg.InitialAPIURL)
	assert.Equal(t, "Chinese", cfg.BaseLanguage)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("STATE_BACKEND", "etcd")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "STATE_BACKEND")
	})

	t.Run("negative delay", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("BUBBLE_DELAY", "-1s")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "BUBBLE_DELAY")
	})
}
