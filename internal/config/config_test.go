package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, 3*time.Second, cfg.GracePeriod)
	assert.Equal(t, 10*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 60, cfg.RaceDuration)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TYPERACE_PORT", "9000")
	t.Setenv("TYPERACE_STORAGE_TYPE", "redis")
	t.Setenv("TYPERACE_REDIS_URL", "redis://localhost:6380")
	t.Setenv("TYPERACE_GRACE_PERIOD", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://localhost:6380", cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.GracePeriod)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("TYPERACE_PORT", "99999")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad storage type", func(t *testing.T) {
		t.Setenv("TYPERACE_STORAGE_TYPE", "postgres")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("TYPERACE_STORAGE_TYPE", "redis")
		_, err := Load()
		require.Error(t, err)
	})
}
