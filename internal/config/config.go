// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at startup
type Config struct {
	Host            string
	Port            int
	StorageType     string
	RedisURL        string
	GracePeriod     time.Duration
	IdleTimeout     time.Duration
	RaceDuration    int
	TextsPath       string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from TYPERACE_* environment variables,
// falling back to defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TYPERACE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", "")
	v.SetDefault("port", 8080)
	v.SetDefault("storage-type", "memory")
	v.SetDefault("redis-url", "")
	v.SetDefault("grace-period", 3*time.Second)
	v.SetDefault("idle-timeout", 10*time.Minute)
	v.SetDefault("race-duration", 60)
	v.SetDefault("texts-path", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("shutdown-timeout", 30*time.Second)

	cfg := &Config{
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		StorageType:     v.GetString("storage-type"),
		RedisURL:        v.GetString("redis-url"),
		GracePeriod:     v.GetDuration("grace-period"),
		IdleTimeout:     v.GetDuration("idle-timeout"),
		RaceDuration:    v.GetInt("race-duration"),
		TextsPath:       v.GetString("texts-path"),
		LogLevel:        v.GetString("log-level"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.StorageType != "memory" && c.StorageType != "redis" {
		return fmt.Errorf("invalid storage type %q: must be 'memory' or 'redis'", c.StorageType)
	}
	if c.StorageType == "redis" && c.RedisURL == "" {
		return fmt.Errorf("redis-url required when storage-type is redis")
	}
	if c.GracePeriod <= 0 {
		return fmt.Errorf("grace-period must be positive")
	}
	if c.RaceDuration <= 0 {
		return fmt.Errorf("race-duration must be positive")
	}
	return nil
}
