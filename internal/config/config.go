package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// State backends for the persisted application state.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	AppPort      int           `mapstructure:"APP_PORT"`
	DatabasePath string        `mapstructure:"DATABASE_PATH"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	StateBackend string        `mapstructure:"STATE_BACKEND"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	BubbleDelay  time.Duration `mapstructure:"BUBBLE_DELAY"`
	FrontendDir  string        `mapstructure:"FRONTEND_DIR"`

	// Written to the settings table on first run only.
	InitialAPIURL string `mapstructure:"INITIAL_API_URL"`
	InitialAPIKey string `mapstructure:"INITIAL_API_KEY"`
	InitialModel  string `mapstructure:"INITIAL_MODEL"`
	BaseLanguage  string `mapstructure:"BASE_LANGUAGE"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/phone.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("STATE_BACKEND", BackendSQLite)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("BUBBLE_DELAY", "800ms")
	viper.SetDefault("FRONTEND_DIR", "")
	viper.SetDefault("INITIAL_API_URL", "")
	viper.SetDefault("INITIAL_API_KEY", "")
	viper.SetDefault("INITIAL_MODEL", "gpt-4o-mini")
	viper.SetDefault("BASE_LANGUAGE", "English")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.StateBackend = strings.ToLower(strings.TrimSpace(cfg.StateBackend))
	if cfg.StateBackend != BackendSQLite && cfg.StateBackend != BackendRedis {
		return nil, fmt.Errorf("unknown STATE_BACKEND %q, expected %q or %q", cfg.StateBackend, BackendSQLite, BackendRedis)
	}
	if cfg.BubbleDelay < 0 {
		return nil, fmt.Errorf("BUBBLE_DELAY must not be negative, got %s", cfg.BubbleDelay)
	}

	return &cfg, nil
}
