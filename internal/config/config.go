package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the bot's runtime configuration, read from the environment
type Config struct {
	// Discord bot token
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	// Application ID for the bot, falls back to the session user when empty
	ApplicationID string `env:"APPLICATION_ID"`

	// Optional guild ID for development (server-specific commands)
	GuildID string `env:"GUILD_ID"`

	// Redis connection for the alias table
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// SessionTTL is how long a ping stays open before it goes stale
	SessionTTL time.Duration `env:"LFG_SESSION_TTL" envDefault:"30m"`

	// RequestTimeout bounds each Discord call made outside of an event handler
	RequestTimeout time.Duration `env:"LFG_REQUEST_TIMEOUT" envDefault:"10s"`

	// ShutdownConcurrency caps the parallel teardowns made while shutting down
	ShutdownConcurrency int `env:"LFG_SHUTDOWN_CONCURRENCY" envDefault:"4"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadDotEnv loads variables from a .env file without overriding ones that are
// already set. It reports whether the file was found.
func LoadDotEnv(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the env tags can't express
func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return errors.New("LFG_SESSION_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("LFG_REQUEST_TIMEOUT must be positive")
	}
	if c.ShutdownConcurrency < 1 {
		return errors.New("LFG_SHUTDOWN_CONCURRENCY must be at least 1")
	}
	return nil
}
