package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	App struct {
		Env       string `yaml:"env" json:"env" env:"APP_ENV" env-default:"production" env-description:"development or production"`
		Port      string `yaml:"port" json:"port" env:"HTTP_SERVER_PORT" env-default:"8080"`
		LogLevel  string `yaml:"logLevel" json:"logLevel" env:"LOG_LEVEL" env-default:"info"`
		SentryDSN string `yaml:"sentryDsn" json:"sentryDsn" env:"SENTRY_DSN" env-description:"errors are reported to Sentry when set"`
	} `yaml:"app" json:"app"`
	Instagram struct {
		// Optional: without a token the placeholder posts are served.
		AccessToken string        `yaml:"accessToken" json:"accessToken" env:"INSTAGRAM_ACCESS_TOKEN" env-description:"long-lived Instagram access token"`
		GraphURL    string        `yaml:"graphUrl" json:"graphUrl" env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
		Limit       int           `yaml:"limit" json:"limit" env:"INSTAGRAM_FEED_LIMIT" env-default:"12"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout" env:"INSTAGRAM_TIMEOUT" env-default:"10s"`
	} `yaml:"instagram" json:"instagram"`
	Feed struct {
		// How long a resolved feed is considered fresh. 0 disables caching.
		Revalidate time.Duration `yaml:"revalidate" json:"revalidate" env:"FEED_REVALIDATE" env-default:"1h"`
	} `yaml:"feed" json:"feed"`
	Cache struct {
		RedisURL   string `yaml:"redisUrl" json:"redisUrl" env:"REDIS_URL" env-description:"in-memory cache is used when empty"`
		MemorySize int    `yaml:"memorySize" json:"memorySize" env:"MEMORY_CACHE_SIZE" env-default:"128"`
	} `yaml:"cache" json:"cache"`
	RateLimit struct {
		RPS   float64 `yaml:"rps" json:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
		Burst int     `yaml:"burst" json:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
	} `yaml:"rateLimit" json:"rateLimit"`
}

// Read loads the configuration from the environment.
// If configPath is not empty the file is read first and environment variables override it.
func Read(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &config); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Usage describes every supported environment variable
func Usage() string {
	help, _ := cleanenv.GetDescription(&Config{}, nil)
	return help
}

func (c *Config) validate() error {
	if c.Instagram.Limit < 1 {
		return fmt.Errorf("INSTAGRAM_FEED_LIMIT must be positive, got %d", c.Instagram.Limit)
	}

	if c.Instagram.Timeout < 0 {
		return fmt.Errorf("INSTAGRAM_TIMEOUT must be non-negative")
	}

	if c.Feed.Revalidate < 0 {
		return fmt.Errorf("FEED_REVALIDATE must be non-negative")
	}

	if c.Cache.MemorySize < 1 {
		return fmt.Errorf("MEMORY_CACHE_SIZE must be positive, got %d", c.Cache.MemorySize)
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit settings must be non-negative")
	}

	return nil
}

// Development reports whether the service runs in a development environment
func (c *Config) Development() bool {
	return c.App.Env == EnvDevelopment
}
