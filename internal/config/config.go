package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Content API
	DisneyContentURL string // Base URL of the Disney+ content API
	StarContentURL   string // Base URL of the Star+ content API
	CatalogURL       string // Site configuration endpoint, %s is the client id
	UserAgent        string

	// Sweep
	RegionTimeout         time.Duration // Per-region fetch timeout (default: 15s)
	SweepTimeout          time.Duration // Whole sweep timeout (default: 15m)
	RetryAttempts         int           // Extra attempts for transient API failures (default: 2)
	SeriesUpdateThreshold int           // Changes before a series report is re-sent (default: 6)
	MovieUpdateThreshold  int           // Changes before a movie report is re-sent (default: 11)

	// Region catalog
	CatalogTTL         time.Duration // How long a fetched region list is trusted (default: 24h)
	CatalogRefreshCron string        // Cron spec for refreshing the region list (default: "0 */6 * * *")

	// Telegram
	TelegramBotToken string
	TelegramAPIURL   string

	// Server
	ServerPort string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	setDefaults(v)

	cfg := &Config{
		DisneyContentURL: v.GetString("DISNEY_CONTENT_URL"),
		StarContentURL:   v.GetString("STAR_CONTENT_URL"),
		CatalogURL:       v.GetString("CATALOG_URL"),
		UserAgent:        v.GetString("USER_AGENT"),

		RegionTimeout:         v.GetDuration("REGION_TIMEOUT"),
		SweepTimeout:          v.GetDuration("SWEEP_TIMEOUT"),
		RetryAttempts:         v.GetInt("RETRY_ATTEMPTS"),
		SeriesUpdateThreshold: v.GetInt("SERIES_UPDATE_THRESHOLD"),
		MovieUpdateThreshold:  v.GetInt("MOVIE_UPDATE_THRESHOLD"),

		CatalogTTL:         v.GetDuration("CATALOG_TTL"),
		CatalogRefreshCron: v.GetString("CATALOG_REFRESH_CRON"),

		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramAPIURL:   v.GetString("TELEGRAM_API_URL"),

		ServerPort: v.GetString("SERVER_PORT"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DISNEY_CONTENT_URL", "https://disney.content.edge.bamgrid.com")
	v.SetDefault("STAR_CONTENT_URL", "https://star.content.edge.bamgrid.com")
	v.SetDefault("CATALOG_URL", "https://cdn.registerdisney.go.com/jgc/v8/client/%s/configuration/site")
	v.SetDefault("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36")

	v.SetDefault("REGION_TIMEOUT", "15s")
	v.SetDefault("SWEEP_TIMEOUT", "15m")
	v.SetDefault("RETRY_ATTEMPTS", 2)
	v.SetDefault("SERIES_UPDATE_THRESHOLD", 6)
	v.SetDefault("MOVIE_UPDATE_THRESHOLD", 11)

	v.SetDefault("CATALOG_TTL", "24h")
	v.SetDefault("CATALOG_REFRESH_CRON", "0 */6 * * *")

	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")

	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	if c.DisneyContentURL == "" || c.StarContentURL == "" {
		return fmt.Errorf("DISNEY_CONTENT_URL and STAR_CONTENT_URL are required")
	}
	if c.RegionTimeout <= 0 {
		return fmt.Errorf("REGION_TIMEOUT must be positive")
	}
	if c.SweepTimeout <= 0 {
		return fmt.Errorf("SWEEP_TIMEOUT must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("RETRY_ATTEMPTS must not be negative")
	}
	if c.SeriesUpdateThreshold < 1 || c.MovieUpdateThreshold < 1 {
		return fmt.Errorf("update thresholds must be at least 1")
	}
	return nil
}
