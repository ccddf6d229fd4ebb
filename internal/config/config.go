// Package config loads the application configuration from a YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/seasalt-intel/webintel/internal/database"
	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/pagespeed"
)

// Config is the full application configuration.
type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.Config       `mapstructure:"logger"`
	Server    ServerConfig        `mapstructure:"server"`
	Database  database.Config     `mapstructure:"database"`
	Crawler   CrawlerConfig       `mapstructure:"crawler"`
	PageSpeed pagespeed.Config    `mapstructure:"pagespeed"`
	Schedule  ScheduleConfig      `mapstructure:"schedule"`
	Sites     []domain.SiteTarget `mapstructure:"sites"`
}

// AppConfig identifies the running service.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CrawlerConfig holds the crawl settings.
type CrawlerConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	Pace         time.Duration `mapstructure:"pace"`
}

// ScheduleConfig controls the recurring sync job.
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// Load reads configuration from cfgFile (or ./config.yaml when empty),
// applies defaults, and lets environment variables override.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/webintel")
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// ValidateStore reports whether persistence is usable. Commands that write
// results treat a failure here as fatal before any crawl work starts.
func (c *Config) ValidateStore() error {
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("intelligence store not configured: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "webintel")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.development", true)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("crawler.fetch_timeout", "12s")
	v.SetDefault("crawler.pace", "2s")

	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.cron", "0 3 * * *")
}

func bindEnv(v *viper.Viper) {
	binds := map[string]string{
		"app.environment":    "APP_ENV",
		"logger.level":       "LOG_LEVEL",
		"server.address":     "SERVER_ADDRESS",
		"database.host":      "DB_HOST",
		"database.port":      "DB_PORT",
		"database.user":      "DB_USER",
		"database.password":  "DB_PASSWORD",
		"database.dbname":    "DB_NAME",
		"database.sslmode":   "DB_SSLMODE",
		"pagespeed.api_key":  "PAGESPEED_API_KEY",
		"pagespeed.endpoint": "PAGESPEED_ENDPOINT",
	}
	for key, env := range binds {
		_ = v.BindEnv(key, env)
	}
}
