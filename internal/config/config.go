// Package config provides configuration management for the bot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"finbot/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Discord Discord `mapstructure:"discord"`
	Gemini  Gemini  `mapstructure:"gemini"`
	Finnhub Finnhub `mapstructure:"finnhub"`
	News    News    `mapstructure:"news"`
	Health  Health  `mapstructure:"health"`
	Logging Logging `mapstructure:"logging"`
}

// Discord holds chat platform configuration.
type Discord struct {
	Token   string `mapstructure:"token"`
	GuildID string `mapstructure:"guild_id"` // empty registers commands globally
}

// Gemini holds LLM provider configuration.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Finnhub holds market data provider configuration.
type Finnhub struct {
	APIKey      string `mapstructure:"api_key"`
	CalendarURL string `mapstructure:"calendar_url"`
}

// News holds RSS feed configuration.
type News struct {
	StockQueryURL string `mapstructure:"stock_query_url"` // %s is the query placeholder
	EconomicURL   string `mapstructure:"economic_url"`
}

// Health holds liveness endpoint configuration.
type Health struct {
	Addr string `mapstructure:"addr"`
}

// Logging holds logging configuration.
type Logging struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/finbot"
	}
	return filepath.Join(home, ".config", "finbot")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template and continue with defaults
			return WriteTemplate(configDir)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config) {
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Finnhub.CalendarURL == "" {
		cfg.Finnhub.CalendarURL = "https://finnhub.io/api/v1"
	}
	if cfg.News.StockQueryURL == "" {
		cfg.News.StockQueryURL = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"
	}
	if cfg.News.EconomicURL == "" {
		cfg.News.EconomicURL = "https://news.google.com/rss/search?q=economic+news&hl=en-US&gl=US&ceid=US:en"
	}
	if cfg.Health.Addr == "" {
		cfg.Health.Addr = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
		cfg.Logging.Console = true
		cfg.Logging.File = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.Discord.GuildID = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
}

// Validate checks that required settings are present and well-formed. The bot
// refuses to start without a platform token rather than connecting with an
// empty one, and rejects a stock news URL that cannot hold a query.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return errors.ErrMissingToken
	}
	if strings.Count(c.News.StockQueryURL, "%s") != 1 {
		return errors.Wrap(errors.ErrConfigInvalid, "news.stock_query_url needs exactly one %s query placeholder")
	}
	return nil
}
