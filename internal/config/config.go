// Package config loads runtime settings from defaults, an optional config.yaml, a .env
// file and CONTEST_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/logger"
)

// EnvPrefix is prepended to every environment override, e.g. CONTEST_SERVER_PORT
const EnvPrefix = "CONTEST"

// Config is the full set of runtime settings
type Config struct {
	Source SourceConfig   `mapstructure:"source"`
	Window WindowConfig   `mapstructure:"window"`
	Cache  CacheConfig    `mapstructure:"cache"`
	Server ServerConfig   `mapstructure:"server"`
	Log    LogConfig      `mapstructure:"log"`
	Format contest.Policy `mapstructure:"format"`
	Notify NotifyConfig   `mapstructure:"notify"`
}

// SourceConfig describes the upstream page
type SourceConfig struct {
	URL       string        `mapstructure:"url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent" validate:"required"`
	// Location is the IANA zone the page's times are written in, or "Local"
	Location string `mapstructure:"location" validate:"required"`
}

// WindowConfig bounds how far ahead contests are listed
type WindowConfig struct {
	Days int `mapstructure:"days" validate:"min=1,max=60"`
}

// CacheConfig controls schedule freshness
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port       int           `mapstructure:"port" validate:"min=1,max=65535"`
	Revalidate time.Duration `mapstructure:"revalidate" validate:"gte=0"`
	CORS       CORSConfig    `mapstructure:"cors"`
}

// CORSConfig lists browser origins allowed to call the API
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig selects log verbosity and encoding
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// NotifyConfig holds credentials for every notification channel
type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Twitter  TwitterConfig  `mapstructure:"twitter"`
	Email    EmailConfig    `mapstructure:"email"`
}

// TelegramConfig holds the bot token and target chat
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// TwitterConfig holds OAuth 1.0a keys
type TwitterConfig struct {
	APIKey       string `mapstructure:"api_key"`
	APISecret    string `mapstructure:"api_secret"`
	AccessToken  string `mapstructure:"access_token"`
	AccessSecret string `mapstructure:"access_secret"`
}

// EmailConfig holds SMTP settings and recipients
type EmailConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port" validate:"min=0,max=65535"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from" validate:"omitempty,email"`
	To       []string `mapstructure:"to" validate:"dive,email"`
	SSL      bool     `mapstructure:"ssl"`
}

var defaults = map[string]interface{}{
	"source.url":                   "https://oipage.tommyjin.cn/",
	"source.timeout":               10 * time.Second,
	"source.user_agent":            "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"source.location":              "Local",
	"window.days":                  7,
	"cache.ttl":                    time.Hour,
	"server.port":                  3001,
	"server.revalidate":            time.Hour,
	"server.cors.allow_origins":    []string{"*"},
	"log.level":                    "info",
	"log.format":                   "json",
	"format.codeforces":            contest.DefaultPolicy.Codeforces,
	"format.atcoder":               contest.DefaultPolicy.AtCoder,
	"format.luogu":                 contest.DefaultPolicy.Luogu,
	"format.range_separator":       contest.DefaultPolicy.RangeSeparator,
	"notify.telegram.bot_token":    "",
	"notify.telegram.chat_id":      "",
	"notify.twitter.api_key":       "",
	"notify.twitter.api_secret":    "",
	"notify.twitter.access_token":  "",
	"notify.twitter.access_secret": "",
	"notify.email.host":            "",
	"notify.email.port":            587,
	"notify.email.username":        "",
	"notify.email.password":        "",
	"notify.email.from":            "",
	"notify.email.to":              []string{},
	"notify.email.ssl":             false,
}

// Load reads the configuration. path names an explicit config file; when empty,
// config.yaml is looked up in ./config and the working directory and may be absent.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file", nil)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Loaded config file", logger.Fields{"path": used})
	}

	return &cfg, nil
}

// Validate checks field constraints and the values that need parsing
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: source.location: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: log.level: %w", err)
	}
	return nil
}

// Location resolves source.location. "Local" and "" mean the process time zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Source.Location {
	case "", "Local", "local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Source.Location)
}

// WindowSpan returns the listing window as a duration
func (c *Config) WindowSpan() time.Duration {
	return time.Duration(c.Window.Days) * 24 * time.Hour
}

// Logger builds a logger writing to w at the configured level and format
func (c *Config) Logger(w io.Writer) *logger.Logger {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	return logger.New(level, w, c.Log.Format)
}
