// Package config loads the relay configuration from a TOML file with
// environment overrides for deployment-provided values.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":3000"
	DefaultPlatform   = "other"
)

type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	Relay     RelayConfig     `toml:"relay"`
	Facebook  FacebookConfig  `toml:"facebook"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Allowlist AllowlistConfig `toml:"allowlist"`
	Responses ResponsesConfig `toml:"responses"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// RelayConfig selects the outbound platform. Any value other than the
// registered channel types routes sends to the no-op adapter.
type RelayConfig struct {
	Platform string `toml:"platform" validate:"required"`
}

type FacebookConfig struct {
	PageToken string `toml:"page_token"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

// AllowlistConfig seeds the in-memory allow-list at startup.
type AllowlistConfig struct {
	Users []string `toml:"users"`
}

// KeywordRule maps a lowercase keyword substring to a canned reply.
// Declaration order in the config file is the scan order.
type KeywordRule struct {
	Keyword string `toml:"keyword" validate:"required"`
	Reply   string `toml:"reply" validate:"required"`
}

// ResponsesConfig holds the static reply tables.
type ResponsesConfig struct {
	Default  string            `toml:"default" validate:"required"`
	Users    map[string]string `toml:"users"`
	Keywords []KeywordRule     `toml:"keywords" validate:"dive"`
}

// Load reads the config file at path (DefaultConfigPath when empty), starting
// from built-in defaults. A missing file is not an error. Environment
// variables PORT, MESSAGING_PLATFORM, FACEBOOK_PAGE_TOKEN and
// TELEGRAM_BOT_TOKEN override their file counterparts. Missing platform
// credentials are not a load error; the corresponding send fails at request
// time instead.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Defaults returns the built-in configuration: placeholder allow-list entries,
// their greetings, and the stock keyword table. The "time" reply is rendered
// once at load time.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Relay: RelayConfig{
			Platform: DefaultPlatform,
		},
		Allowlist: AllowlistConfig{
			Users: []string{"user_id_1", "user_id_2", "user_id_3"},
		},
		Responses: ResponsesConfig{
			Default: "Sorry, I only respond to specific users.",
			Users: map[string]string{
				"user_id_1": "Hello VIP User! How can I help you today?",
				"user_id_2": "Welcome back, special user!",
				"user_id_3": "Hey! Good to see you again!",
			},
			Keywords: []KeywordRule{
				{Keyword: "hello", Reply: "Hello there!"},
				{Keyword: "help", Reply: "I can help you with basic queries!"},
				{Keyword: "time", Reply: "Current time is: " + time.Now().Format("3:04:05 PM")},
				{Keyword: "status", Reply: "Bot is running smoothly!"},
			},
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if platform := strings.TrimSpace(os.Getenv("MESSAGING_PLATFORM")); platform != "" {
		cfg.Relay.Platform = platform
	}
	if token := strings.TrimSpace(os.Getenv("FACEBOOK_PAGE_TOKEN")); token != "" {
		cfg.Facebook.PageToken = token
	}
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		cfg.Telegram.BotToken = token
	}
}
