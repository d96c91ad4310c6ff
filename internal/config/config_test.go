package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultPlatform, cfg.Relay.Platform)
	assert.Len(t, cfg.Allowlist.Users, 3)
	assert.Equal(t, "Sorry, I only respond to specific users.", cfg.Responses.Default)
}

func TestDefaultKeywordOrder(t *testing.T) {
	cfg := Defaults()
	require.Len(t, cfg.Responses.Keywords, 4)

	keywords := make([]string, 0, len(cfg.Responses.Keywords))
	for _, rule := range cfg.Responses.Keywords {
		keywords = append(keywords, rule.Keyword)
	}
	assert.Equal(t, []string{"hello", "help", "time", "status"}, keywords)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9090"

[relay]
platform = "telegram"

[telegram]
bot_token = "tg-token"

[allowlist]
users = ["12345"]

[responses]
default = "no"

[responses.users]
"12345" = "hi friend"

[[responses.keywords]]
keyword = "ping"
reply = "pong"

[[responses.keywords]]
keyword = "pin"
reply = "needle"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "telegram", cfg.Relay.Platform)
	assert.Equal(t, "tg-token", cfg.Telegram.BotToken)
	assert.Equal(t, []string{"12345"}, cfg.Allowlist.Users)
	assert.Equal(t, "hi friend", cfg.Responses.Users["12345"])

	// Array-of-tables order is the keyword scan order.
	require.Len(t, cfg.Responses.Keywords, 2)
	assert.Equal(t, "ping", cfg.Responses.Keywords[0].Keyword)
	assert.Equal(t, "pin", cfg.Responses.Keywords[1].Keyword)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MESSAGING_PLATFORM", "facebook")
	t.Setenv("FACEBOOK_PAGE_TOKEN", "fb-token")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, "facebook", cfg.Relay.Platform)
	assert.Equal(t, "fb-token", cfg.Facebook.PageToken)
	assert.Equal(t, "tg-token", cfg.Telegram.BotToken)
}

func TestLoadRejectsKeywordWithoutReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[responses.keywords]]
keyword = "ping"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
