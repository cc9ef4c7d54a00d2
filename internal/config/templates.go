package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# finbot configuration

[discord]
# Bot token (or set DISCORD_TOKEN)
token = ""
# Restrict command registration to one guild; empty registers globally
guild_id = ""

[gemini]
# Gemini API key (or set GEMINI_API_KEY)
api_key = ""
# Model used for /ask
model = "gemini-2.0-flash"

[finnhub]
# Finnhub API key (or set FINNHUB_API_KEY)
api_key = ""

[news]
# RSS search URL template for /stock-news; %s is the escaped query
stock_query_url = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"
# Fixed RSS URL for /economic-news
economic_url = "https://news.google.com/rss/search?q=economic+news&hl=en-US&gl=US&ceid=US:en"

[health]
# Liveness endpoint listen address
addr = ":8080"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
`

// WriteTemplate writes the default config template to the config directory.
// Existing files are left untouched.
func WriteTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
