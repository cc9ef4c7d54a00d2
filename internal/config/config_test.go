package config

import (
	"os"
	"path/filepath"
	"testing"

	"finbot/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFailsFastWithoutToken(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[discord]\ntoken = \"\"\n")

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[discord]\ntoken = \"abc\"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("default model = %q", cfg.Gemini.Model)
	}
	if cfg.Health.Addr != ":8080" {
		t.Errorf("default health addr = %q", cfg.Health.Addr)
	}
	if cfg.News.EconomicURL == "" || cfg.News.StockQueryURL == "" {
		t.Error("default feed URLs missing")
	}
}

func TestLoadRejectsStockQueryURLWithoutPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[discord]\ntoken = \"abc\"\n\n[news]\nstock_query_url = \"https://example.com/rss/search\"\n")

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[discord]\ntoken = \"from-file\"\n")
	t.Setenv("DISCORD_TOKEN", "from-env")
	t.Setenv("FINNHUB_API_KEY", "fh-key")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Discord.Token != "from-env" {
		t.Errorf("env must override file, got %q", cfg.Discord.Token)
	}
	if cfg.Finnhub.APIKey != "fh-key" {
		t.Errorf("finnhub key = %q", cfg.Finnhub.APIKey)
	}
}

func TestMissingFileWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DISCORD_TOKEN", "abc")

	if _, err := Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("expected template to be written: %v", err)
	}
}
