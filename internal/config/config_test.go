package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "missing file falls back to defaults")

	assert.Equal(t, "yahoo", cfg.Provider.Name)
	assert.Equal(t, "6mo", cfg.Provider.Period)
	assert.Equal(t, "KRW=X", cfg.FX.Pair)
	assert.Equal(t, 1400.0, cfg.FX.Fallback)
	assert.Equal(t, "weighted", cfg.Scorer.Policy)
	assert.Len(t, cfg.Scorer.Indicators, 4)
	assert.Equal(t, 30, cfg.Simulation.DaysForecast)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
provider:
  name: yahoo
  period: 1y
watchlist:
  - code: 005930.KS
    name: Samsung Electronics
    quantity: 10
  - code: AAPL
scorer:
  policy: rsi_only
telegram:
  bot_token: from-file
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("SQLITE_PATH", "/tmp/advisor.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Telegram.BotToken, "env wins over file")
	assert.Equal(t, "/tmp/advisor.db", cfg.Database.SQLitePath)
	assert.Equal(t, "1y", cfg.Provider.Period)
	assert.Equal(t, "rsi_only", cfg.Scorer.Policy)

	holdings := cfg.Holdings()
	require.Len(t, holdings, 2)
	assert.Equal(t, "005930.KS", holdings[0].Code)
	assert.Equal(t, 10.0, holdings[0].Quantity)

	overrides := cfg.NameOverrides()
	assert.Equal(t, "Samsung Electronics", overrides["005930.KS"])
	assert.NotContains(t, overrides, "AAPL", "unnamed entries have no override")
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Provider.Name = "alphavantage"
	assert.Error(t, cfg.Validate(), "alphavantage requires an api key")
	cfg.Provider.APIKey = "demo"
	assert.NoError(t, cfg.Validate())

	cfg.Provider.Name = "bloomberg"
	assert.Error(t, cfg.Validate())
	cfg.Provider.Name = "yahoo"

	cfg.Provider.Period = "42mo"
	assert.Error(t, cfg.Validate())
	cfg.Provider.Period = "6mo"

	cfg.Scorer.Indicators = []string{"rsi", "astrology"}
	assert.Error(t, cfg.Validate())
	cfg.Scorer.Indicators = []string{"rsi"}

	cfg.Backtest.BuyThreshold = 80
	assert.Error(t, cfg.Validate(), "sell threshold must exceed buy")
}
