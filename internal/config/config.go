// Package config loads application configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

// Watch holds one watched position in the config file.
type Watch struct {
	Code     string  `yaml:"code"`
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Provider struct {
		Name   string `yaml:"name"` // "yahoo" or "alphavantage"
		APIKey string `yaml:"api_key"`
		Period string `yaml:"period"`
	} `yaml:"provider"`
	Watchlist []Watch `yaml:"watchlist"`
	FX        struct {
		Pair     string  `yaml:"pair"`
		Fallback float64 `yaml:"fallback"`
	} `yaml:"fx"`
	Scorer struct {
		Policy     string   `yaml:"policy"`
		Indicators []string `yaml:"indicators"`
	} `yaml:"scorer"`
	Simulation struct {
		DaysForecast int    `yaml:"days_forecast"`
		Simulations  int    `yaml:"simulations"`
		Mode         string `yaml:"mode"`
	} `yaml:"simulation"`
	Backtest struct {
		RSIWindow      int     `yaml:"rsi_window"`
		BuyThreshold   float64 `yaml:"buy_threshold"`
		SellThreshold  float64 `yaml:"sell_threshold"`
		InitialCapital float64 `yaml:"initial_capital"`
	} `yaml:"backtest"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file next to the binary is honored if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FX_FALLBACK"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FX.Fallback = rate
		}
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	// Defaults
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = "yahoo"
	}
	if cfg.Provider.Period == "" {
		cfg.Provider.Period = "6mo"
	}
	if cfg.FX.Pair == "" {
		cfg.FX.Pair = "KRW=X"
	}
	if cfg.FX.Fallback == 0 {
		cfg.FX.Fallback = 1400
	}
	if cfg.Scorer.Policy == "" {
		cfg.Scorer.Policy = strategy.PolicyWeighted
	}
	if len(cfg.Scorer.Indicators) == 0 {
		cfg.Scorer.Indicators = strategy.DefaultIndicators
	}
	if cfg.Simulation.DaysForecast == 0 {
		cfg.Simulation.DaysForecast = 30
	}
	if cfg.Simulation.Simulations == 0 {
		cfg.Simulation.Simulations = 200
	}
	if cfg.Backtest.RSIWindow == 0 {
		cfg.Backtest.RSIWindow = 14
	}
	if cfg.Backtest.BuyThreshold == 0 {
		cfg.Backtest.BuyThreshold = 30
	}
	if cfg.Backtest.SellThreshold == 0 {
		cfg.Backtest.SellThreshold = 70
	}
	if cfg.Backtest.InitialCapital == 0 {
		cfg.Backtest.InitialCapital = 10000
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 0 18 * * 1-5"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	return cfg, nil
}

// Validate checks field consistency. Telegram credentials are optional;
// the bot simply stays silent without them.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case "yahoo":
	case "alphavantage":
		if c.Provider.APIKey == "" {
			return fmt.Errorf("provider.api_key is required for alphavantage")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider.Name)
	}
	if !collector.ValidPeriod(c.Provider.Period) {
		return fmt.Errorf("invalid provider.period %q", c.Provider.Period)
	}
	if err := strategy.ValidatePolicy(c.Scorer.Policy); err != nil {
		return err
	}
	if err := strategy.ValidateIndicators(c.Scorer.Indicators); err != nil {
		return err
	}
	if c.Backtest.SellThreshold <= c.Backtest.BuyThreshold {
		return fmt.Errorf("backtest.sell_threshold must exceed buy_threshold")
	}
	return nil
}

// Holdings converts the watchlist into analyzer input.
func (c *Config) Holdings() []model.Holding {
	holdings := make([]model.Holding, 0, len(c.Watchlist))
	for _, w := range c.Watchlist {
		holdings = append(holdings, model.Holding{Code: w.Code, Name: w.Name, Quantity: w.Quantity})
	}
	return holdings
}

// NameOverrides maps watchlist codes to configured display names.
func (c *Config) NameOverrides() map[string]string {
	m := make(map[string]string, len(c.Watchlist))
	for _, w := range c.Watchlist {
		if w.Name != "" {
			m[w.Code] = w.Name
		}
	}
	return m
}
