package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Source struct {
		DomesticGoldURL      string `yaml:"domestic_gold_url"`
		InternationalGoldURL string `yaml:"international_gold_url"`
		ExchangeRateURL      string `yaml:"exchange_rate_url"`
	} `yaml:"source"`
	Journal struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"journal"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Analysis struct {
		LookbackDays  int     `yaml:"lookback_days"`
		IQRMultiplier float64 `yaml:"iqr_multiplier"`
		MinSamples    int     `yaml:"min_samples"`
	} `yaml:"analysis"`
	Chart struct {
		Months     int    `yaml:"months"`
		OutputPath string `yaml:"output_path"`
	} `yaml:"chart"`
	Schedule struct {
		DailyCron   string `yaml:"daily_cron"`
		WeeklyCron  string `yaml:"weekly_cron"`
		MonthlyCron string `yaml:"monthly_cron"`
	} `yaml:"schedule"`
	Backtest struct {
		InitialInvestment float64 `yaml:"initial_investment"`
		BuyThreshold      float64 `yaml:"buy_threshold"`
		SellThreshold     float64 `yaml:"sell_threshold"`
	} `yaml:"backtest"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
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
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("JOURNAL_CSV_PATH"); v != "" {
		cfg.Journal.CSVPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.LookbackDays = n
		}
	}
	if v := os.Getenv("IQR_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.IQRMultiplier = f
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Journal.CSVPath == "" {
		cfg.Journal.CSVPath = "data/kimchi_gold_price_log.csv"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/kimchi_gold.db"
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 365
	}
	if cfg.Analysis.IQRMultiplier == 0 {
		cfg.Analysis.IQRMultiplier = 1.5
	}
	if cfg.Analysis.MinSamples == 0 {
		cfg.Analysis.MinSamples = 4
	}
	if cfg.Chart.Months == 0 {
		cfg.Chart.Months = 12
	}
	if cfg.Chart.OutputPath == "" {
		cfg.Chart.OutputPath = fmt.Sprintf("data/kimchi_gold_recent_%dmonths.xlsx", cfg.Chart.Months)
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 10 * * *" // every day 10:00
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 30 10 * * 1" // Monday 10:30
	}
	if cfg.Schedule.MonthlyCron == "" {
		cfg.Schedule.MonthlyCron = "0 0 11 1 * *" // 1st of month 11:00
	}
	if cfg.Backtest.InitialInvestment == 0 {
		cfg.Backtest.InitialInvestment = 1_000_000
	}
	if cfg.Backtest.BuyThreshold == 0 {
		cfg.Backtest.BuyThreshold = -3.0
	}
	if cfg.Backtest.SellThreshold == 0 {
		cfg.Backtest.SellThreshold = 3.0
	}
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Analysis.LookbackDays <= 0 {
		return fmt.Errorf("analysis.lookback_days must be positive")
	}
	if c.Analysis.IQRMultiplier < 0 {
		return fmt.Errorf("analysis.iqr_multiplier must be non-negative")
	}
	if c.Analysis.MinSamples < 1 {
		return fmt.Errorf("analysis.min_samples must be at least 1")
	}
	if c.Backtest.BuyThreshold >= c.Backtest.SellThreshold {
		return fmt.Errorf("backtest.buy_threshold must be below backtest.sell_threshold")
	}
	return nil
}
