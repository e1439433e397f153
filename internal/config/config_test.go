package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.LookbackDays != 365 {
		t.Errorf("expected default lookback 365, got %d", cfg.Analysis.LookbackDays)
	}
	if cfg.Analysis.IQRMultiplier != 1.5 {
		t.Errorf("expected default multiplier 1.5, got %g", cfg.Analysis.IQRMultiplier)
	}
	if cfg.Analysis.MinSamples != 4 {
		t.Errorf("expected default min samples 4, got %d", cfg.Analysis.MinSamples)
	}
	if cfg.Journal.CSVPath == "" || cfg.Database.SQLitePath == "" {
		t.Error("expected default storage paths")
	}
	if cfg.Backtest.BuyThreshold != -3.0 || cfg.Backtest.SellThreshold != 3.0 {
		t.Errorf("expected default thresholds -3/+3, got %g/%g",
			cfg.Backtest.BuyThreshold, cfg.Backtest.SellThreshold)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
telegram:
  bot_token: file-token
  chat_id: "12345"
analysis:
  lookback_days: 180
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOOKBACK_DAYS", "90")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("env should override file, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "12345" {
		t.Errorf("file value should survive, got %q", cfg.Telegram.ChatID)
	}
	if cfg.Analysis.LookbackDays != 90 {
		t.Errorf("env should override file lookback, got %d", cfg.Analysis.LookbackDays)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		cfg.Telegram.BotToken = "token"
		cfg.Telegram.ChatID = "chat"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg := valid()
	cfg.Telegram.BotToken = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing bot token")
	}

	cfg = valid()
	cfg.Analysis.MinSamples = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero min samples")
	}

	cfg = valid()
	cfg.Backtest.BuyThreshold = 5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted backtest thresholds")
	}
}
