package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"KimchiGold/internal/analysis"
	"KimchiGold/internal/backtest"
	"KimchiGold/internal/collector"
	"KimchiGold/internal/config"
	"KimchiGold/internal/journal"
	"KimchiGold/internal/notifier"
	"KimchiGold/internal/recorder"
	"KimchiGold/internal/scheduler"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[ERROR] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[ERROR] invalid config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := collector.NewNaverFetcher(cfg.Proxy)
	if cfg.Source.DomesticGoldURL != "" {
		fetcher.DomesticURL = cfg.Source.DomesticGoldURL
	}
	if cfg.Source.InternationalGoldURL != "" {
		fetcher.InternationalURL = cfg.Source.InternationalGoldURL
	}
	if cfg.Source.ExchangeRateURL != "" {
		fetcher.ExchangeURL = cfg.Source.ExchangeRateURL
	}
	col := collector.NewCollector(fetcher)
	jnl := journal.New(cfg.Journal.CSVPath)

	det := analysis.Detector{
		LookbackDays: cfg.Analysis.LookbackDays,
		Multiplier:   cfg.Analysis.IQRMultiplier,
		MinSamples:   cfg.Analysis.MinSamples,
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sq, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] sqlite recorder unavailable, falling back to noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sq
			defer sq.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, col, jnl, det, tn, rec)
	sched.ChartMonths = cfg.Chart.Months
	sched.ChartOutput = cfg.Chart.OutputPath
	params := backtest.DefaultParams()
	if cfg.Backtest.InitialInvestment > 0 {
		params.InitialInvestment = cfg.Backtest.InitialInvestment
	}
	params.BuyThreshold = cfg.Backtest.BuyThreshold
	params.SellThreshold = cfg.Backtest.SellThreshold
	sched.BacktestParams = params

	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron, cfg.Schedule.MonthlyCron); err != nil {
		log.Fatalf("[ERROR] register tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] kimchi gold bot is running")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[INFO] shutting down")
}
