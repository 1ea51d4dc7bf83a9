package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/repo"
	"github.com/KNICEX/price-alert/internal/schedule"
	"github.com/KNICEX/price-alert/internal/service/monitor"
	"github.com/KNICEX/price-alert/internal/service/quotes"
	"github.com/KNICEX/price-alert/internal/web"
	"github.com/KNICEX/price-alert/ioc"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

type watchConfig struct {
	IntervalSeconds int      `mapstructure:"interval_seconds"`
	Assets          []string `mapstructure:"assets"`
	Currency        string   `mapstructure:"currency"`
	Source          string   `mapstructure:"source"`
	ListenAddr      string   `mapstructure:"listen_addr"`
}

type dispatchConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	MaxAttempts    int `mapstructure:"max_attempts"`
}

func main() {
	initViper()

	var cfg watchConfig
	if err := viper.UnmarshalKey("watch", &cfg); err != nil {
		panic(err)
	}
	if cfg.IntervalSeconds <= 0 {
		cfg.IntervalSeconds = 120
	}
	if len(cfg.Assets) == 0 {
		panic("no tracked assets configured")
	}
	currency, err := entity.ParseCurrency(cfg.Currency)
	if err != nil {
		panic(err)
	}

	var quoteSvc quotes.Service
	switch cfg.Source {
	case "binance":
		quoteSvc = ioc.InitBinanceQuotes()
	case "coingecko", "":
		quoteSvc = ioc.InitCoinGeckoQuotes()
	default:
		panic(fmt.Errorf("unknown quote source: %q", cfg.Source))
	}

	var dispatchCfg dispatchConfig
	if err = viper.UnmarshalKey("dispatch", &dispatchCfg); err != nil {
		panic(err)
	}
	var notifierOpts []monitor.EmailOption
	if dispatchCfg.TimeoutSeconds > 0 {
		notifierOpts = append(notifierOpts, monitor.WithDispatchTimeout(time.Duration(dispatchCfg.TimeoutSeconds)*time.Second))
	}
	if dispatchCfg.MaxAttempts > 0 {
		notifierOpts = append(notifierOpts, monitor.WithDispatchAttempts(dispatchCfg.MaxAttempts))
	}
	notifier := monitor.NewEmailNotifier(ioc.InitSMTP(), notifierOpts...)

	alertRepo := repo.NewMemoryAlertRepo()
	mon := monitor.NewAlertMonitor(quoteSvc, alertRepo, cfg.Assets, currency, monitor.WithNotifier(notifier))

	runner := schedule.NewIntervalRunner(monitor.NewCheckTask(mon), time.Duration(cfg.IntervalSeconds)*time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := web.NewAlertHandler(alertRepo, mon, quoteSvc)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: web.NewRouter(&web.Config{AlertHandler: handler}),
	}
	go func() {
		slog.Info("operator api listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("operator api stopped", "error", err)
		}
	}()

	slog.Info("starting refresh loop",
		"interval_seconds", cfg.IntervalSeconds,
		"assets", cfg.Assets,
		"currency", currency,
		"source", cfg.Source)
	if err = runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("refresh loop stopped", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("operator api shutdown failed", "error", err)
	}
}
