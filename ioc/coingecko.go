package ioc

import (
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/KNICEX/price-alert/internal/service/quotes/coingecko"
)

func InitCoinGeckoQuotes() *coingecko.Service {
	type Config struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("quotes.coingecko", &cfg); err != nil {
		panic(err)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}

	cli := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	return coingecko.NewService(cli, cfg.BaseURL)
}
