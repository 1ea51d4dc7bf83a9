package ioc

import (
	binancecli "github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"

	"github.com/KNICEX/price-alert/internal/service/quotes/binance"
)

func InitBinanceQuotes() *binance.Service {
	type Config struct {
		ApiKey    string            `mapstructure:"api_key"`
		ApiSecret string            `mapstructure:"api_secret"`
		Symbols   map[string]string `mapstructure:"symbols"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("quotes.binance", &cfg); err != nil {
		panic(err)
	}
	if len(cfg.Symbols) == 0 {
		panic("no binance symbol mapping configured")
	}

	cli := binancecli.NewClient(cfg.ApiKey, cfg.ApiSecret)
	return binance.NewService(cli, cfg.Symbols)
}
