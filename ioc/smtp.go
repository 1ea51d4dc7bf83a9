package ioc

import (
	"github.com/spf13/viper"

	"github.com/KNICEX/price-alert/internal/service/notification/smtp"
)

func InitSMTP() *smtp.Service {
	var cfg smtp.Config
	if err := viper.UnmarshalKey("mail.smtp", &cfg); err != nil {
		panic(err)
	}
	if cfg.Host == "" || cfg.From == "" {
		panic("mail relay host and from address must be configured")
	}
	return smtp.NewService(cfg)
}
