package configs

import (
	"errors"

	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	Broker struct {
		BaseURL         string `mapstructure:"base_url"`
		SyncIntervalSec int    `mapstructure:"sync_interval_sec"`
	} `mapstructure:"broker"`
	Reminders struct {
		PollIntervalSec int `mapstructure:"poll_interval_sec"`
	} `mapstructure:"reminders"`
	Push struct {
		VAPIDPublicKey  string `mapstructure:"vapid_public_key"`
		VAPIDPrivateKey string `mapstructure:"vapid_private_key"`
		Subscriber      string `mapstructure:"subscriber"`
	} `mapstructure:"push"`
	Telegram struct {
		BotToken string `mapstructure:"bot_token"`
		ChatID   int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("http.addr", ":4000")
	viper.SetDefault("broker.base_url", "https://invest-public-api.tinkoff.ru/rest")
	viper.SetDefault("broker.sync_interval_sec", 300)
	viper.SetDefault("reminders.poll_interval_sec", 60)

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
