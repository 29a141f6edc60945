package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./"
	}
	v.AddConfigPath(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "TOUR_SERVICE")
	v.SetDefault("web.port", 8080)
	v.SetDefault("log.level", "DEBUG")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.pool.max_open", 20)
	v.SetDefault("database.pool.max_idle", 5)
	v.SetDefault("database.pool.max_lifetime", "30m")
	v.SetDefault("database.migrate", false)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("cache.rating_ttl", "24h")
	v.SetDefault("kafka.producer.enabled", true)
	v.SetDefault("kafka.client_id", "tour-service")
	v.SetDefault("notification.topic", "email-notification")
	v.SetDefault("payment.tax", 10)
	v.SetDefault("payment.proof_max_bytes", 5<<20)
	v.SetDefault("storage.driver", "minio")
}
