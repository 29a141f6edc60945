package config

import (
	"context"
	"time"

	"tour-service/src/pkg/log"
	redisModule "tour-service/src/pkg/redis"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func LoadRedisConfig(viper *viper.Viper) redisModule.Config {
	return redisModule.LoadConfig(&redisModule.CfgRedis{
		UseCluster:           viper.GetBool("redis.use_cluster"),
		EnableTLS:            viper.GetBool("redis.tls"),
		RedisHost:            viper.GetString("redis.host"),
		RedisPort:            viper.GetString("redis.port"),
		RedisPassword:        viper.GetString("redis.password"),
		RedisDB:              viper.GetInt("redis.db"),
		RedisClusterNode:     viper.GetString("redis.cluster.node"),
		RedisClusterPassword: viper.GetString("redis.cluster.password"),
	})
}

// NewRedis returns nil when redis is disabled or unreachable; ratings are
// then served from the database only.
func NewRedis(viper *viper.Viper, log log.Log) redis.UniversalClient {
	if !viper.GetBool("redis.enabled") {
		log.Info("redis-config", "Redis is disabled in configuration", "redis", "")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redisModule.NewClient(ctx, LoadRedisConfig(viper))
	if err != nil {
		log.Warn("redis-config", err.Error(), "redis", "")
		return nil
	}
	return client
}
