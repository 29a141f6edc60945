package redis

import (
	"fmt"
	"strings"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	EnableTLS bool
}

type RedisClusterConfig struct {
	Hosts     []string
	Password  string
	EnableTLS bool
}

type Config struct {
	UseCluster bool
	Single     RedisConfig
	Cluster    RedisClusterConfig
}

func LoadConfig(cfg *CfgRedis) Config {
	hosts := make([]string, 0)
	for _, node := range strings.Split(cfg.RedisClusterNode, ";") {
		if node = strings.TrimSpace(node); node != "" {
			hosts = append(hosts, node)
		}
	}

	return Config{
		UseCluster: cfg.UseCluster,
		Single: RedisConfig{
			Addr:      fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			EnableTLS: cfg.EnableTLS,
		},
		Cluster: RedisClusterConfig{
			Hosts:     hosts,
			Password:  cfg.RedisClusterPassword,
			EnableTLS: cfg.EnableTLS,
		},
	}
}
