package config

import (
	"tour-service/src/pkg/kafka"
	"tour-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaConfig(viper *viper.Viper) kafka.Cfg {
	return kafka.Cfg{
		Brokers:   viper.GetString("kafka.brokers"),
		Username:  viper.GetString("kafka.username"),
		Password:  viper.GetString("kafka.password"),
		ClientID:  viper.GetString("kafka.client_id"),
		EnableTLS: viper.GetBool("kafka.tls"),
	}
}

// NewKafkaProducer returns nil when the producer is disabled; notifications
// then fail, which rolls back writes whose notify policy is required.
func NewKafkaProducer(config *viper.Viper, log log.Log) kafka.Producer {
	if !config.GetBool("kafka.producer.enabled") {
		log.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil
	}
	kafkaProducer, err := kafka.NewProducer(NewKafkaConfig(config), log)
	if err != nil {
		panic(err)
	}

	return kafkaProducer
}
