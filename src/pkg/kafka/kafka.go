package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"tour-service/src/pkg/log"

	"github.com/IBM/sarama"
)

// Producer publishes a keyed message and only returns once the broker acked it.
type Producer interface {
	Publish(topic, key string, value []byte) error
	Close() error
}

type Cfg struct {
	Brokers   string
	Username  string
	Password  string
	ClientID  string
	EnableTLS bool
}

func (c Cfg) BrokerList() []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// SaramaConfig builds a sync-producer configuration: every publish waits for
// all in-sync replicas so a nil error means the message is durable.
func (c Cfg) SaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = c.ClientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 500 * time.Millisecond
	cfg.Producer.Idempotent = false
	cfg.Net.DialTimeout = 5 * time.Second
	cfg.Net.WriteTimeout = 5 * time.Second

	if c.Username != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = c.Username
		cfg.Net.SASL.Password = c.Password
	}
	if c.EnableTLS {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return cfg
}

type syncProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(cfg Cfg, logger log.Log) (Producer, error) {
	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	p, err := sarama.NewSyncProducer(brokers, cfg.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return WrapSyncProducer(p, logger), nil
}

// WrapSyncProducer adapts an existing sarama producer (a mock in tests).
func WrapSyncProducer(p sarama.SyncProducer, logger log.Log) Producer {
	return &syncProducer{producer: p, log: logger}
}

func (p *syncProducer) Publish(topic, key string, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	p.log.Info("kafka", "message delivered", topic, fmt.Sprintf("partition=%d offset=%d key=%s", partition, offset, key))
	return nil
}

func (p *syncProducer) Close() error {
	return p.producer.Close()
}
