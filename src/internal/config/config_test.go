package config

import (
	"testing"

	"tour-service/src/internal/model"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/log"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyPolicies(t *testing.T) {
	v := viper.New()
	v.Set("notification.policy.payment-approved", "required")
	v.Set("notification.policy.order-canceled", "best-effort")

	policies := NotifyPolicies(v)

	assert.Len(t, policies, 2)
	assert.Equal(t, usecase.NotifyRequired, policies[model.NotifyPaymentApproved])
	assert.Equal(t, usecase.NotifyBestEffort, policies[model.NotifyOrderCanceled])
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, 10.0, v.GetFloat64("payment.tax"))
	assert.Equal(t, 5<<20, v.GetInt("payment.proof_max_bytes"))
	assert.Equal(t, "email-notification", v.GetString("notification.topic"))
	assert.Equal(t, "minio", v.GetString("storage.driver"))
}

func TestNewUploaderDrivers(t *testing.T) {
	v := viper.New()
	v.Set("storage.driver", "ftp")
	_, err := NewUploader(v)
	assert.ErrorContains(t, err, `unknown storage driver "ftp"`)

	v.Set("storage.driver", "cloudinary")
	_, err = NewUploader(v)
	assert.Error(t, err)

	v.Set("storage.driver", "minio")
	v.Set("storage.minio.endpoint", "localhost:9000")
	v.Set("storage.minio.bucket", "proofs")
	uploader, err := NewUploader(v)
	require.NoError(t, err)
	assert.NotNil(t, uploader)
}

func TestLoadRedisConfig(t *testing.T) {
	v := viper.New()
	v.Set("redis.host", "cache.internal")
	v.Set("redis.port", "6380")
	v.Set("redis.cluster.node", "a:7000; b:7001;")

	cfg := LoadRedisConfig(v)

	assert.False(t, cfg.UseCluster)
	assert.Equal(t, "cache.internal:6380", cfg.Single.Addr)
	assert.Equal(t, []string{"a:7000", "b:7001"}, cfg.Cluster.Hosts)
}

func TestDisabledBackendsReturnNil(t *testing.T) {
	v := viper.New()
	v.Set("redis.enabled", false)
	v.Set("kafka.producer.enabled", false)

	assert.Nil(t, NewRedis(v, log.NewNop()))
	assert.Nil(t, NewKafkaProducer(v, log.NewNop()))
}
