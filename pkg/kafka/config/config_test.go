package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, DefaultProducerCompression, cfg.ProducerCompression)
	assert.Equal(t, DefaultProducerPublishTimeout, cfg.ProducerPublishTimeout)
}

func TestLoad_BrokerList(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092")
	t.Setenv(EnvKafkaProducerRequireAcks, "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, 1, cfg.ProducerRequireAcks)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Brokers:                []string{"", "b:9092"},
		ProducerMaxAttempts:    0,
		ProducerBatchTimeout:   time.Millisecond,
		ProducerRequireAcks:    2,
		ProducerCompression:    "brotli",
		ProducerPublishTimeout: time.Second,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1. Broker 0 cannot be empty")
	assert.Contains(t, err.Error(), "ProducerMaxAttempts must be positive")
	assert.Contains(t, err.Error(), "ProducerCompression must be one of")
	assert.Contains(t, err.Error(), "ProducerRequireAcks must be -1, 0, or 1")
}
