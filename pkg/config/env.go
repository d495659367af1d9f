package config

const (
	EnvPort       = "PORT"
	EnvHealthPort = "HEALTH_PORT"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"

	EnvLockTimeout    = "LOCK_TIMEOUT"
	EnvMaxConnections = "MAX_CONNECTIONS"
	EnvMaxLineBytes   = "MAX_LINE_BYTES"

	EnvRateLimitEnabled  = "RATE_LIMIT_ENABLED"
	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSeedData     = "SEED_DATA"
	EnvKafkaEnabled = "KAFKA_ENABLED"
	EnvKafkaTopic   = "KAFKA_BOOKING_TOPIC"
	EnvKafkaDLQ     = "KAFKA_BOOKING_DLQ_TOPIC"
)
