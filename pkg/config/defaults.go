package config

import "time"

const (
	DefaultPort       = "8080"
	DefaultHealthPort = "8081"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"

	DefaultLockTimeout    = 1000 * time.Millisecond
	DefaultMaxConnections = 8
	DefaultMaxLineBytes   = 64 * 1024 // 64KB

	DefaultRateLimitEnabled  = false
	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedData     = true
	DefaultKafkaEnabled = false
	DefaultKafkaTopic   = "hotel.bookings"
	DefaultKafkaDLQ     = "hotel.bookings.dlq"
)
