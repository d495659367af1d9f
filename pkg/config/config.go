package config

import (
	"fmt"
	"hotelbook/pkg/logger"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	HealthPort string

	LockTimeout    time.Duration
	MaxConnections int
	MaxLineBytes   int

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	SeedData bool

	KafkaEnabled  bool
	KafkaTopic    string
	KafkaDLQTopic string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:       getEnvStr(EnvPort, DefaultPort),
		HealthPort: os.Getenv(EnvHealthPort),

		LockTimeout:    getEnvDuration(EnvLockTimeout, DefaultLockTimeout),
		MaxConnections: getEnvNum(EnvMaxConnections, DefaultMaxConnections),
		MaxLineBytes:   getEnvNum(EnvMaxLineBytes, DefaultMaxLineBytes),

		RateLimitEnabled:  getEnvBool(EnvRateLimitEnabled, DefaultRateLimitEnabled),
		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SeedData: getEnvBool(EnvSeedData, DefaultSeedData),

		KafkaEnabled:  getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaTopic:    getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),
		KafkaDLQTopic: getEnvStr(EnvKafkaDLQ, DefaultKafkaDLQ),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}
	if _, set := os.LookupEnv(EnvHealthPort); !set {
		cfg.HealthPort = DefaultHealthPort
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if !validPort(cfg.Port) {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.HealthPort != "" {
		if !validPort(cfg.HealthPort) {
			errors = append(errors, fmt.Sprintf("HealthPort must be between 1 and 65535, got: %s", cfg.HealthPort))
		} else if cfg.HealthPort == cfg.Port {
			errors = append(errors, fmt.Sprintf("HealthPort must differ from Port, both are: %s", cfg.Port))
		}
	}

	if cfg.LockTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("LockTimeout must be positive, got: %s", cfg.LockTimeout))
	}
	if cfg.MaxConnections <= 0 {
		errors = append(errors, fmt.Sprintf("MaxConnections must be positive, got: %d", cfg.MaxConnections))
	}
	if cfg.MaxLineBytes < 64 {
		errors = append(errors, fmt.Sprintf("MaxLineBytes must be at least 64, got: %d", cfg.MaxLineBytes))
	}

	if cfg.RateLimitEnabled {
		if cfg.RateLimitRequests <= 0 {
			errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
		}
		if cfg.RateLimitWindow <= 0 {
			errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
		}
	}

	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.RequestTimeout < cfg.LockTimeout {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be at least LockTimeout (%s), got: %s", cfg.LockTimeout, cfg.RequestTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		errors = append(errors, "KafkaTopic cannot be empty when Kafka is enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"health_port", cfg.HealthPort,
		"lock_timeout", cfg.LockTimeout,
		"max_connections", cfg.MaxConnections,
		"max_line_bytes", cfg.MaxLineBytes,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"request_timeout", cfg.RequestTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"seed_data", cfg.SeedData,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_topic", cfg.KafkaTopic,
	)
}

func validPort(p string) bool {
	port, err := strconv.Atoi(p)
	return err == nil && port >= 1 && port <= 65535
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
