// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server configuration
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendBeatParty"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// DeviceID keys the persisted profile.
	DeviceID string `env:"DEVICE_ID" envDefault:"local-device"`

	// ProfileStore is "redis" or "memory".
	ProfileStore string `env:"PROFILE_STORE" envDefault:"redis"`

	// Redis configuration
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Game configuration
	TuningPath         string `env:"TUNING_PATH" envDefault:"config/engagement.yaml"`
	DefaultBPM         int    `env:"DEFAULT_BPM" envDefault:"100"`
	RefreshPollSeconds int    `env:"REFRESH_POLL_SECONDS" envDefault:"60"`

	// Reward gate configuration
	AdPollIntervalMs   int `env:"AD_POLL_INTERVAL_MS" envDefault:"5000"`
	AdPollMaxRetries   int `env:"AD_POLL_MAX_RETRIES" envDefault:"12"`
	AdQueueTimeoutMs   int `env:"AD_QUEUE_TIMEOUT_MS" envDefault:"60000"`
	RewardReadyDelayMs int `env:"REWARD_READY_DELAY_MS" envDefault:"2000"`

	// Telemetry configuration
	OtelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}

const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// RefreshInterval is how often the scheduler asks the engine to catch up engagement.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshPollSeconds) * time.Second
}

func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}

func (c *Config) AdPollInterval() time.Duration {
	return time.Duration(c.AdPollIntervalMs) * time.Millisecond
}

func (c *Config) AdQueueTimeout() time.Duration {
	return time.Duration(c.AdQueueTimeoutMs) * time.Millisecond
}

func (c *Config) RewardReadyDelay() time.Duration {
	return time.Duration(c.RewardReadyDelayMs) * time.Millisecond
}
