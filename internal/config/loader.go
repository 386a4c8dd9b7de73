// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d (must be 1-65535)", c.HTTPPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.HTTPPort == c.MetricsPort {
		return fmt.Errorf("HTTP_PORT and METRICS_PORT must differ (both %d)", c.HTTPPort)
	}

	if c.DeviceID == "" {
		return fmt.Errorf("DEVICE_ID is required")
	}

	if c.ProfileStore != StoreRedis && c.ProfileStore != StoreMemory {
		return fmt.Errorf("invalid PROFILE_STORE: %q (must be %s or %s)", c.ProfileStore, StoreRedis, StoreMemory)
	}

	if c.DefaultBPM <= 0 {
		return fmt.Errorf("invalid DEFAULT_BPM: %d (must be positive)", c.DefaultBPM)
	}

	if c.RefreshPollSeconds <= 0 {
		return fmt.Errorf("invalid REFRESH_POLL_SECONDS: %d (must be positive)", c.RefreshPollSeconds)
	}

	if c.AdPollIntervalMs <= 0 || c.AdPollMaxRetries < 0 || c.AdQueueTimeoutMs <= 0 {
		return fmt.Errorf("invalid reward polling settings: interval=%dms retries=%d timeout=%dms",
			c.AdPollIntervalMs, c.AdPollMaxRetries, c.AdQueueTimeoutMs)
	}

	if c.RewardReadyDelayMs < 0 {
		return fmt.Errorf("invalid REWARD_READY_DELAY_MS: %d (must be non-negative)", c.RewardReadyDelayMs)
	}

	if _, err := logrusLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// LogrusLevel returns the parsed LOG_LEVEL.
func (c *Config) LogrusLevel() logrus.Level {
	level, err := logrusLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func logrusLevel(s string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
