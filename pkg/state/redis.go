// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default TTL for a device profile in Redis (90 days)
	DefaultTTL = 90 * 24 * time.Hour
	// KeyPrefix is the prefix for all profile keys
	KeyPrefix = "beat_party:profile:"
)

// RedisStore implements Store using Redis.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

type RedisStoreConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// NewRedisStore creates a new Redis-backed profile store.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = KeyPrefix
	}
	return &RedisStore{client: client, cfg: cfg}
}

// makeKey creates a Redis key for a device
func (r *RedisStore) makeKey(deviceID string) string {
	return fmt.Sprintf("%s%s", r.cfg.KeyPrefix, deviceID)
}

// GetProfile retrieves the profile of a device, or a fresh one if none was saved
func (r *RedisStore) GetProfile(ctx context.Context, deviceID string) (*Profile, error) {
	key := r.makeKey(deviceID)

	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Infof("no existing profile for device %s, returning new profile", deviceID)
		return NewProfile(), nil
	}
	if err != nil {
		logrus.Errorf("failed to get profile for device %s: %v", deviceID, err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		logrus.Errorf("failed to unmarshal profile for device %s: %v", deviceID, err)
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.normalize()

	logrus.Debugf("retrieved profile for device %s", deviceID)
	return &profile, nil
}

// UpdateProfile writes the profile of a device and refreshes its TTL
func (r *RedisStore) UpdateProfile(ctx context.Context, deviceID string, profile *Profile) error {
	key := r.makeKey(deviceID)

	data, err := json.Marshal(profile)
	if err != nil {
		logrus.Errorf("failed to marshal profile for device %s: %v", deviceID, err)
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set profile for device %s: %v", deviceID, err)
		return fmt.Errorf("failed to set profile: %w", err)
	}

	logrus.Debugf("updated profile for device %s with TTL %v", deviceID, r.cfg.TTL)
	return nil
}

// DeleteProfile deletes the profile of a device
func (r *RedisStore) DeleteProfile(ctx context.Context, deviceID string) error {
	key := r.makeKey(deviceID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logrus.Errorf("failed to delete profile for device %s: %v", deviceID, err)
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logrus.Infof("deleted profile for device %s", deviceID)
	return nil
}
