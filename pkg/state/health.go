// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the profile store backend is reachable
type HealthChecker struct {
	client *redis.Client
}

func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check pings Redis. A checker without a client always passes, which is the
// case when profiles are kept in memory.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h == nil || h.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.client.Ping(ctx).Err(); err != nil {
		logrus.Errorf("profile store health check failed: %v", err)
		return err
	}

	logrus.Debugf("profile store health check passed")
	return nil
}
