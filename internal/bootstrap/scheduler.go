// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/game"
)

// InitRefreshScheduler starts a job that catches up engagement every interval,
// beginning immediately. Overlapping runs are skipped.
func InitRefreshScheduler(engine *game.Engine, interval time.Duration, clock clockwork.Clock) (gocron.Scheduler, error) {
	opts := []gocron.SchedulerOption{}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}

	sched, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			result, err := engine.RefreshEngagement(context.Background())
			if err != nil {
				logrus.Errorf("[Scheduler] engagement refresh failed: %v", err)
				return
			}
			if result.Intervals > 0 {
				logrus.Debugf("[Scheduler] simulated %d engagement intervals, %d milestones",
					result.Intervals, len(result.Milestones))
			}
		}),
		gocron.WithName("engagement-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule engagement refresh: %w", err)
	}

	sched.Start()
	logrus.Infof("scheduled engagement refresh every %s", interval)
	return sched, nil
}
