// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/beat"
	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/game"
)

// InitBeatDriver attaches a beat driver to the engine's playback changes.
func InitBeatDriver(engine *game.Engine, clock clockwork.Clock) *beat.Driver {
	driver := beat.NewDriver(engine, clock)
	engine.OnPlayback(driver.Sync)
	driver.Sync(engine.Playback())

	logrus.Infof("initialized beat driver")
	return driver
}

// InitBoostFlow gates engine boosts behind gate.
func InitBoostFlow(engine *game.Engine, gate boost.RewardGate, cfg boost.FlowConfig, clock clockwork.Clock) *boost.Flow {
	flow := boost.NewFlow(engine, gate, cfg, clock)

	logrus.Infof("initialized boost flow (poll every %s, %d polls, queue timeout %s)",
		cfg.PollInterval, cfg.MaxPolls, cfg.QueueTimeout)
	return flow
}
