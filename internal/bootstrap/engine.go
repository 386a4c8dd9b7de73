// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/engagement"
	"github.com/AccelByte/extend-beat-party/pkg/game"
	"github.com/AccelByte/extend-beat-party/pkg/notify"
	"github.com/AccelByte/extend-beat-party/pkg/state"
)

// EngineConfig is the subset of the application config the engine needs.
type EngineConfig struct {
	TuningPath string
	DeviceID   string
	DefaultBPM int
}

// InitEngine loads the engagement tuning, builds the game engine around store
// and restores the device profile.
func InitEngine(
	ctx context.Context,
	cfg EngineConfig,
	store state.Store,
	clock clockwork.Clock,
) (*game.Engine, *notify.Dispatcher, error) {
	tuning, err := engagement.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load engagement tuning from %s: %w", cfg.TuningPath, err)
	}
	logrus.Infof("loaded engagement tuning from %s (interval %s)", cfg.TuningPath, tuning.Interval)

	dispatcher := notify.NewDispatcher(notify.LogNotifier{})

	engine := game.NewEngine(game.Options{
		Repository: catalog.NewRepository(catalog.DefaultMaxRetained),
		Simulator:  engagement.NewSimulator(tuning),
		Governor:   boost.NewGovernor(),
		Store:      store,
		DeviceID:   cfg.DeviceID,
		Dispatcher: dispatcher,
		Cue:        game.LogCuePlayer{},
		Clock:      clock,
		BPM:        cfg.DefaultBPM,
	})

	if err := engine.Restore(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to restore profile for device %s: %w", cfg.DeviceID, err)
	}

	logrus.Infof("initialized game engine for device %s", cfg.DeviceID)
	return engine, dispatcher, nil
}
