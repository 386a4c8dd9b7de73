// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package boost

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// SimulatedGate is a local reward gate: a unit loads for a fixed delay,
// always grants when presented and then starts loading the next one.
type SimulatedGate struct {
	clock clockwork.Clock
	delay time.Duration

	mu      sync.Mutex
	readyAt time.Time
}

func NewSimulatedGate(clock clockwork.Clock, delay time.Duration) *SimulatedGate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SimulatedGate{
		clock:   clock,
		delay:   delay,
		readyAt: clock.Now().Add(delay),
	}
}

func (g *SimulatedGate) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.clock.Now().Before(g.readyAt)
}

func (g *SimulatedGate) Present(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if now.Before(g.readyAt) {
		return false, ErrRewardUnavailable
	}
	g.readyAt = now.Add(g.delay)
	logrus.Debug("simulated reward granted")
	return true, nil
}
