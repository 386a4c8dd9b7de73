// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package boost

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Booster performs the governed boost once a reward has been granted.
type Booster interface {
	CheckBoost(id string) error
	BoostChallenge(ctx context.Context, id string) error
}

// RewardGate abstracts the rewarded ad unit.
type RewardGate interface {
	Ready() bool
	// Present shows the reward unit and reports whether the reward was earned.
	Present(ctx context.Context) (bool, error)
}

// ReadyNotifier is implemented by gates that signal readiness instead of being polled.
type ReadyNotifier interface {
	ReadyC() <-chan struct{}
}

// FlowConfig bounds how long a boost waits for the reward gate.
type FlowConfig struct {
	PollInterval time.Duration
	MaxPolls     uint64
	QueueTimeout time.Duration
}

func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		PollInterval: 5 * time.Second,
		MaxPolls:     12,
		QueueTimeout: 60 * time.Second,
	}
}

// Flow gates boosts behind a granted reward.
type Flow struct {
	booster Booster
	gate    RewardGate
	cfg     FlowConfig
	clock   clockwork.Clock

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]time.Time
}

func NewFlow(booster Booster, gate RewardGate, cfg FlowConfig, clock clockwork.Clock) *Flow {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		booster: booster,
		gate:    gate,
		cfg:     cfg,
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
		pending: map[string]time.Time{},
	}
}

// Request runs the whole boost flow for challenge id and reports whether the boost landed.
// Every failure comes back as false with a reason; nothing is applied on failure.
func (f *Flow) Request(ctx context.Context, id string) (bool, error) {
	if err := f.booster.CheckBoost(id); err != nil {
		return false, err
	}

	if err := f.awaitReady(ctx); err != nil {
		return false, fmt.Errorf("%w: %v", ErrRewardUnavailable, err)
	}

	granted, err := f.gate.Present(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRewardUnavailable, err)
	}
	if !granted {
		return false, ErrRewardNotGranted
	}

	if err := f.booster.BoostChallenge(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Queue starts a background boost for id that gives up after QueueTimeout.
// Governor rejections are returned immediately.
func (f *Flow) Queue(id string) error {
	if err := f.booster.CheckBoost(id); err != nil {
		return err
	}

	f.mu.Lock()
	if _, ok := f.pending[id]; ok {
		f.mu.Unlock()
		return ErrAlreadyPending
	}
	f.pending[id] = f.clock.Now()
	f.mu.Unlock()

	ctx, cancel := context.WithCancel(f.ctx)
	timer := f.clock.AfterFunc(f.cfg.QueueTimeout, cancel)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer cancel()
		defer timer.Stop()
		defer f.done(id)

		ok, err := f.Request(ctx, id)
		if err != nil {
			logrus.Warnf("queued boost for challenge %s failed: %v", id, err)
			return
		}
		if ok {
			logrus.Infof("queued boost for challenge %s applied", id)
		}
	}()
	return nil
}

// Pending returns the ids of queued boosts still waiting, sorted.
func (f *Flow) Pending() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close cancels queued boosts and waits for them to exit.
func (f *Flow) Close() {
	f.cancel()
	f.wg.Wait()
}

func (f *Flow) done(id string) {
	f.mu.Lock()
	delete(f.pending, id)
	f.mu.Unlock()
}

func (f *Flow) awaitReady(ctx context.Context) error {
	if f.gate.Ready() {
		return nil
	}

	if notifier, ok := f.gate.(ReadyNotifier); ok {
		timeout := f.clock.NewTimer(f.cfg.PollInterval * time.Duration(f.cfg.MaxPolls))
		defer timeout.Stop()

		select {
		case <-notifier.ReadyC():
			return nil
		case <-timeout.Chan():
			return errors.New("timed out waiting for reward")
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.cfg.PollInterval), f.cfg.MaxPolls),
		ctx,
	)
	return backoff.RetryNotifyWithTimer(
		func() error {
			if !f.gate.Ready() {
				return errors.New("reward not ready")
			}
			return nil
		},
		b,
		nil,
		&clockTimer{clock: f.clock},
	)
}

// clockTimer drives backoff from a clockwork clock.
type clockTimer struct {
	clock clockwork.Clock
	timer clockwork.Timer
}

func (t *clockTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = t.clock.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *clockTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *clockTimer) C() <-chan time.Time {
	return t.timer.Chan()
}
