package beat

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/game"
)

// Target receives the beats of a loop. Every write carries the epoch the loop
// was started for and is dropped when the session has moved on.
type Target interface {
	SetBeatAt(epoch uint64, beat int) bool
	NextRoundAt(epoch uint64) bool
	CompleteGameAt(ctx context.Context, epoch uint64) (bool, error)
}

// Period returns the time between beats at bpm.
func Period(bpm int) time.Duration {
	if bpm <= 0 {
		bpm = game.DefaultBPM
	}
	return time.Minute / time.Duration(bpm)
}

// Driver runs at most one beat loop, following the playback snapshots passed to Sync.
type Driver struct {
	target Target
	clock  clockwork.Clock

	mu     sync.Mutex
	epoch  uint64
	cancel context.CancelFunc

	wg      sync.WaitGroup
	running atomic.Int32
}

func NewDriver(target Target, clock clockwork.Clock) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Driver{target: target, clock: clock}
}

// Sync starts a loop for an active playback and cancels any previous loop.
// Snapshots older than the last one seen are ignored. Sync never waits for a
// cancelled loop to exit; its pending writes are rejected by their stale epoch.
func (d *Driver) Sync(p game.Playback) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p.Epoch < d.epoch || (p.Epoch == d.epoch && d.cancel != nil) {
		return
	}
	d.epoch = p.Epoch

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if !p.Active {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	d.running.Add(1)
	go d.run(ctx, p)
}

// Running reports whether a loop goroutine is still alive.
func (d *Driver) Running() bool {
	return d.running.Load() > 0
}

// Close cancels the current loop and waits for every loop to exit.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Driver) run(ctx context.Context, p game.Playback) {
	defer func() {
		d.running.Add(-1)
		d.wg.Done()
	}()

	ticker := d.clock.NewTicker(Period(p.BPM))
	defer ticker.Stop()

	if !d.target.SetBeatAt(p.Epoch, 0) {
		return
	}

	for count := 1; ; count++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}

		if count >= game.BeatsPerRound {
			d.finishRound(p)
			return
		}
		if !d.target.SetBeatAt(p.Epoch, count) {
			return
		}
	}
}

func (d *Driver) finishRound(p game.Playback) {
	if p.Round < p.Rounds {
		d.target.NextRoundAt(p.Epoch)
		return
	}

	if _, err := d.target.CompleteGameAt(context.Background(), p.Epoch); err != nil {
		logrus.Errorf("failed to complete game: %v", err)
	}
}
