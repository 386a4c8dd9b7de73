// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
	"github.com/AccelByte/extend-beat-party/pkg/engagement"
	"github.com/AccelByte/extend-beat-party/pkg/notify"
	"github.com/AccelByte/extend-beat-party/pkg/state"
)

// Options wires an Engine. Nil fields get in-memory or logging defaults.
type Options struct {
	Repository *catalog.Repository
	Simulator  *engagement.Simulator
	Governor   *boost.Governor
	Store      state.Store
	DeviceID   string
	Dispatcher *notify.Dispatcher
	Cue        CuePlayer
	Rand       common.Rand
	Clock      clockwork.Clock
	BPM        int
}

// Engine is the single writer of the game. Every transition runs under one
// lock; cues, playback hooks, notifications and persistence run after it is released.
type Engine struct {
	mu sync.Mutex

	session     Session
	repo        *catalog.Repository
	draft       catalog.Draft
	eng         engagement.Clock
	lastBoostAt time.Time
	totalFire   int
	language    language.Tag
	onPlayback  func(Playback)
	version     uint64

	simulator  *engagement.Simulator
	governor   *boost.Governor
	store      state.Store
	deviceID   string
	dispatcher *notify.Dispatcher
	cue        CuePlayer
	rnd        common.Rand
	clk        clockwork.Clock

	saveMu       sync.Mutex
	savedVersion uint64
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		session:    NewSession(opts.BPM),
		repo:       opts.Repository,
		draft:      catalog.NewDraft(),
		language:   language.English,
		simulator:  opts.Simulator,
		governor:   opts.Governor,
		store:      opts.Store,
		deviceID:   opts.DeviceID,
		dispatcher: opts.Dispatcher,
		cue:        opts.Cue,
		rnd:        opts.Rand,
		clk:        opts.Clock,
	}
	if e.repo == nil {
		e.repo = catalog.NewRepository(catalog.DefaultMaxRetained)
	}
	if e.simulator == nil {
		e.simulator = engagement.NewSimulator(engagement.DefaultTuning())
	}
	if e.governor == nil {
		e.governor = boost.NewGovernor()
	}
	if e.store == nil {
		e.store = state.NewMemoryStore()
	}
	if e.dispatcher == nil {
		e.dispatcher = notify.NewDispatcher(nil)
	}
	if e.cue == nil {
		e.cue = LogCuePlayer{}
	}
	if e.rnd == nil {
		e.rnd = common.NewRand()
	}
	if e.clk == nil {
		e.clk = clockwork.NewRealClock()
	}
	return e
}

// effects collects what a transition wants done once the lock is released.
type effects struct {
	cues     []Cue
	messages []notify.Message
	persist  bool
}

// mutate runs fn under the lock, then plays cues, reports playback changes,
// dispatches notifications and persists, in that order.
func (e *Engine) mutate(ctx context.Context, fn func(fx *effects)) error {
	fx := &effects{}

	e.mu.Lock()
	epoch := e.session.Epoch
	fn(fx)
	playbackChanged := e.session.Epoch != epoch
	playback := e.session.Playback()
	hook := e.onPlayback
	var profile *state.Profile
	var version uint64
	if fx.persist {
		e.version++
		version = e.version
		profile = e.profileLocked()
	}
	e.mu.Unlock()

	for _, cue := range fx.cues {
		e.cue.PlayCue(cue)
	}
	if playbackChanged && hook != nil {
		hook(playback)
	}
	if len(fx.messages) > 0 {
		e.dispatcher.Send(context.WithoutCancel(ctx), fx.messages...)
	}
	if profile != nil {
		return e.save(ctx, version, profile)
	}
	return nil
}

// save writes profile unless a newer snapshot was already written.
func (e *Engine) save(ctx context.Context, version uint64, profile *state.Profile) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	if version <= e.savedVersion {
		return nil
	}
	if err := e.store.UpdateProfile(ctx, e.deviceID, profile); err != nil {
		logrus.Errorf("failed to persist profile for device %s: %v", e.deviceID, err)
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	e.savedVersion = version
	return nil
}

func (e *Engine) profileLocked() *state.Profile {
	challenges, owned := e.repo.Export()
	return &state.Profile{
		Challenges:       challenges,
		UserChallengeIDs: owned,
		Language:         e.language.String(),
		Engagement:       e.eng,
		LastBoostAt:      e.lastBoostAt,
		TotalFire:        e.totalFire,
	}
}

// OnPlayback registers the hook called after every playback-affecting transition.
func (e *Engine) OnPlayback(fn func(Playback)) {
	e.mu.Lock()
	e.onPlayback = fn
	e.mu.Unlock()
}

// Restore loads the persisted profile of the device. A day rollover since the
// last boost reset is applied and persisted right away.
func (e *Engine) Restore(ctx context.Context) error {
	profile, err := e.store.GetProfile(ctx, e.deviceID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	return e.mutate(ctx, func(fx *effects) {
		e.repo.Restore(profile.Challenges, profile.UserChallengeIDs)
		e.eng = profile.Engagement
		e.lastBoostAt = profile.LastBoostAt
		e.totalFire = profile.TotalFire
		e.language = notify.ResolveLanguage(profile.Language)

		if e.simulator.ResetDailyBoosts(e.repo.Challenges(), &e.eng, e.clk.Now()) {
			fx.persist = true
		}
		logrus.Infof("restored profile for device %s with %d challenges", e.deviceID, len(profile.Challenges))
	})
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	s.Level = e.session.Level.Clone()
	return s
}

// Playback returns the current playback snapshot.
func (e *Engine) Playback() Playback {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Playback()
}

// Stats is the aggregate profile view.
type Stats struct {
	TotalFire         int           `json:"totalFire"`
	TotalOwnedViews   int           `json:"totalOwnedViews"`
	ReachedTiers      []int         `json:"reachedTiers"`
	RewardTiers       []int         `json:"rewardTiers"`
	Language          string        `json:"language"`
	BoostCooldownLeft time.Duration `json:"boostCooldownLeft"`
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	views := e.repo.TotalOwnedViews()
	return Stats{
		TotalFire:         e.totalFire,
		TotalOwnedViews:   views,
		ReachedTiers:      catalog.ReachedTiers(views),
		RewardTiers:       append([]int{}, catalog.RewardTiers...),
		Language:          e.language.String(),
		BoostCooldownLeft: e.governor.Remaining(e.lastBoostAt, e.clk.Now()),
	}
}

func (e *Engine) Language() language.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.language
}

// Challenges lists the community catalog.
func (e *Engine) Challenges(order catalog.SortOrder) []*catalog.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.List(order)
}

// OwnedChallenges lists the challenges authored on this device.
func (e *Engine) OwnedChallenges() []*catalog.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.Owned()
}

// Challenge returns a copy of the stored challenge with id.
func (e *Engine) Challenge(id string) (*catalog.Challenge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.repo.Get(id)
	if c == nil {
		return nil, false
	}
	return c.Clone(), true
}

// IsOwned reports whether challenge id was authored on this device.
func (e *Engine) IsOwned(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.IsOwned(id)
}
