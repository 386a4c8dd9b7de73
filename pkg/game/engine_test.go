// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"

	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common/mock"
	"github.com/AccelByte/extend-beat-party/pkg/notify"
	notifymock "github.com/AccelByte/extend-beat-party/pkg/notify/mock"
	"github.com/AccelByte/extend-beat-party/pkg/state"
)

const testDevice = "device-1"

type recordingCues struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *recordingCues) PlayCue(cue Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
}

func (r *recordingCues) last() Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.cues) == 0 {
		return ""
	}
	return r.cues[len(r.cues)-1]
}

type failingStore struct {
	state.MemoryStore
}

func (f *failingStore) UpdateProfile(ctx context.Context, deviceID string, profile *state.Profile) error {
	return errors.New("disk full")
}

type testEngine struct {
	*Engine
	clock    *clockwork.FakeClock
	store    *state.MemoryStore
	cues     *recordingCues
	notifier *notifymock.Notifier
	dispatch *notify.Dispatcher
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	store := state.NewMemoryStore()
	cues := &recordingCues{}
	notifier := &notifymock.Notifier{}
	dispatch := notify.NewDispatcher(notifier)

	e := NewEngine(Options{
		Store:      store,
		DeviceID:   testDevice,
		Dispatcher: dispatch,
		Cue:        cues,
		Rand:       &mock.Rand{Max: true},
		Clock:      clock,
	})
	return &testEngine{Engine: e, clock: clock, store: store, cues: cues, notifier: notifier, dispatch: dispatch}
}

func (te *testEngine) saveChallenge(t *testing.T) *catalog.Challenge {
	t.Helper()
	_ = te.AddDraftImage("a.png")
	c, err := te.SaveChallenge(context.Background())
	if err != nil {
		t.Fatalf("SaveChallenge() error = %v", err)
	}
	return c
}

func (te *testEngine) storedProfile(t *testing.T) *state.Profile {
	t.Helper()
	p, err := te.store.GetProfile(context.Background(), testDevice)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	return p
}

func TestCompleteGameCreditsCommunityChallenge(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	c := te.saveChallenge(t)

	if err := te.LoadChallenge(c.ID); err != nil {
		t.Fatalf("LoadChallenge() error = %v", err)
	}
	te.StartRound()

	done, err := te.CompleteGame(ctx)
	if !done || err != nil {
		t.Fatalf("CompleteGame() = %v, %v", done, err)
	}
	if again, _ := te.CompleteGame(ctx); again {
		t.Error("CompleteGame() twice should credit once")
	}

	stored, _ := te.Challenge(c.ID)
	if stored.PlaysCount != 1 {
		t.Errorf("PlaysCount = %d, expected 1", stored.PlaysCount)
	}
	if s := te.Session(); s.State != StateResult || s.Fire != CompletionReward {
		t.Errorf("session = %+v", s)
	}
	if te.Stats().TotalFire != CompletionReward {
		t.Errorf("TotalFire = %d, expected %d", te.Stats().TotalFire, CompletionReward)
	}
	if te.cues.last() != CueComplete {
		t.Errorf("last cue = %s, expected %s", te.cues.last(), CueComplete)
	}

	profile := te.storedProfile(t)
	if profile.TotalFire != CompletionReward || profile.Challenges[0].PlaysCount != 1 {
		t.Errorf("persisted fire %d plays %d", profile.TotalFire, profile.Challenges[0].PlaysCount)
	}
}

func TestCompleteFeaturedLevel(t *testing.T) {
	te := newTestEngine(t)
	c := te.saveChallenge(t)

	if err := te.LoadFeatured("bird"); err != nil {
		t.Fatalf("LoadFeatured() error = %v", err)
	}
	te.StartRound()
	if done, _ := te.CompleteGame(context.Background()); !done {
		t.Fatal("CompleteGame() rejected")
	}

	stored, _ := te.Challenge(c.ID)
	if stored.PlaysCount != 0 {
		t.Error("featured completion should not credit a community challenge")
	}
	if err := te.LoadFeatured("missing"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadFeatured(missing) error = %v", err)
	}
	if err := te.LoadChallenge("missing"); !errors.Is(err, ErrChallengeNotFound) {
		t.Errorf("LoadChallenge(missing) error = %v", err)
	}
}

func TestReplayAfterResult(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	te.LoadLevel(Featured(catalog.Level{ID: "one", Name: "One", Rounds: 1, Images: []string{"a.png"}}))

	play := func() {
		t.Helper()
		te.EndRoundIntro()
		if done, err := te.CompleteGameAt(ctx, te.Playback().Epoch); !done || err != nil {
			t.Fatalf("CompleteGameAt() = %v, %v", done, err)
		}
		if te.Session().State != StateResult {
			t.Fatalf("state = %s, expected RESULT", te.Session().State)
		}
	}

	if !te.StartRound() {
		t.Fatal("StartRound() rejected")
	}
	play()

	if te.StartRound() {
		t.Fatal("StartRound() from RESULT should be rejected")
	}
	if !te.Continue() {
		t.Fatal("Continue() from RESULT rejected")
	}
	play()

	if fire := te.Session().Fire; fire != 2*CompletionReward {
		t.Errorf("fire = %d, expected %d", fire, 2*CompletionReward)
	}
}

func TestEpochGuardedWrites(t *testing.T) {
	te := newTestEngine(t)
	_ = te.LoadFeatured("bird")
	te.StartRound()

	introEpoch := te.Playback().Epoch
	if te.SetBeatAt(introEpoch, 0) {
		t.Error("beat landed during the intro")
	}

	te.EndRoundIntro()
	epoch := te.Playback().Epoch
	if !te.SetBeatAt(epoch, 0) || te.Session().Beat != 0 {
		t.Fatalf("SetBeatAt() rejected, beat %d", te.Session().Beat)
	}
	if te.cues.last() != CueBeat {
		t.Errorf("last cue = %s, expected %s", te.cues.last(), CueBeat)
	}

	te.StopGame()
	if te.SetBeatAt(epoch, 1) {
		t.Error("beat landed after stop")
	}
	if te.NextRoundAt(epoch) {
		t.Error("round advanced after stop")
	}
	if done, _ := te.CompleteGameAt(context.Background(), epoch); done {
		t.Error("game completed after stop")
	}
	if s := te.Session(); s.Beat != NotStarted || s.Round != 1 {
		t.Errorf("session changed after stop: %+v", s)
	}
}

func TestNextRoundAtEntersIntro(t *testing.T) {
	te := newTestEngine(t)
	_ = te.LoadFeatured("bird")
	te.StartRound()
	te.EndRoundIntro()

	epoch := te.Playback().Epoch
	if !te.NextRoundAt(epoch) {
		t.Fatal("NextRoundAt() rejected")
	}
	s := te.Session()
	if s.Round != 2 || !s.IsRoundIntro || s.Beat != NotStarted {
		t.Errorf("session = %+v", s)
	}
	if te.cues.last() != CueRoundIntro {
		t.Errorf("last cue = %s", te.cues.last())
	}
	if te.NextRoundAt(epoch) {
		t.Error("stale epoch advanced twice")
	}
}

func TestPlaybackHook(t *testing.T) {
	te := newTestEngine(t)

	var mu sync.Mutex
	var seen []Playback
	te.OnPlayback(func(p Playback) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	})

	_ = te.LoadFeatured("bird")
	te.StartRound()
	te.EndRoundIntro()
	te.SetBeat(3)
	te.StopGame()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 4 {
		t.Fatalf("hook called %d times, expected 4", len(seen))
	}
	if seen[1].Active || !seen[2].Active || seen[3].Active {
		t.Errorf("active flags = %v %v %v", seen[1].Active, seen[2].Active, seen[3].Active)
	}
	if seen[2].BPM != DefaultBPM || seen[2].Rounds != 5 {
		t.Errorf("playback = %+v", seen[2])
	}
}

func TestLoadCustomLevel(t *testing.T) {
	te := newTestEngine(t)
	_ = te.SetDraftMode(catalog.ModeCustom)
	_ = te.SetDraftSlot(1, 0, "first.png")

	te.LoadCustomLevel()

	s := te.Session()
	if s.Level.ID != catalog.CustomLevelID || s.Kind != KindLevel {
		t.Errorf("level = %+v", s.Level)
	}
	if s.Level.Images[0] != "first.png" || s.Level.Images[1] != catalog.PlaceholderImage {
		t.Errorf("images = %v", s.Level.Images)
	}
	if len(te.Draft().Layouts[1]) != catalog.GridSlots {
		t.Error("loading the draft should not consume it")
	}
}

func TestBoostGovernance(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	c := te.saveChallenge(t)

	if err := te.CheckBoost(c.ID); err != nil {
		t.Fatalf("CheckBoost() error = %v", err)
	}
	if err := te.BoostChallenge(ctx, c.ID); err != nil {
		t.Fatalf("BoostChallenge() error = %v", err)
	}
	if err := te.BoostChallenge(ctx, c.ID); !errors.Is(err, boost.ErrCooldownActive) {
		t.Errorf("BoostChallenge() in cooldown error = %v", err)
	}
	if left := te.Stats().BoostCooldownLeft; left != boost.DefaultCooldown {
		t.Errorf("cooldown left = %s", left)
	}

	for i := 0; i < boost.DefaultDailyCap-1; i++ {
		te.clock.Advance(boost.DefaultCooldown)
		if err := te.BoostChallenge(ctx, c.ID); err != nil {
			t.Fatalf("boost %d error = %v", i+2, err)
		}
	}
	te.clock.Advance(boost.DefaultCooldown)
	if err := te.CheckBoost(c.ID); !errors.Is(err, boost.ErrDailyCapReached) {
		t.Errorf("CheckBoost() at cap error = %v", err)
	}

	stored, _ := te.Challenge(c.ID)
	if stored.BoostLevel != 5 || stored.BoostsToday != 5 || stored.Fire != 25 {
		t.Errorf("level/today/fire = %d/%d/%d, expected 5/5/25", stored.BoostLevel, stored.BoostsToday, stored.Fire)
	}

	te.clock.Advance(24 * time.Hour)
	if err := te.CheckBoost(c.ID); err != nil {
		t.Errorf("CheckBoost() next day error = %v", err)
	}
	stored, _ = te.Challenge(c.ID)
	if stored.BoostsToday != 0 || stored.BoostLevel != 5 {
		t.Errorf("after reset today/level = %d/%d", stored.BoostsToday, stored.BoostLevel)
	}
}

func TestBoostCooldownIsGlobal(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	first := te.saveChallenge(t)
	second := te.saveChallenge(t)

	if err := te.BoostChallenge(ctx, first.ID); err != nil {
		t.Fatalf("BoostChallenge(first) error = %v", err)
	}

	te.clock.Advance(boost.DefaultCooldown - time.Second)
	if err := te.BoostChallenge(ctx, second.ID); !errors.Is(err, boost.ErrCooldownActive) {
		t.Errorf("BoostChallenge(second) in cooldown error = %v", err)
	}
	if stored, _ := te.Challenge(second.ID); stored.BoostLevel != 0 {
		t.Errorf("second boost level = %d, expected 0", stored.BoostLevel)
	}

	te.clock.Advance(time.Second)
	if err := te.BoostChallenge(ctx, second.ID); err != nil {
		t.Errorf("BoostChallenge(second) after cooldown error = %v", err)
	}
}

func TestBoostRequiresOwnedChallenge(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	profile := state.NewProfile()
	profile.Challenges = []*catalog.Challenge{{Level: catalog.Level{ID: "foreign", Rounds: 5}}}
	_ = te.store.UpdateProfile(ctx, testDevice, profile)
	if err := te.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if err := te.CheckBoost("foreign"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("CheckBoost(foreign) error = %v", err)
	}
	if err := te.CheckBoost("missing"); !errors.Is(err, ErrChallengeNotFound) {
		t.Errorf("CheckBoost(missing) error = %v", err)
	}
	if !IsBoostRejection(ErrNotOwned) || IsBoostRejection(ErrChallengeNotFound) {
		t.Error("IsBoostRejection() classification mismatch")
	}
}

func TestRestoreAppliesDayRollover(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	profile := state.NewProfile()
	profile.Challenges = []*catalog.Challenge{{Level: catalog.Level{ID: "c-1", Rounds: 5}, BoostsToday: 5}}
	profile.UserChallengeIDs = []string{"c-1"}
	profile.Language = "es"
	profile.TotalFire = 40
	profile.Engagement.LastBoostReset = te.clock.Now().Add(-24 * time.Hour)
	_ = te.store.UpdateProfile(ctx, testDevice, profile)

	if err := te.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	stored, _ := te.Challenge("c-1")
	if stored.BoostsToday != 0 {
		t.Errorf("BoostsToday = %d, expected 0", stored.BoostsToday)
	}
	if te.Language() != language.Spanish || te.Stats().TotalFire != 40 {
		t.Errorf("language %s fire %d", te.Language(), te.Stats().TotalFire)
	}
	if te.storedProfile(t).Challenges[0].BoostsToday != 0 {
		t.Error("rollover should be persisted")
	}
}

func TestRefreshEngagementNotifiesMilestones(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()

	profile := state.NewProfile()
	profile.Challenges = []*catalog.Challenge{{
		Level:      catalog.Level{ID: "c-1", Name: "Party", Rounds: 5},
		PlaysCount: 999,
		CreatedAt:  te.clock.Now().Add(-48 * time.Hour),
	}}
	profile.UserChallengeIDs = []string{"c-1"}
	_ = te.store.UpdateProfile(ctx, testDevice, profile)
	_ = te.Restore(ctx)

	result, err := te.RefreshEngagement(ctx)
	if err != nil || result.Intervals != 0 {
		t.Fatalf("first RefreshEngagement() = %+v, %v", result, err)
	}

	te.clock.Advance(time.Minute)
	result, err = te.RefreshEngagement(ctx)
	if err != nil {
		t.Fatalf("RefreshEngagement() error = %v", err)
	}
	if result.Intervals != 1 || len(result.Milestones) != 1 {
		t.Fatalf("RefreshEngagement() = %+v", result)
	}

	te.dispatch.Wait()
	sent := te.notifier.Sent()
	if len(sent) != 1 || sent[0].Title != "First buzz!" {
		t.Errorf("notifications = %+v", sent)
	}

	stored := te.storedProfile(t)
	if stored.Challenges[0].LastNotifiedLevel != 1 || stored.Engagement.LastRefresh.IsZero() {
		t.Errorf("persisted challenge %+v clock %+v", stored.Challenges[0], stored.Engagement)
	}
}

func TestPersistenceFailureKeepsState(t *testing.T) {
	clock := clockwork.NewFakeClock()
	e := NewEngine(Options{Store: &failingStore{}, DeviceID: testDevice, Rand: &mock.Rand{}, Clock: clock})

	c, err := e.SaveChallenge(context.Background())
	if err == nil {
		t.Fatal("SaveChallenge() expected a persistence error")
	}
	if c == nil || !e.IsOwned(c.ID) {
		t.Error("challenge should be kept in memory")
	}
}

func TestRateChallengeIsPersisted(t *testing.T) {
	te := newTestEngine(t)
	ctx := context.Background()
	c := te.saveChallenge(t)

	if ok, err := te.RateChallenge(ctx, c.ID, 5); !ok || err != nil {
		t.Fatalf("RateChallenge() = %v, %v", ok, err)
	}
	if ok, _ := te.RateChallenge(ctx, c.ID, 3); ok {
		t.Error("3 stars should not change anything")
	}
	if te.storedProfile(t).Challenges[0].Likes != 1 {
		t.Error("like should be persisted")
	}
}

func TestSetLanguage(t *testing.T) {
	te := newTestEngine(t)

	tag, err := te.SetLanguage(context.Background(), "fr-CA")
	if err != nil || tag != language.French {
		t.Fatalf("SetLanguage() = %s, %v", tag, err)
	}
	if te.storedProfile(t).Language != "fr" {
		t.Errorf("persisted language = %q", te.storedProfile(t).Language)
	}
}
