// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/metrics"
)

// LoadLevel installs sel in the session.
func (e *Engine) LoadLevel(sel Selection) {
	_ = e.mutate(context.Background(), func(fx *effects) {
		e.session.Load(sel, e.rnd)
	})
}

// LoadFeatured loads the built-in level with id.
func (e *Engine) LoadFeatured(id string) error {
	level, ok := catalog.FeaturedByID(id)
	if !ok {
		return ErrLevelNotFound
	}
	e.LoadLevel(Featured(level))
	return nil
}

// LoadChallenge loads the stored community challenge with id.
func (e *Engine) LoadChallenge(id string) error {
	var err error
	_ = e.mutate(context.Background(), func(fx *effects) {
		c := e.repo.Get(id)
		if c == nil {
			err = ErrChallengeNotFound
			return
		}
		e.session.Load(Community(c), e.rnd)
	})
	return err
}

// LoadCustomLevel loads the creator draft for play without saving it.
func (e *Engine) LoadCustomLevel() {
	_ = e.mutate(context.Background(), func(fx *effects) {
		e.session.Load(CustomFromDraft(e.draft), e.rnd)
	})
}

// StartRound begins the current round with its intro cue.
func (e *Engine) StartRound() bool {
	return e.transition(func() bool { return e.session.StartRound() }, CueRoundIntro)
}

// EndRoundIntro lets the beat loop run.
func (e *Engine) EndRoundIntro() bool {
	return e.transition(func() bool { return e.session.EndRoundIntro() })
}

// NextRound advances to the following round with its intro cue.
func (e *Engine) NextRound() bool {
	return e.transition(func() bool { return e.session.NextRound(e.rnd) }, CueRoundIntro)
}

// SetBeat records a beat without validation.
func (e *Engine) SetBeat(beat int) {
	_ = e.mutate(context.Background(), func(fx *effects) {
		e.session.SetBeat(beat)
	})
}

// StopGame abandons play.
func (e *Engine) StopGame() {
	e.transition(func() bool {
		e.session.Stop()
		return true
	})
}

// RestartGame replays the level from round 1 without going through the menu.
func (e *Engine) RestartGame() bool {
	return e.transition(func() bool { return e.session.Restart(e.rnd) }, CueRoundIntro)
}

// ReturnToMenu rewinds the level to round 1 and waits in the menu.
func (e *Engine) ReturnToMenu() bool {
	return e.transition(func() bool { return e.session.ReturnToMenu(e.rnd) })
}

// Continue is the start button.
func (e *Engine) Continue() bool {
	return e.transition(func() bool { return e.session.Continue(e.rnd) }, CueRoundIntro)
}

// SetBPM changes the tempo.
func (e *Engine) SetBPM(bpm int) bool {
	return e.transition(func() bool { return e.session.SetBPM(bpm) })
}

// EnterCreator stops play and opens the creator.
func (e *Engine) EnterCreator() {
	e.transition(func() bool {
		e.session.EnterCreator()
		return true
	})
}

// CompleteGame finishes the playthrough: one play is credited to the stored
// challenge and the completion reward to the session and the running total.
func (e *Engine) CompleteGame(ctx context.Context) (bool, error) {
	var done bool
	err := e.mutate(ctx, func(fx *effects) {
		done = e.completeLocked(fx)
	})
	return done, err
}

func (e *Engine) transition(fn func() bool, cues ...Cue) bool {
	var ok bool
	_ = e.mutate(context.Background(), func(fx *effects) {
		ok = fn()
		if ok {
			fx.cues = append(fx.cues, cues...)
			if len(cues) > 0 && cues[0] == CueRoundIntro {
				metrics.RoundsStartedTotal.WithLabelValues(string(e.session.Kind)).Inc()
			}
		}
	})
	return ok
}

func (e *Engine) completeLocked(fx *effects) bool {
	if !e.session.Complete() {
		return false
	}

	if e.session.Kind == KindCommunity {
		e.repo.CreditPlay(e.session.ChallengeID)
	}
	e.totalFire += CompletionReward
	fx.cues = append(fx.cues, CueComplete)
	fx.persist = true
	metrics.GamesCompletedTotal.WithLabelValues(string(e.session.Kind)).Inc()
	return true
}

// active reports whether epoch is current and the beat loop may write.
func (e *Engine) active(epoch uint64) bool {
	return e.session.Epoch == epoch && e.session.Playback().Active
}

// SetBeatAt lands a beat from the loop started at epoch. Stale loops are ignored.
func (e *Engine) SetBeatAt(epoch uint64, beat int) bool {
	var ok bool
	_ = e.mutate(context.Background(), func(fx *effects) {
		if !e.active(epoch) {
			return
		}
		e.session.SetBeat(beat)
		fx.cues = append(fx.cues, CueBeat)
		metrics.BeatsTotal.Inc()
		ok = true
	})
	return ok
}

// NextRoundAt advances the round for the loop started at epoch.
func (e *Engine) NextRoundAt(epoch uint64) bool {
	var ok bool
	_ = e.mutate(context.Background(), func(fx *effects) {
		if !e.active(epoch) || !e.session.NextRound(e.rnd) {
			return
		}
		fx.cues = append(fx.cues, CueRoundIntro)
		metrics.RoundsStartedTotal.WithLabelValues(string(e.session.Kind)).Inc()
		ok = true
	})
	return ok
}

// CompleteGameAt completes the playthrough for the loop started at epoch.
func (e *Engine) CompleteGameAt(ctx context.Context, epoch uint64) (bool, error) {
	var ok bool
	err := e.mutate(ctx, func(fx *effects) {
		if e.active(epoch) {
			ok = e.completeLocked(fx)
		}
	})
	return ok, err
}
