// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
	"github.com/AccelByte/extend-beat-party/pkg/engagement"
	"github.com/AccelByte/extend-beat-party/pkg/metrics"
	"github.com/AccelByte/extend-beat-party/pkg/notify"
)

// RateChallenge applies a 1..5 star rating. Out-of-range stars and 3 stars change nothing.
func (e *Engine) RateChallenge(ctx context.Context, id string, stars int) (bool, error) {
	var ok bool
	err := e.mutate(ctx, func(fx *effects) {
		ok = e.repo.Rate(id, stars)
		fx.persist = ok
	})
	return ok, err
}

// Draft returns a copy of the creator draft.
func (e *Engine) Draft() catalog.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

func (e *Engine) editDraft(fn func(d *catalog.Draft) error) error {
	var err error
	_ = e.mutate(context.Background(), func(fx *effects) {
		err = fn(&e.draft)
	})
	return err
}

func (e *Engine) AddDraftImage(uri string) error {
	return e.editDraft(func(d *catalog.Draft) error { return d.AddImage(uri) })
}

func (e *Engine) RemoveDraftImage(index int) error {
	return e.editDraft(func(d *catalog.Draft) error { return d.RemoveImage(index) })
}

func (e *Engine) SetDraftImageName(uri, name string) error {
	return e.editDraft(func(d *catalog.Draft) error { return d.SetImageName(uri, name) })
}

func (e *Engine) SetDraftMode(mode catalog.CreatorMode) error {
	return e.editDraft(func(d *catalog.Draft) error { return d.SetMode(mode) })
}

func (e *Engine) SetDraftSlot(round, slot int, uri string) error {
	return e.editDraft(func(d *catalog.Draft) error { return d.SetSlot(round, slot, uri) })
}

func (e *Engine) SetDraftName(name string) {
	_ = e.editDraft(func(d *catalog.Draft) error {
		d.SetName(name)
		return nil
	})
}

func (e *Engine) ResetDraft() {
	_ = e.editDraft(func(d *catalog.Draft) error {
		d.Reset()
		return nil
	})
}

// FillDraftSlots fills the draft's empty slots from its pool and returns how many were filled.
func (e *Engine) FillDraftSlots() int {
	var n int
	_ = e.editDraft(func(d *catalog.Draft) error {
		n = d.FillRandomSlots(e.rnd)
		return nil
	})
	return n
}

// SaveChallenge publishes the draft. The challenge is kept even when persisting fails.
func (e *Engine) SaveChallenge(ctx context.Context) (*catalog.Challenge, error) {
	var saved *catalog.Challenge
	err := e.mutate(ctx, func(fx *effects) {
		c := e.repo.Save(&e.draft, e.clk.Now(), e.rnd)
		saved = c.Clone()
		fx.persist = true
	})
	metrics.ChallengesSavedTotal.Inc()
	logrus.Infof("saved challenge %s (%s)", saved.ID, saved.Slug)
	return saved, err
}

// RefreshEngagement runs the engagement simulator up to now and notifies crossed milestones.
func (e *Engine) RefreshEngagement(ctx context.Context) (engagement.Result, error) {
	scope := common.StartScope(ctx, "RefreshEngagement")
	defer scope.Finish()

	var result engagement.Result
	err := e.mutate(scope.Ctx, func(fx *effects) {
		initialising := e.eng.LastRefresh.IsZero()
		result = e.simulator.Refresh(e.repo.Challenges(), e.repo, &e.eng, e.clk.Now(), e.rnd)
		fx.persist = initialising || result.Intervals > 0 || result.BoostsReset
		for _, m := range result.Milestones {
			fx.messages = append(fx.messages, notify.MilestoneMessage(e.language, m, e.simulator.Tuning().ViewsPerMilestone))
		}
	})

	metrics.EngagementIntervalsTotal.Add(float64(result.Intervals))
	scope.SetAttributes("intervals", result.Intervals)
	scope.SetAttributes("milestones", len(result.Milestones))
	if err != nil {
		scope.TraceError(err)
	}
	return result, err
}

// ResetDailyBoosts clears today's boost counters when the calendar day rolled over.
func (e *Engine) ResetDailyBoosts(ctx context.Context) (bool, error) {
	var reset bool
	err := e.mutate(ctx, func(fx *effects) {
		reset = e.simulator.ResetDailyBoosts(e.repo.Challenges(), &e.eng, e.clk.Now())
		fx.persist = reset
	})
	return reset, err
}

// boostableLocked returns the authored challenge with id after applying any pending daily reset.
func (e *Engine) boostableLocked(fx *effects, id string) (*catalog.Challenge, error) {
	c := e.repo.Get(id)
	if c == nil {
		return nil, ErrChallengeNotFound
	}
	if !e.repo.IsOwned(id) {
		return nil, ErrNotOwned
	}
	if e.simulator.ResetDailyBoosts(e.repo.Challenges(), &e.eng, e.clk.Now()) {
		fx.persist = true
	}
	if err := e.governor.Check(c, e.lastBoostAt, e.clk.Now()); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckBoost reports why id cannot be boosted right now, or nil.
func (e *Engine) CheckBoost(id string) error {
	var err error
	_ = e.mutate(context.Background(), func(fx *effects) {
		_, err = e.boostableLocked(fx, id)
	})
	if err != nil {
		metrics.BoostsTotal.WithLabelValues("rejected").Inc()
	}
	return err
}

// BoostChallenge applies a boost to id and starts the global cooldown.
// Callers gate it behind a granted reward.
func (e *Engine) BoostChallenge(ctx context.Context, id string) error {
	scope := common.StartScope(ctx, "BoostChallenge")
	defer scope.Finish()
	scope.SetAttributes("challengeID", id)

	var boostErr error
	var fire int
	err := e.mutate(scope.Ctx, func(fx *effects) {
		c, err := e.boostableLocked(fx, id)
		if err != nil {
			boostErr = err
			return
		}
		if fire, err = e.governor.Apply(c, e.rnd); err != nil {
			boostErr = err
			return
		}
		e.lastBoostAt = e.clk.Now()
		fx.persist = true
	})

	if boostErr != nil {
		metrics.BoostsTotal.WithLabelValues("rejected").Inc()
		scope.TraceError(boostErr)
		return boostErr
	}
	metrics.BoostsTotal.WithLabelValues("applied").Inc()
	scope.Log.Infof("boosted challenge %s for %d fire", id, fire)
	return err
}

// SetLanguage stores the interface language resolved from a BCP 47 preference.
func (e *Engine) SetLanguage(ctx context.Context, pref string) (language.Tag, error) {
	tag := notify.ResolveLanguage(pref)
	err := e.mutate(ctx, func(fx *effects) {
		e.language = tag
		fx.persist = true
	})
	return tag, err
}

// IsBoostRejection reports whether err is a governor or ownership rejection.
func IsBoostRejection(err error) bool {
	return errors.Is(err, boost.ErrDailyCapReached) ||
		errors.Is(err, boost.ErrCooldownActive) ||
		errors.Is(err, ErrNotOwned)
}
