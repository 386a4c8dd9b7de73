// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package boost

import (
	"time"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
)

const (
	DefaultCooldown = 3 * time.Minute
	DefaultDailyCap = 5
	DefaultMinFire  = 1
	DefaultMaxFire  = 5
)

// Governor enforces the global boost cooldown and the per-challenge daily cap.
type Governor struct {
	Cooldown time.Duration
	DailyCap int
	MinFire  int
	MaxFire  int
}

func NewGovernor() *Governor {
	return &Governor{
		Cooldown: DefaultCooldown,
		DailyCap: DefaultDailyCap,
		MinFire:  DefaultMinFire,
		MaxFire:  DefaultMaxFire,
	}
}

// Check reports why c cannot be boosted at now, or nil.
// lastBoostAt is the most recent boost on any challenge; zero means never.
func (g *Governor) Check(c *catalog.Challenge, lastBoostAt, now time.Time) error {
	if c.BoostsToday >= g.DailyCap {
		return ErrDailyCapReached
	}
	if g.Remaining(lastBoostAt, now) > 0 {
		return ErrCooldownActive
	}
	return nil
}

// Remaining returns how long until the cooldown started at lastBoostAt expires.
func (g *Governor) Remaining(lastBoostAt, now time.Time) time.Duration {
	if lastBoostAt.IsZero() {
		return 0
	}
	if left := g.Cooldown - now.Sub(lastBoostAt); left > 0 {
		return left
	}
	return 0
}

// Apply boosts c and returns the fire gained. Views are not touched.
func (g *Governor) Apply(c *catalog.Challenge, rnd common.Rand) (int, error) {
	if c.BoostsToday >= g.DailyCap {
		return 0, ErrDailyCapReached
	}

	fire := common.IntBetween(rnd, g.MinFire, g.MaxFire)
	c.BoostLevel++
	c.BoostsToday++
	c.Fire += fire
	return fire, nil
}
