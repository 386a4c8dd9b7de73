package engagement

import (
	"math"
	"time"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
)

// Clock carries the persisted engagement timestamps.
type Clock struct {
	LastRefresh    time.Time `json:"lastRefresh"`
	LastBoostReset time.Time `json:"lastBoostReset"`
}

// Ownership tells the simulator which challenges were authored on this device.
type Ownership interface {
	IsOwned(id string) bool
}

// Milestone is a newly crossed view tier of an authored challenge.
type Milestone struct {
	ChallengeID string `json:"challengeId"`
	Name        string `json:"name"`
	Tier        int    `json:"tier"`
	Views       int    `json:"views"`
}

// Result summarises one refresh.
type Result struct {
	Intervals   int
	Milestones  []Milestone
	BoostsReset bool
}

// Simulator advances the synthetic engagement of authored challenges.
type Simulator struct {
	tuning Tuning
}

func NewSimulator(tuning Tuning) *Simulator {
	return &Simulator{tuning: tuning}
}

func (s *Simulator) Tuning() Tuning {
	return s.tuning
}

// Refresh replays every whole interval elapsed since clock.LastRefresh.
// Only owned challenges change. LastRefresh advances by exactly the
// replayed intervals so the fractional remainder carries to the next call.
func (s *Simulator) Refresh(challenges []*catalog.Challenge, owned Ownership, clock *Clock, now time.Time, rnd common.Rand) Result {
	var result Result

	if clock.LastRefresh.IsZero() {
		clock.LastRefresh = now
		return result
	}

	elapsed := now.Sub(clock.LastRefresh)
	if elapsed < s.tuning.Interval {
		return result
	}

	n := int(elapsed / s.tuning.Interval)
	for i := 1; i <= n; i++ {
		at := clock.LastRefresh.Add(time.Duration(i) * s.tuning.Interval)
		for _, c := range challenges {
			if owned.IsOwned(c.ID) {
				s.step(c, at, rnd)
			}
		}
	}
	clock.LastRefresh = clock.LastRefresh.Add(time.Duration(n) * s.tuning.Interval)
	result.Intervals = n

	for _, c := range challenges {
		if owned.IsOwned(c.ID) {
			result.Milestones = append(result.Milestones, s.milestones(c)...)
		}
	}

	result.BoostsReset = s.ResetDailyBoosts(challenges, clock, now)
	return result
}

// RegimeAt returns the growth regime of c at age.
func (s *Simulator) RegimeAt(c *catalog.Challenge, age time.Duration) Regime {
	t := s.tuning
	switch {
	case age < t.GraceWindow:
		return t.Grace
	case c.IsViral && age < t.ViralWindow:
		return t.Viral
	case c.IsViral:
		return t.Stabilization
	case age <= t.NormalWindow:
		return t.Normal
	default:
		return t.Stabilization
	}
}

func (s *Simulator) step(c *catalog.Challenge, at time.Time, rnd common.Rand) {
	age := c.Age(at)
	if age < 0 {
		return
	}

	regime := s.RegimeAt(c, age)
	if rnd.Float64() < regime.Chance {
		increment := common.IntBetween(rnd, regime.MinViews, regime.MaxViews)
		multiplier := 1 + float64(c.BoostLevel)*s.tuning.BoostFactor*rnd.Float64()
		c.PlaysCount += int(math.Round(float64(increment) * multiplier))
	}
	if rnd.Float64() < s.tuning.LikeChance {
		c.Likes++
	}
	if rnd.Float64() < s.tuning.FireChance {
		c.Fire++
	}
}

// milestones returns one entry per tier crossed since LastNotifiedLevel.
func (s *Simulator) milestones(c *catalog.Challenge) []Milestone {
	tier := c.PlaysCount / s.tuning.ViewsPerMilestone
	if tier > s.tuning.MaxMilestone {
		tier = s.tuning.MaxMilestone
	}
	if tier <= c.LastNotifiedLevel {
		return nil
	}

	out := make([]Milestone, 0, tier-c.LastNotifiedLevel)
	for t := c.LastNotifiedLevel + 1; t <= tier; t++ {
		out = append(out, Milestone{ChallengeID: c.ID, Name: c.Name, Tier: t, Views: c.PlaysCount})
	}
	c.LastNotifiedLevel = tier
	c.HasBuzzNotified = true
	return out
}

// ResetDailyBoosts zeroes BoostsToday on every challenge when the calendar
// date of clock.LastBoostReset differs from now's, in now's location.
// A zero LastBoostReset is initialised without resetting.
func (s *Simulator) ResetDailyBoosts(challenges []*catalog.Challenge, clock *Clock, now time.Time) bool {
	if clock.LastBoostReset.IsZero() {
		clock.LastBoostReset = now
		return false
	}
	if sameDay(clock.LastBoostReset.In(now.Location()), now) {
		return false
	}

	for _, c := range challenges {
		c.BoostsToday = 0
	}
	clock.LastBoostReset = now
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
