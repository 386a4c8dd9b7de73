package catalog

import "time"

// Challenge is a community challenge authored in the creator flow.
type Challenge struct {
	Level

	Slug                string       `json:"slug"`
	CreatorMode         CreatorMode  `json:"creatorMode"`
	CreatorImages       []string     `json:"creatorImages"`
	CreatorRoundLayouts RoundLayouts `json:"creatorRoundLayouts"`

	PlaysCount int `json:"playsCount"`
	Likes      int `json:"likes"`
	Dislikes   int `json:"dislikes"`
	Fire       int `json:"fire"`

	// BoostLevel is permanent; BoostsToday is reset daily and capped.
	BoostLevel  int `json:"boostLevel"`
	BoostsToday int `json:"boostsToday"`

	// IsViral is decided once at creation.
	IsViral bool `json:"isViral"`

	HasBuzzNotified   bool `json:"hasBuzzNotified"`
	LastNotifiedLevel int  `json:"lastNotifiedLevel"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the challenge.
func (c *Challenge) Clone() *Challenge {
	out := *c
	out.Level = c.Level.Clone()
	out.CreatorImages = append([]string(nil), c.CreatorImages...)
	out.CreatorRoundLayouts = c.CreatorRoundLayouts.Clone()
	return &out
}

// Age returns how long the challenge has existed at t.
func (c *Challenge) Age(t time.Time) time.Duration {
	return t.Sub(c.CreatedAt)
}
