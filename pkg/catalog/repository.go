package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/AccelByte/extend-beat-party/pkg/common"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SortOrder selects the ordering of List.
type SortOrder string

const (
	SortPlays  SortOrder = "plays"
	SortLikes  SortOrder = "likes"
	SortNewest SortOrder = "newest"
)

// Valid reports whether o is a known order.
func (o SortOrder) Valid() bool {
	switch o {
	case SortPlays, SortLikes, SortNewest:
		return true
	}
	return false
}

const (
	earlyViralChance = 0.9
	lateViralChance  = 0.2
	earlyViralCount  = 2
)

// Repository holds the community catalog and the ids authored on this device.
// It is not safe for concurrent use; callers serialise access.
type Repository struct {
	challenges  []*Challenge
	owned       []string
	maxRetained int
	newID       func() string
}

// NewRepository returns an empty repository retaining at most maxRetained challenges.
func NewRepository(maxRetained int) *Repository {
	if maxRetained <= 0 {
		maxRetained = DefaultMaxRetained
	}
	return &Repository{
		challenges:  []*Challenge{},
		owned:       []string{},
		maxRetained: maxRetained,
		newID:       uuid.NewString,
	}
}

// Restore replaces the repository contents with persisted data, newest first.
func (r *Repository) Restore(challenges []*Challenge, owned []string) {
	r.challenges = make([]*Challenge, 0, len(challenges))
	for _, c := range challenges {
		if c != nil {
			r.challenges = append(r.challenges, c.Clone())
		}
	}
	r.owned = append([]string{}, owned...)
	r.prune()
}

// Export returns deep copies of the stored challenges and authored ids.
func (r *Repository) Export() ([]*Challenge, []string) {
	out := make([]*Challenge, len(r.challenges))
	for i, c := range r.challenges {
		out[i] = c.Clone()
	}
	return out, append([]string{}, r.owned...)
}

// Challenges returns the live stored challenges for in-place mutation by the
// engagement simulator and the boost governor.
func (r *Repository) Challenges() []*Challenge {
	return r.challenges
}

// Get returns the live challenge with id, or nil.
func (r *Repository) Get(id string) *Challenge {
	for _, c := range r.challenges {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// List returns copies of every stored challenge in the given order.
// Ties keep catalog order, which is newest first.
func (r *Repository) List(order SortOrder) []*Challenge {
	out := make([]*Challenge, len(r.challenges))
	for i, c := range r.challenges {
		out[i] = c.Clone()
	}

	switch order {
	case SortPlays:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PlaysCount > out[j].PlaysCount })
	case SortLikes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Owned returns copies of the challenges authored on this device, newest first.
func (r *Repository) Owned() []*Challenge {
	out := []*Challenge{}
	for _, c := range r.challenges {
		if r.IsOwned(c.ID) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// IsOwned reports whether id was authored on this device.
func (r *Repository) IsOwned(id string) bool {
	for _, owned := range r.owned {
		if owned == id {
			return true
		}
	}
	return false
}

// TotalOwnedViews sums the plays of every authored challenge.
func (r *Repository) TotalOwnedViews() int {
	total := 0
	for _, c := range r.challenges {
		if r.IsOwned(c.ID) {
			total += c.PlaysCount
		}
	}
	return total
}

// Save publishes d as a new challenge, registers it as authored and resets d.
// Every round of the stored challenge has GridSlots non-empty slots.
func (r *Repository) Save(d *Draft, now time.Time, rnd common.Rand) *Challenge {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = DefaultChallengeName
	}

	mode := d.Mode
	if !mode.Valid() {
		mode = ModeRandom
	}

	layouts := d.Layouts.Clone()
	layouts.FillFrom(d.Images, rnd)
	layouts.FillPlaceholders()

	viralChance := lateViralChance
	if len(r.owned) < earlyViralCount {
		viralChance = earlyViralChance
	}

	pool := append([]string{}, d.Images...)
	c := &Challenge{
		Level: Level{
			ID:         r.newID(),
			Name:       name,
			Rounds:     CreatorRounds,
			Images:     pool,
			ImageNames: cloneNames(d.ImageNames),
		},
		Slug:                slug.Make(name),
		CreatorMode:         mode,
		CreatorImages:       append([]string{}, pool...),
		CreatorRoundLayouts: layouts,
		IsViral:             rnd.Float64() < viralChance,
		CreatedAt:           now,
	}

	r.challenges = append([]*Challenge{c}, r.challenges...)
	r.owned = append(r.owned, c.ID)
	r.prune()
	d.Reset()
	return c
}

// CreditPlay adds one view to challenge id. It reports whether the challenge exists.
func (r *Repository) CreditPlay(id string) bool {
	c := r.Get(id)
	if c == nil {
		return false
	}
	c.PlaysCount++
	return true
}

// Rate applies a 1..5 star rating: 4-5 likes, 1-2 dislikes, 3 is neutral.
// It reports whether a counter changed.
func (r *Repository) Rate(id string, stars int) bool {
	c := r.Get(id)
	if c == nil {
		return false
	}

	switch {
	case stars >= 4 && stars <= 5:
		c.Likes++
	case stars >= 1 && stars <= 2:
		c.Dislikes++
	default:
		return false
	}
	return true
}

// prune drops the oldest challenges beyond maxRetained along with their authored ids.
func (r *Repository) prune() {
	if len(r.challenges) <= r.maxRetained {
		return
	}

	for _, c := range r.challenges[r.maxRetained:] {
		r.removeOwned(c.ID)
	}
	r.challenges = r.challenges[:r.maxRetained]
}

func (r *Repository) removeOwned(id string) {
	for i, owned := range r.owned {
		if owned == id {
			r.owned = append(r.owned[:i], r.owned[i+1:]...)
			return
		}
	}
}
