package catalog

const (
	// GridSlots is the number of images shown per round.
	GridSlots = 8
	// CreatorRounds is the number of rounds of a user-authored challenge.
	CreatorRounds = 5
	// PlaceholderImage replaces empty slots so a rendered grid never has holes.
	PlaceholderImage = "https://via.placeholder.com/150"
	// DefaultChallengeName is used when a draft is saved without a name.
	DefaultChallengeName = "My Challenge"
	// CustomLevelID identifies a draft played without saving it.
	CustomLevelID = "custom"
	// DefaultMaxRetained bounds the stored catalog size.
	DefaultMaxRetained = 50
)

// CreatorMode governs how each round's images are selected.
type CreatorMode string

const (
	// ModeRandom draws every round from the flat image pool.
	ModeRandom CreatorMode = "RANDOM"
	// ModeCustom uses the author-specified layout of each round.
	ModeCustom CreatorMode = "CUSTOM"
)

// Valid reports whether m is a known mode.
func (m CreatorMode) Valid() bool {
	return m == ModeRandom || m == ModeCustom
}

// Level is a playable unit. When held by a game session Images holds the
// current round's grid.
type Level struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Rounds     int               `json:"rounds"`
	Images     []string          `json:"images"`
	ImageNames map[string]string `json:"imageNames,omitempty"`
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	out := l
	out.Images = append([]string(nil), l.Images...)
	out.ImageNames = cloneNames(l.ImageNames)
	return out
}

func cloneNames(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
