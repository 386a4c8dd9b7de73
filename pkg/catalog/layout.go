package catalog

import (
	"github.com/AccelByte/extend-beat-party/pkg/common"
)

// RoundLayouts maps a 1-based round number to its ordered grid slots.
// An empty string marks an empty slot.
type RoundLayouts map[int][]string

// EmptyLayouts returns CreatorRounds rounds of GridSlots empty slots.
func EmptyLayouts() RoundLayouts {
	layouts := make(RoundLayouts, CreatorRounds)
	for round := 1; round <= CreatorRounds; round++ {
		layouts[round] = make([]string, GridSlots)
	}
	return layouts
}

// Clone returns a deep copy. Rounds with fewer than GridSlots slots are padded.
func (l RoundLayouts) Clone() RoundLayouts {
	out := make(RoundLayouts, len(l))
	for round, slots := range l {
		out[round] = normalizeSlots(slots)
	}
	return out
}

// Slots returns a GridSlots-long copy of round's slots; missing rounds are empty.
func (l RoundLayouts) Slots(round int) []string {
	return normalizeSlots(l[round])
}

// Complete reports whether every slot of round is filled.
func (l RoundLayouts) Complete(round int) bool {
	for _, slot := range l.Slots(round) {
		if slot == "" {
			return false
		}
	}
	return true
}

// FillFrom replaces every empty slot of rounds 1..CreatorRounds with a uniform draw from pool.
// It returns the number of slots filled; an empty pool fills nothing.
func (l RoundLayouts) FillFrom(pool []string, rnd common.Rand) int {
	if len(pool) == 0 {
		return 0
	}

	filled := 0
	for round := 1; round <= CreatorRounds; round++ {
		slots := l.Slots(round)
		for i, slot := range slots {
			if slot != "" {
				continue
			}
			slots[i] = pool[rnd.Intn(len(pool))]
			filled++
		}
		l[round] = slots
	}
	return filled
}

// FillPlaceholders replaces every remaining empty slot with PlaceholderImage.
func (l RoundLayouts) FillPlaceholders() {
	for round := 1; round <= CreatorRounds; round++ {
		slots := l.Slots(round)
		for i, slot := range slots {
			if slot == "" {
				slots[i] = PlaceholderImage
			}
		}
		l[round] = slots
	}
}

func normalizeSlots(slots []string) []string {
	out := make([]string, GridSlots)
	copy(out, slots)
	return out
}
