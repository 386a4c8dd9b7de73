package catalog

import (
	"strings"

	"github.com/AccelByte/extend-beat-party/pkg/common"
)

// Draft is the in-progress creator state.
type Draft struct {
	Name       string            `json:"name"`
	Images     []string          `json:"images"`
	ImageNames map[string]string `json:"imageNames"`
	Mode       CreatorMode       `json:"mode"`
	Layouts    RoundLayouts      `json:"layouts"`
}

// NewDraft returns an empty RANDOM draft with CreatorRounds empty rounds.
func NewDraft() Draft {
	return Draft{
		Images:     []string{},
		ImageNames: map[string]string{},
		Mode:       ModeRandom,
		Layouts:    EmptyLayouts(),
	}
}

// Reset clears the draft back to NewDraft.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// SetName sets the challenge name; blank names fall back to DefaultChallengeName on save.
func (d *Draft) SetName(name string) {
	d.Name = name
}

// AddImage appends uri to the image pool.
func (d *Draft) AddImage(uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return ErrEmptyImage
	}
	d.Images = append(d.Images, uri)
	return nil
}

// RemoveImage drops the pool image at index. Slots already holding it keep their reference.
func (d *Draft) RemoveImage(index int) error {
	if index < 0 || index >= len(d.Images) {
		return ErrIndexOutOfRange
	}

	uri := d.Images[index]
	d.Images = append(d.Images[:index:index], d.Images[index+1:]...)
	if !d.hasImage(uri) {
		delete(d.ImageNames, uri)
	}
	return nil
}

// SetImageName sets the spoken word shown for uri. An empty name clears it.
func (d *Draft) SetImageName(uri, name string) error {
	if !d.hasImage(uri) {
		return ErrUnknownImage
	}
	if d.ImageNames == nil {
		d.ImageNames = map[string]string{}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		delete(d.ImageNames, uri)
		return nil
	}
	d.ImageNames[uri] = name
	return nil
}

// SetMode switches between RANDOM and CUSTOM. Layouts are kept across switches.
func (d *Draft) SetMode(mode CreatorMode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	d.Mode = mode
	return nil
}

// SetSlot places uri into round's slot. An empty uri clears the slot.
func (d *Draft) SetSlot(round, slot int, uri string) error {
	if round < 1 || round > CreatorRounds {
		return ErrRoundOutOfRange
	}
	if slot < 0 || slot >= GridSlots {
		return ErrSlotOutOfRange
	}
	if d.Layouts == nil {
		d.Layouts = EmptyLayouts()
	}

	slots := d.Layouts.Slots(round)
	slots[slot] = uri
	d.Layouts[round] = slots
	return nil
}

// RoundComplete reports whether every slot of round is filled.
func (d *Draft) RoundComplete(round int) bool {
	return d.Layouts.Complete(round)
}

// FillRandomSlots fills every empty slot of every round from the pool and
// returns how many were filled. Pre-filled slots are untouched.
func (d *Draft) FillRandomSlots(rnd common.Rand) int {
	if d.Layouts == nil {
		d.Layouts = EmptyLayouts()
	}
	return d.Layouts.FillFrom(d.Images, rnd)
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.Images = append([]string{}, d.Images...)
	out.ImageNames = cloneNames(d.ImageNames)
	if out.ImageNames == nil {
		out.ImageNames = map[string]string{}
	}
	out.Layouts = d.Layouts.Clone()
	return out
}

func (d *Draft) hasImage(uri string) bool {
	for _, img := range d.Images {
		if img == uri {
			return true
		}
	}
	return false
}
