package catalog

import (
	"errors"
	"testing"

	"github.com/AccelByte/extend-beat-party/pkg/common/mock"
)

func TestDraftEdits(t *testing.T) {
	d := NewDraft()

	if err := d.AddImage("  "); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("AddImage(blank) error = %v, expected %v", err, ErrEmptyImage)
	}
	if err := d.AddImage("a.png"); err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}
	if err := d.AddImage("b.png"); err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}
	if err := d.SetImageName("a.png", " Apple "); err != nil {
		t.Fatalf("SetImageName() error = %v", err)
	}
	if d.ImageNames["a.png"] != "Apple" {
		t.Errorf("ImageNames[a.png] = %q, expected Apple", d.ImageNames["a.png"])
	}
	if err := d.SetImageName("zzz.png", "x"); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("SetImageName(unknown) error = %v, expected %v", err, ErrUnknownImage)
	}

	if err := d.RemoveImage(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveImage(5) error = %v, expected %v", err, ErrIndexOutOfRange)
	}
	if err := d.RemoveImage(0); err != nil {
		t.Fatalf("RemoveImage(0) error = %v", err)
	}
	if len(d.Images) != 1 || d.Images[0] != "b.png" {
		t.Errorf("Images = %v, expected [b.png]", d.Images)
	}
	if _, ok := d.ImageNames["a.png"]; ok {
		t.Error("removed image should lose its display name")
	}

	if err := d.SetMode("SHUFFLE"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("SetMode(SHUFFLE) error = %v, expected %v", err, ErrUnknownMode)
	}
	if err := d.SetMode(ModeCustom); err != nil || d.Mode != ModeCustom {
		t.Errorf("SetMode(CUSTOM) = %v, mode %s", err, d.Mode)
	}
}

func TestDraftSetSlotBounds(t *testing.T) {
	tests := []struct {
		name  string
		round int
		slot  int
		want  error
	}{
		{name: "first slot", round: 1, slot: 0},
		{name: "last slot", round: CreatorRounds, slot: GridSlots - 1},
		{name: "round zero", round: 0, slot: 0, want: ErrRoundOutOfRange},
		{name: "round too high", round: CreatorRounds + 1, slot: 0, want: ErrRoundOutOfRange},
		{name: "negative slot", round: 1, slot: -1, want: ErrSlotOutOfRange},
		{name: "slot too high", round: 1, slot: GridSlots, want: ErrSlotOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			err := d.SetSlot(tt.round, tt.slot, "x.png")
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetSlot() error = %v, expected %v", err, tt.want)
			}
			if tt.want == nil && d.Layouts[tt.round][tt.slot] != "x.png" {
				t.Errorf("slot not set: %v", d.Layouts[tt.round])
			}
		})
	}
}

func TestDraftFillRandomSlots(t *testing.T) {
	t.Run("empty pool is a no-op", func(t *testing.T) {
		d := NewDraft()
		if n := d.FillRandomSlots(&mock.Rand{}); n != 0 {
			t.Errorf("FillRandomSlots() = %d, expected 0", n)
		}
		for round := 1; round <= CreatorRounds; round++ {
			if d.RoundComplete(round) {
				t.Errorf("round %d should stay incomplete", round)
			}
		}
	})

	t.Run("fills only empty slots", func(t *testing.T) {
		d := NewDraft()
		_ = d.AddImage("a.png")
		_ = d.AddImage("b.png")
		_ = d.SetSlot(2, 3, "keep.png")

		n := d.FillRandomSlots(&mock.Rand{Max: true})
		if n != CreatorRounds*GridSlots-1 {
			t.Errorf("FillRandomSlots() = %d, expected %d", n, CreatorRounds*GridSlots-1)
		}
		if d.Layouts[2][3] != "keep.png" {
			t.Errorf("pre-filled slot overwritten: %q", d.Layouts[2][3])
		}
		for round := 1; round <= CreatorRounds; round++ {
			if !d.RoundComplete(round) {
				t.Errorf("round %d incomplete after fill", round)
			}
		}
		if d.Layouts[1][0] != "b.png" {
			t.Errorf("slot = %q, expected b.png", d.Layouts[1][0])
		}
	})
}

func TestDraftReset(t *testing.T) {
	d := NewDraft()
	d.SetName("Party")
	_ = d.AddImage("a.png")
	_ = d.SetMode(ModeCustom)
	_ = d.SetSlot(1, 0, "a.png")

	d.Reset()

	if d.Name != "" || len(d.Images) != 0 || d.Mode != ModeRandom {
		t.Errorf("Reset() left %+v", d)
	}
	if len(d.Layouts) != CreatorRounds || d.Layouts[1][0] != "" {
		t.Errorf("Reset() layouts = %v", d.Layouts)
	}
}
