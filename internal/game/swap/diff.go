package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Change records what occupied a slot before a swap.
type Change struct {
	// EquipmentID is the displayed value before the swap.
	EquipmentID int
	// Unnatural is true when a saved swap already occupied the slot, so undoing
	// the change must restore it as a saved swap rather than revert it.
	Unnatural bool
}

// ColorChange records what color a color type showed before a swap.
type ColorChange struct {
	ColorID   int
	Unnatural bool
}

// Diff is the reversible record of one resolution.
type Diff struct {
	Slots  map[appearance.Slot]Change
	Colors map[appearance.ColorType]ColorChange

	idleAnimation    int
	hasIdleAnimation bool
}

// Blank returns a Diff with no changes.
func Blank() Diff {
	return Diff{
		Slots:  make(map[appearance.Slot]Change),
		Colors: make(map[appearance.ColorType]ColorChange),
	}
}

// WithIdleAnimation returns a copy of d recording previous as the idle
// animation shown before the swap.
func (d Diff) WithIdleAnimation(previous int) Diff {
	out := d.clone()
	out.idleAnimation = previous
	out.hasIdleAnimation = true
	return out
}

// IdleAnimation returns the idle animation shown before the swap, if the swap
// changed it.
func (d Diff) IdleAnimation() (int, bool) {
	return d.idleAnimation, d.hasIdleAnimation
}

// IsBlank reports whether d changes nothing.
func (d Diff) IsBlank() bool {
	return len(d.Slots) == 0 && len(d.Colors) == 0 && !d.hasIdleAnimation
}

// MergeOver combines d with a diff that was applied before it. For every slot
// and color present in both, the earlier diff's Change wins so that the
// merged result still records the value displaced by the whole sequence.
// The same holds for the idle animation.
func (d Diff) MergeOver(earlier Diff) Diff {
	out := d.clone()
	for slot, c := range earlier.Slots {
		out.Slots[slot] = c
	}
	for t, c := range earlier.Colors {
		out.Colors[t] = c
	}
	if earlier.hasIdleAnimation {
		out.idleAnimation = earlier.idleAnimation
		out.hasIdleAnimation = true
	}
	return out
}

func (d Diff) clone() Diff {
	out := Blank()
	for slot, c := range d.Slots {
		out.Slots[slot] = c
	}
	for t, c := range d.Colors {
		out.Colors[t] = c
	}
	out.idleAnimation = d.idleAnimation
	out.hasIdleAnimation = d.hasIdleAnimation
	return out
}

// mergeAll folds diffs in application order.
func mergeAll(diffs ...Diff) Diff {
	acc := Blank()
	for _, d := range diffs {
		acc = d.MergeOver(acc)
	}
	return acc
}
