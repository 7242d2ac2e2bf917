package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Mode controls what a swap does to SavedSwaps.
type Mode int

const (
	// ModePreview changes only the live composition.
	ModePreview Mode = iota
	// ModeSave also records the new value in SavedSwaps.
	ModeSave
	// ModeRevert also clears the SavedSwaps entry.
	ModeRevert
)

// String returns a lower-case label for m.
func (m Mode) String() string {
	switch m {
	case ModeSave:
		return "save"
	case ModeRevert:
		return "revert"
	default:
		return "preview"
	}
}

// ModeFunc chooses the Mode for each slot of a compound swap.
type ModeFunc func(appearance.Slot) Mode

// Always returns a ModeFunc that uses mode for every slot.
func Always(mode Mode) ModeFunc {
	return func(appearance.Slot) Mode { return mode }
}

// Target is an optional equipment id. The zero Target means "leave unchanged".
type Target struct {
	EquipmentID int
	Set         bool
}

// Keep leaves a slot unchanged.
var Keep = Target{}

// To requests equipmentID.
func To(equipmentID int) Target {
	return Target{EquipmentID: equipmentID, Set: true}
}

// shows reports whether t requests a visible, non-empty value.
func (t Target) shows() bool {
	return t.Set && t.EquipmentID > 0
}

func targetFrom(req map[appearance.Slot]int, slot appearance.Slot) Target {
	if id, ok := req[slot]; ok {
		return To(id)
	}
	return Keep
}

// CompoundSwap is a group of slot changes that must be resolved together.
// The variants are HeadSwap, TorsoSwap, WeaponsSwap, and SingleSwap.
type CompoundSwap interface {
	// Kind names the coupling group.
	Kind() string
	resolve(m *Manager, modeFor ModeFunc) Diff
}

// HeadSwap couples the head item with the hair and jaw kits it may hide.
type HeadSwap struct {
	Head, Hair, Jaw Target
}

// TorsoSwap couples the torso with the arms kit it may hide.
type TorsoSwap struct {
	Torso, Arms Target
}

// WeaponsSwap couples the weapon with the shield a two-handed weapon excludes.
type WeaponsSwap struct {
	Weapon, Shield Target
}

// SingleSwap changes one uncoupled slot.
type SingleSwap struct {
	Slot        appearance.Slot
	EquipmentID int
}

func (HeadSwap) Kind() string    { return "head" }
func (TorsoSwap) Kind() string   { return "torso" }
func (WeaponsSwap) Kind() string { return "weapons" }
func (SingleSwap) Kind() string  { return "single" }

// Group partitions a slot to equipment id request into compound swaps, ordered
// by the lowest slot index of each group.
//
// Postcondition: every requested slot appears in exactly one returned swap.
func Group(req map[appearance.Slot]int) []CompoundSwap {
	var out []CompoundSwap
	emitted := make(map[string]bool)
	for _, slot := range appearance.AllSlots {
		if _, ok := req[slot]; !ok {
			continue
		}
		switch slot {
		case appearance.SlotHead, appearance.SlotHair, appearance.SlotJaw:
			if !emitted["head"] {
				emitted["head"] = true
				out = append(out, HeadSwap{
					Head: targetFrom(req, appearance.SlotHead),
					Hair: targetFrom(req, appearance.SlotHair),
					Jaw:  targetFrom(req, appearance.SlotJaw),
				})
			}
		case appearance.SlotTorso, appearance.SlotArms:
			if !emitted["torso"] {
				emitted["torso"] = true
				out = append(out, TorsoSwap{
					Torso: targetFrom(req, appearance.SlotTorso),
					Arms:  targetFrom(req, appearance.SlotArms),
				})
			}
		case appearance.SlotWeapon, appearance.SlotShield:
			if !emitted["weapons"] {
				emitted["weapons"] = true
				out = append(out, WeaponsSwap{
					Weapon: targetFrom(req, appearance.SlotWeapon),
					Shield: targetFrom(req, appearance.SlotShield),
				})
			}
		default:
			out = append(out, SingleSwap{Slot: slot, EquipmentID: req[slot]})
		}
	}
	return out
}
