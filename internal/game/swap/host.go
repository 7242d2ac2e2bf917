// Package swap resolves requested appearance changes into consistent slot
// assignments, records every mutation as a reversible Diff, and keeps the
// undo/redo history, hover previews, and saved outfit state of one character.
package swap

import "github.com/cory-johannsen/fashionscape/internal/game/appearance"

// Look is the visible appearance of any character.
type Look interface {
	// EquipmentID returns the equipment id displayed in slot.
	EquipmentID(slot appearance.Slot) int
	// Female reports the character's base model gender.
	Female() bool
}

// Composition is the live, host-owned visual state of the active character.
// Writes through a Composition are the only side effect swapping has on the host.
type Composition interface {
	Look
	SetEquipmentID(slot appearance.Slot, equipmentID int)
	// KitID returns the base kit shown in slot; ok is false when slot shows no kit.
	KitID(slot appearance.Slot) (kitID int, ok bool)
	ColorID(t appearance.ColorType) int
	SetColorID(t appearance.ColorType, colorID int)
	IdleAnimation() int
	SetIdleAnimation(animationID int)
}

// Host exposes the active character to the Manager.
type Host interface {
	// Composition returns nil when no character is active.
	Composition() Composition
	// EquippedItem returns the real item worn in slot, ignoring any swaps.
	EquippedItem(slot appearance.Slot) (itemID int, ok bool)
}
