// Package appearance defines the body slots, color types, and the equipment id
// space that together describe what a character visibly wears.
package appearance

import "strings"

// Slot is a fixed body location that displays exactly one visual element.
// The numeric value is the index into the live composition's equipment array.
type Slot int

const (
	SlotHead   Slot = 0
	SlotCape   Slot = 1
	SlotAmulet Slot = 2
	SlotWeapon Slot = 3
	SlotTorso  Slot = 4
	SlotShield Slot = 5
	SlotArms   Slot = 6
	SlotLegs   Slot = 7
	SlotHair   Slot = 8
	SlotHands  Slot = 9
	SlotBoots  Slot = 10
	SlotJaw    Slot = 11
)

// AllSlots lists every slot in index order.
var AllSlots = []Slot{
	SlotHead, SlotCape, SlotAmulet, SlotWeapon, SlotTorso, SlotShield,
	SlotArms, SlotLegs, SlotHair, SlotHands, SlotBoots, SlotJaw,
}

var slotNames = map[Slot]string{
	SlotHead:   "HEAD",
	SlotCape:   "CAPE",
	SlotAmulet: "AMULET",
	SlotWeapon: "WEAPON",
	SlotTorso:  "TORSO",
	SlotShield: "SHIELD",
	SlotArms:   "ARMS",
	SlotLegs:   "LEGS",
	SlotHair:   "HAIR",
	SlotHands:  "HANDS",
	SlotBoots:  "BOOTS",
	SlotJaw:    "JAW",
}

// Index returns the composition array index of s.
func (s Slot) Index() int {
	return int(s)
}

// Valid reports whether s is one of AllSlots.
func (s Slot) Valid() bool {
	_, ok := slotNames[s]
	return ok
}

// String returns the upper-case slot name used by the outfit text format.
func (s Slot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSlot resolves a slot name, ignoring case.
//
// Postcondition: ok is true iff name names a slot.
func ParseSlot(name string) (Slot, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range slotNames {
		if n == upper {
			return s, true
		}
	}
	return 0, false
}

// SlotForIndex returns the slot stored at composition index i.
//
// Postcondition: ok is false when i is outside the equipment array.
func SlotForIndex(i int) (Slot, bool) {
	s := Slot(i)
	return s, s.Valid()
}
