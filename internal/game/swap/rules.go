package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
)

// Rules answers the visual compatibility questions between coupled slots.
// Every predicate takes the candidate equipment id; kits and empty slots never
// hide anything.
type Rules struct {
	reg *catalog.Registry
}

// NewRules creates Rules backed by reg.
//
// Precondition: reg must be non-nil.
func NewRules(reg *catalog.Registry) Rules {
	return Rules{reg: reg}
}

// HeadAllowsHair reports whether a head slot showing equipmentID leaves hair visible.
func (r Rules) HeadAllowsHair(equipmentID int) bool {
	return !appearance.IsItem(equipmentID) || !r.reg.HidesHair(equipmentID-appearance.ItemOffset)
}

// HeadAllowsJaw reports whether a head slot showing equipmentID leaves the jaw visible.
func (r Rules) HeadAllowsJaw(equipmentID int) bool {
	return !appearance.IsItem(equipmentID) || !r.reg.HidesJaw(equipmentID-appearance.ItemOffset)
}

// TorsoAllowsArms reports whether a torso slot showing equipmentID leaves arms visible.
func (r Rules) TorsoAllowsArms(equipmentID int) bool {
	return !appearance.IsItem(equipmentID) || !r.reg.HidesArms(equipmentID-appearance.ItemOffset)
}

// WeaponForbidsShield reports whether a weapon slot showing equipmentID holds a
// two-handed weapon.
func (r Rules) WeaponForbidsShield(equipmentID int) bool {
	return appearance.IsItem(equipmentID) && r.reg.TwoHanded(equipmentID-appearance.ItemOffset)
}

// allowedUnder reports whether a requested dependent-slot value is consistent
// with a controlling slot that does (or does not) allow showing it: a visible
// dependent needs a non-empty value and a hidden one needs an empty value.
func allowedUnder(allows bool, equipmentID int) bool {
	if allows {
		return equipmentID > 0
	}
	return equipmentID <= 0
}
