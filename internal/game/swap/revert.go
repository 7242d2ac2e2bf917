package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Revert unlocks slot and returns it to the real equipped item or natural kit
// as one undoable action.
func (m *Manager) Revert(slot appearance.Slot) {
	defer m.begin()()
	m.saved.RemoveSlotLock(slot)
	m.appendToUndo("revert", m.doRevert(slot))
}

// RevertColor unlocks t and returns it to the natural color.
func (m *Manager) RevertColor(t appearance.ColorType) {
	defer m.begin()()
	m.saved.RemoveColorLock(t)
	m.appendToUndo("revert", m.doRevertColor(t))
}

// RevertSwaps returns every unlocked slot and color type to its natural value
// and clears their saved swaps as one undoable action. With force, every lock
// is removed first.
//
// Postcondition: without force, locked slots and color types are untouched.
func (m *Manager) RevertSwaps(force bool) {
	defer m.begin()()
	if force {
		m.saved.RemoveAllLocks()
	}
	req := make(map[appearance.Slot]int)
	for _, slot := range appearance.AllSlots {
		if m.saved.SlotLocked(slot) {
			continue
		}
		if item, ok := m.host.EquippedItem(slot); ok && item > 0 {
			req[slot] = appearance.ItemEquipmentID(item)
		} else {
			req[slot] = m.revertKitEquipmentID(slot)
		}
	}
	d := m.resolve(req, Always(ModeRevert))
	for _, t := range appearance.AllColorTypes {
		if m.saved.ColorLocked(t) {
			continue
		}
		if natural, ok := m.realColors[t]; ok {
			m.swapColorInto(d, t, natural, ModeRevert)
		}
	}
	m.appendToUndo("revert all", d)
	m.saved.ClearUnlocked()
}

// doRevert returns slot to the real equipped item, else the natural kit, else empty.
func (m *Manager) doRevert(slot appearance.Slot) Diff {
	return m.resolve(map[appearance.Slot]int{slot: m.naturalEquipmentID(slot)}, Always(ModeRevert))
}

// naturalEquipmentID is what slot shows without swaps.
func (m *Manager) naturalEquipmentID(slot appearance.Slot) int {
	if item, ok := m.host.EquippedItem(slot); ok {
		if item >= 0 {
			return appearance.ItemEquipmentID(item)
		}
		return appearance.Empty
	}
	return m.revertKitEquipmentID(slot)
}

// committedEquipmentID is the saved item or kit of slot, else its natural value.
func (m *Manager) committedEquipmentID(slot appearance.Slot) int {
	if id, ok := m.saved.Item(slot); ok {
		return appearance.ItemEquipmentID(id)
	}
	if id, ok := m.saved.Kit(slot); ok {
		return appearance.KitEquipmentID(id)
	}
	return m.naturalEquipmentID(slot)
}

func (m *Manager) committedColorID(t appearance.ColorType) (int, bool) {
	if id, ok := m.saved.Color(t); ok {
		return id, true
	}
	id, ok := m.realColors[t]
	return id, ok
}

func (m *Manager) doRevertColor(t appearance.ColorType) Diff {
	d := Blank()
	if natural, ok := m.realColors[t]; ok {
		m.swapColorInto(d, t, natural, ModeRevert)
	} else {
		m.saved.RemoveColor(t)
	}
	return d
}

// naturalKit returns the real kit of slot, else the gender fallback, else NoKit.
func (m *Manager) naturalKit(slot appearance.Slot) int {
	if kit, ok := m.realKits[slot]; ok {
		return kit
	}
	if m.genderKnown {
		if kit, ok := m.reg.FallbackKit(slot, m.female); ok {
			return kit
		}
	}
	return appearance.NoKit
}

// revertKitEquipmentID is the equipment id of the natural kit of slot, or
// Empty when none is known.
func (m *Manager) revertKitEquipmentID(slot appearance.Slot) int {
	kit := m.naturalKit(slot)
	if kit < 0 {
		return appearance.Empty
	}
	return appearance.KitEquipmentID(kit)
}
