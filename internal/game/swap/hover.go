package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// SwapItem swaps itemID into slot, together with whatever the slot's coupling
// group requires, saving it when save is true. An active hover preview is
// folded into the returned Diff. The Diff is not recorded in history.
func (m *Manager) SwapItem(slot appearance.Slot, itemID int, save bool) Diff {
	defer m.begin()()
	return m.swapItem(slot, itemID, save)
}

// SwapKit swaps kitID into slot; see SwapItem.
func (m *Manager) SwapKit(slot appearance.Slot, kitID int, save bool) Diff {
	defer m.begin()()
	return m.swapKit(slot, kitID, save)
}

// SwapColor swaps colorID into t; see SwapItem.
func (m *Manager) SwapColor(t appearance.ColorType, colorID int, save bool) Diff {
	defer m.begin()()
	return m.swapColorDiff(t, colorID, save)
}

func saveMode(save bool) Mode {
	if save {
		return ModeSave
	}
	return ModePreview
}

func (m *Manager) withHover(d Diff) Diff {
	if m.hover != nil {
		return d.MergeOver(*m.hover)
	}
	return d
}

func (m *Manager) swapItem(slot appearance.Slot, itemID int, save bool) Diff {
	d := m.resolve(map[appearance.Slot]int{slot: appearance.ItemEquipmentID(itemID)}, Always(saveMode(save)))
	return m.withHover(d)
}

func (m *Manager) swapKit(slot appearance.Slot, kitID int, save bool) Diff {
	d := m.resolve(map[appearance.Slot]int{slot: appearance.KitEquipmentID(kitID)}, Always(saveMode(save)))
	return m.withHover(d)
}

func (m *Manager) swapColorDiff(t appearance.ColorType, colorID int, save bool) Diff {
	d := Blank()
	m.swapColorInto(d, t, colorID, saveMode(save))
	return m.withHover(d)
}

// HoverOverItem previews itemID in slot without touching history. Locked
// slots are left alone.
func (m *Manager) HoverOverItem(slot appearance.Slot, itemID int) {
	defer m.begin()()
	if m.saved.SlotLocked(slot) {
		return
	}
	m.hoverOver(m.swapItem(slot, itemID, false))
}

// HoverOverKit previews kitID in slot; see HoverOverItem.
func (m *Manager) HoverOverKit(slot appearance.Slot, kitID int) {
	defer m.begin()()
	if m.saved.SlotLocked(slot) {
		return
	}
	m.hoverOver(m.swapKit(slot, kitID, false))
}

// HoverOverColor previews colorID for t; see HoverOverItem.
func (m *Manager) HoverOverColor(t appearance.ColorType, colorID int) {
	defer m.begin()()
	if m.saved.ColorLocked(t) {
		return
	}
	m.hoverOver(m.swapColorDiff(t, colorID, false))
}

func (m *Manager) hoverOver(d Diff) {
	if m.hover == nil {
		m.hover = &d
		return
	}
	if !d.IsBlank() {
		merged := d.MergeOver(*m.hover)
		m.hover = &merged
	}
}

// HoverSelectItem commits itemID in slot as one undoable action that also
// absorbs the active hover preview. Selecting the item already saved in slot
// reverts the slot instead.
func (m *Manager) HoverSelectItem(slot appearance.Slot, itemID int) {
	defer m.begin()()
	if m.saved.SlotLocked(slot) {
		return
	}
	if saved, ok := m.saved.Item(slot); ok && saved == itemID {
		m.hoverSelect(m.doRevert(slot))
		return
	}
	m.hoverSelect(m.swapItem(slot, itemID, true))
}

// HoverSelectKit commits kitID in slot; see HoverSelectItem.
func (m *Manager) HoverSelectKit(slot appearance.Slot, kitID int) {
	defer m.begin()()
	if m.saved.SlotLocked(slot) {
		return
	}
	if saved, ok := m.saved.Kit(slot); ok && saved == kitID {
		m.hoverSelect(m.doRevert(slot))
		return
	}
	m.hoverSelect(m.swapKit(slot, kitID, true))
}

// HoverSelectColor commits colorID for t; see HoverSelectItem.
func (m *Manager) HoverSelectColor(t appearance.ColorType, colorID int) {
	defer m.begin()()
	if m.saved.ColorLocked(t) {
		return
	}
	if saved, ok := m.saved.Color(t); ok && saved == colorID {
		m.hoverSelect(m.doRevertColor(t))
		return
	}
	m.hoverSelect(m.swapColorDiff(t, colorID, true))
}

func (m *Manager) hoverSelect(d Diff) {
	if d.IsBlank() {
		return
	}
	m.appendToUndo("select", m.withHover(d))
	m.hover = nil
}

// HoverAway discards the hover preview and re-applies saved swaps.
func (m *Manager) HoverAway() {
	defer m.begin()()
	if m.hover != nil {
		m.restore(*m.hover, false)
		m.hover = nil
	}
	m.refreshAllSwaps()
}
