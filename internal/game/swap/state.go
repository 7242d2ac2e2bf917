package swap

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// SavedSwaps is the committed preview state: per slot at most one of an item
// or a kit, per color type an optional color, and three lock sets.
//
// SavedSwaps queues an Event for every entry it adds, replaces, or removes;
// Drain hands them to the caller.
type SavedSwaps struct {
	items      map[appearance.Slot]int
	kits       map[appearance.Slot]int
	colors     map[appearance.ColorType]int
	itemLocks  map[appearance.Slot]bool
	kitLocks   map[appearance.Slot]bool
	colorLocks map[appearance.ColorType]bool
	events     []Event
}

// NewSavedSwaps returns empty state with no locks.
func NewSavedSwaps() *SavedSwaps {
	return &SavedSwaps{
		items:      make(map[appearance.Slot]int),
		kits:       make(map[appearance.Slot]int),
		colors:     make(map[appearance.ColorType]int),
		itemLocks:  make(map[appearance.Slot]bool),
		kitLocks:   make(map[appearance.Slot]bool),
		colorLocks: make(map[appearance.ColorType]bool),
	}
}

// Item returns the saved item in slot.
func (s *SavedSwaps) Item(slot appearance.Slot) (int, bool) {
	id, ok := s.items[slot]
	return id, ok
}

// Kit returns the saved kit in slot.
func (s *SavedSwaps) Kit(slot appearance.Slot) (int, bool) {
	id, ok := s.kits[slot]
	return id, ok
}

// Color returns the saved color of t.
func (s *SavedSwaps) Color(t appearance.ColorType) (int, bool) {
	id, ok := s.colors[t]
	return id, ok
}

// ContainsSlot reports whether slot holds a saved item or kit.
func (s *SavedSwaps) ContainsSlot(slot appearance.Slot) bool {
	_, item := s.items[slot]
	_, kit := s.kits[slot]
	return item || kit
}

// PutItem saves itemID in slot, replacing any saved kit there.
//
// Postcondition: Item(slot) == (itemID, true) and Kit(slot) reports false.
func (s *SavedSwaps) PutItem(slot appearance.Slot, itemID int) {
	s.removeKit(slot)
	if prev, ok := s.items[slot]; ok && prev == itemID {
		return
	}
	s.items[slot] = itemID
	s.events = append(s.events, Event{Kind: ItemChanged, Slot: slot, ID: itemID})
}

// PutKit saves kitID in slot, replacing any saved item there.
//
// Postcondition: Kit(slot) == (kitID, true) and Item(slot) reports false.
func (s *SavedSwaps) PutKit(slot appearance.Slot, kitID int) {
	s.removeItem(slot)
	if prev, ok := s.kits[slot]; ok && prev == kitID {
		return
	}
	s.kits[slot] = kitID
	s.events = append(s.events, Event{Kind: KitChanged, Slot: slot, ID: kitID})
}

// RemoveSlot clears any saved item or kit in slot.
func (s *SavedSwaps) RemoveSlot(slot appearance.Slot) {
	s.removeItem(slot)
	s.removeKit(slot)
}

func (s *SavedSwaps) removeItem(slot appearance.Slot) {
	if prev, ok := s.items[slot]; ok {
		delete(s.items, slot)
		s.events = append(s.events, Event{Kind: ItemChanged, Slot: slot, ID: prev, Removed: true})
	}
}

func (s *SavedSwaps) removeKit(slot appearance.Slot) {
	if prev, ok := s.kits[slot]; ok {
		delete(s.kits, slot)
		s.events = append(s.events, Event{Kind: KitChanged, Slot: slot, ID: prev, Removed: true})
	}
}

// PutColor saves colorID for t.
func (s *SavedSwaps) PutColor(t appearance.ColorType, colorID int) {
	if prev, ok := s.colors[t]; ok && prev == colorID {
		return
	}
	s.colors[t] = colorID
	s.events = append(s.events, Event{Kind: ColorChanged, ColorType: t, ID: colorID})
}

// RemoveColor clears the saved color of t.
func (s *SavedSwaps) RemoveColor(t appearance.ColorType) {
	if prev, ok := s.colors[t]; ok {
		delete(s.colors, t)
		s.events = append(s.events, Event{Kind: ColorChanged, ColorType: t, ID: prev, Removed: true})
	}
}

// Items returns a copy of the saved items.
func (s *SavedSwaps) Items() map[appearance.Slot]int {
	return copyMap(s.items)
}

// Kits returns a copy of the saved kits.
func (s *SavedSwaps) Kits() map[appearance.Slot]int {
	return copyMap(s.kits)
}

// Colors returns a copy of the saved colors.
func (s *SavedSwaps) Colors() map[appearance.ColorType]int {
	return copyMap(s.colors)
}

// ItemLocked reports whether slot is item-locked.
func (s *SavedSwaps) ItemLocked(slot appearance.Slot) bool { return s.itemLocks[slot] }

// KitLocked reports whether slot is kit-locked.
func (s *SavedSwaps) KitLocked(slot appearance.Slot) bool { return s.kitLocks[slot] }

// SlotLocked reports whether slot is item-locked or kit-locked.
func (s *SavedSwaps) SlotLocked(slot appearance.Slot) bool {
	return s.itemLocks[slot] || s.kitLocks[slot]
}

// ColorLocked reports whether t is locked.
func (s *SavedSwaps) ColorLocked(t appearance.ColorType) bool { return s.colorLocks[t] }

// ToggleItemLock flips the item lock of slot and returns the new state.
func (s *SavedSwaps) ToggleItemLock(slot appearance.Slot) bool {
	return toggle(s.itemLocks, slot)
}

// ToggleKitLock flips the kit lock of slot and returns the new state.
func (s *SavedSwaps) ToggleKitLock(slot appearance.Slot) bool {
	return toggle(s.kitLocks, slot)
}

// ToggleColorLock flips the lock of t and returns the new state.
func (s *SavedSwaps) ToggleColorLock(t appearance.ColorType) bool {
	return toggle(s.colorLocks, t)
}

// RemoveSlotLock clears both locks of slot.
func (s *SavedSwaps) RemoveSlotLock(slot appearance.Slot) {
	delete(s.itemLocks, slot)
	delete(s.kitLocks, slot)
}

// RemoveColorLock clears the lock of t.
func (s *SavedSwaps) RemoveColorLock(t appearance.ColorType) {
	delete(s.colorLocks, t)
}

// RemoveAllLocks clears every lock.
func (s *SavedSwaps) RemoveAllLocks() {
	clear(s.itemLocks)
	clear(s.kitLocks)
	clear(s.colorLocks)
}

// ClearUnlocked removes every saved entry whose slot or color type is not locked.
func (s *SavedSwaps) ClearUnlocked() {
	for _, slot := range appearance.AllSlots {
		if !s.SlotLocked(slot) {
			s.RemoveSlot(slot)
		}
	}
	for _, t := range appearance.AllColorTypes {
		if !s.ColorLocked(t) {
			s.RemoveColor(t)
		}
	}
}

// Clear removes every saved entry and every lock.
func (s *SavedSwaps) Clear() {
	s.RemoveAllLocks()
	s.ClearUnlocked()
}

// Drain returns the queued events in the order they occurred and empties the queue.
func (s *SavedSwaps) Drain() []Event {
	out := s.events
	s.events = nil
	return out
}

func toggle[K comparable](m map[K]bool, k K) bool {
	if m[k] {
		delete(m, k)
		return false
	}
	m[k] = true
	return true
}

func copyMap[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
