package swap

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
)

// Options tunes randomization and export.
type Options struct {
	Intelligence            Intelligence
	ExcludeBaseModels       bool
	ExcludeNonStandardItems bool
	// OutfitsDir receives exports written without an explicit path.
	OutfitsDir string
}

// Manager owns the saved swaps, history, and hover preview of the active
// character and is the entry point for every appearance change.
//
// All methods are safe for concurrent use; each call runs to completion
// before the next begins. Events produced by a call are published after it
// completes.
type Manager struct {
	mu sync.Mutex

	host    Host
	reg     *catalog.Registry
	rules   Rules
	scorer  *colors.Scorer
	src     dice.Source
	opts    Options
	logger  *zap.Logger
	feed    *Feed
	saved   *SavedSwaps
	history *History

	hover *Diff
	// realKits and realColors are first-write-wins caches of the character's
	// natural appearance.
	realKits    map[appearance.Slot]int
	realColors  map[appearance.ColorType]int
	female      bool
	genderKnown bool
	username    string

	pending []Event
}

// NewManager creates a Manager for the character exposed by host.
//
// Precondition: host, reg, scorer, src, and logger must be non-nil.
// Postcondition: the Manager holds no swaps and an empty history.
func NewManager(host Host, reg *catalog.Registry, scorer *colors.Scorer, src dice.Source, opts Options, logger *zap.Logger) *Manager {
	m := &Manager{
		host:       host,
		reg:        reg,
		rules:      NewRules(reg),
		scorer:     scorer,
		src:        src,
		opts:       opts,
		logger:     logger,
		feed:       NewFeed(logger),
		saved:      NewSavedSwaps(),
		realKits:   make(map[appearance.Slot]int),
		realColors: make(map[appearance.ColorType]int),
	}
	m.history = NewHistory(func(d Diff) Diff { return m.restore(d, true) }, m.historyChanged)
	return m
}

// begin locks the Manager; the returned func publishes queued events and unlocks.
func (m *Manager) begin() func() {
	m.mu.Lock()
	return func() {
		m.flush()
		m.mu.Unlock()
	}
}

func (m *Manager) flush() {
	events := append(m.saved.Drain(), m.pending...)
	m.pending = nil
	for _, e := range events {
		m.feed.Publish(e)
	}
}

func (m *Manager) historyChanged(undoDepth, redoDepth int) {
	m.pending = append(m.pending,
		Event{Kind: UndoDepthChanged, Depth: undoDepth},
		Event{Kind: RedoDepthChanged, Depth: redoDepth},
	)
}

// Subscribe returns a channel of events; see Feed.Subscribe.
func (m *Manager) Subscribe(buffer int) <-chan Event {
	return m.feed.Subscribe(buffer)
}

// StartUp captures the character's natural appearance and re-applies saved swaps.
func (m *Manager) StartUp() {
	defer m.begin()()
	m.checkForBaseIDs()
	m.refreshAllSwaps()
}

// ShutDown clears all state and closes every subscriber channel.
func (m *Manager) ShutDown() {
	m.mu.Lock()
	m.clear()
	m.flush()
	m.mu.Unlock()
	m.feed.Close()
}

// Clear drops the hover preview, saved swaps, cached natural appearance, and history.
func (m *Manager) Clear() {
	defer m.begin()()
	m.clear()
}

func (m *Manager) clear() {
	m.hover = nil
	m.saved.Clear()
	m.clearRealIDs()
	m.history.Clear()
}

func (m *Manager) clearRealIDs() {
	clear(m.realKits)
	clear(m.realColors)
	m.genderKnown = false
}

// OnPlayerChanged is called when the host (re)creates the active character's
// composition.
func (m *Manager) OnPlayerChanged() {
	defer m.begin()()
	m.checkForBaseIDs()
	m.refreshAllSwaps()
}

// OnEquipmentChanged is called after the host rebuilt the composition from
// the real equipment, which discards displayed swaps.
func (m *Manager) OnEquipmentChanged() {
	defer m.begin()()
	m.refreshAllSwaps()
}

// OnUsernameChanged clears all state when a different account logs in.
func (m *Manager) OnUsernameChanged(username string) {
	defer m.begin()()
	if username == m.username {
		return
	}
	if m.username != "" {
		m.logger.Info("swap: username changed, clearing swaps")
	}
	m.username = username
	m.clear()
}

// CheckForBaseIDs records the character's gender, natural kits, and natural
// colors. Already-known values are never overwritten.
func (m *Manager) CheckForBaseIDs() {
	defer m.begin()()
	m.checkForBaseIDs()
}

func (m *Manager) checkForBaseIDs() {
	comp := m.host.Composition()
	if comp == nil {
		return
	}
	m.female = comp.Female()
	m.genderKnown = true
	for _, slot := range appearance.AllSlots {
		if _, known := m.realKits[slot]; known {
			continue
		}
		if kit, ok := comp.KitID(slot); ok && kit >= 0 {
			m.realKits[slot] = kit
		}
	}
	for _, t := range appearance.AllColorTypes {
		if _, known := m.realColors[t]; !known {
			m.realColors[t] = comp.ColorID(t)
		}
	}
}

// RefreshAllSwaps re-applies every saved swap as a preview.
func (m *Manager) RefreshAllSwaps() {
	defer m.begin()()
	m.refreshAllSwaps()
}

func (m *Manager) refreshAllSwaps() {
	req := make(map[appearance.Slot]int)
	for slot, id := range m.saved.Items() {
		req[slot] = appearance.ItemEquipmentID(id)
	}
	for slot, id := range m.saved.Kits() {
		req[slot] = appearance.KitEquipmentID(id)
	}
	m.resolve(req, Always(ModePreview))
	// Resolution leaves locked slots alone, so their saved values go straight
	// to the composition.
	for slot, id := range req {
		if m.saved.SlotLocked(slot) {
			m.swapSlot(slot, id, ModePreview)
		}
	}
	for t, id := range m.saved.Colors() {
		m.swapColor(t, id, ModePreview)
	}
}

// Resolve applies a slot to equipment id request with mode and returns the
// Diff without recording it in history.
func (m *Manager) Resolve(req map[appearance.Slot]int, mode Mode) Diff {
	defer m.begin()()
	return m.resolve(req, Always(mode))
}

// UndoLastSwap undoes the most recent action. It does nothing without an
// active character.
func (m *Manager) UndoLastSwap() {
	defer m.begin()()
	if m.host.Composition() == nil {
		return
	}
	if id := m.history.UndoLast(); id != "" {
		m.logger.Info("swap: undo",
			zap.String("entry", id),
			zap.Int("undo_depth", m.history.UndoDepth()),
			zap.Int("redo_depth", m.history.RedoDepth()),
		)
	}
}

// RedoLastSwap redoes the most recently undone action. It does nothing
// without an active character.
func (m *Manager) RedoLastSwap() {
	defer m.begin()()
	if m.host.Composition() == nil {
		return
	}
	if id := m.history.RedoLast(); id != "" {
		m.logger.Info("swap: redo",
			zap.String("entry", id),
			zap.Int("undo_depth", m.history.UndoDepth()),
			zap.Int("redo_depth", m.history.RedoDepth()),
		)
	}
}

// CanUndo reports whether an action can be undone.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.UndoDepth() > 0
}

// CanRedo reports whether an action can be redone.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.RedoDepth() > 0
}

// UndoDepth returns the number of undoable actions.
func (m *Manager) UndoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.UndoDepth()
}

// RedoDepth returns the number of redoable actions.
func (m *Manager) RedoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.RedoDepth()
}

// appendToUndo records d and logs the action when it is not blank.
func (m *Manager) appendToUndo(action string, d Diff) {
	if id := m.history.AppendToUndo(d); id != "" {
		m.logger.Info("swap: "+action,
			zap.String("entry", id),
			zap.Int("slots", len(d.Slots)),
			zap.Int("colors", len(d.Colors)),
			zap.Int("undo_depth", m.history.UndoDepth()),
		)
	}
}

// ItemLocked reports whether slot is item-locked.
func (m *Manager) ItemLocked(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.ItemLocked(slot)
}

// KitLocked reports whether slot is kit-locked.
func (m *Manager) KitLocked(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.KitLocked(slot)
}

// SlotLocked reports whether slot has either lock.
func (m *Manager) SlotLocked(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.SlotLocked(slot)
}

// ColorLocked reports whether t is locked.
func (m *Manager) ColorLocked(t appearance.ColorType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.ColorLocked(t)
}

// ToggleItemLock flips the item lock of slot and returns the new state.
func (m *Manager) ToggleItemLock(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.ToggleItemLock(slot)
}

// ToggleKitLock flips the kit lock of slot and returns the new state.
func (m *Manager) ToggleKitLock(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.ToggleKitLock(slot)
}

// ToggleColorLock flips the lock of t and returns the new state.
func (m *Manager) ToggleColorLock(t appearance.ColorType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.ToggleColorLock(t)
}

// SwappedItemIn returns the saved item in slot.
func (m *Manager) SwappedItemIn(slot appearance.Slot) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.Item(slot)
}

// SwappedKitIn returns the saved kit in slot.
func (m *Manager) SwappedKitIn(slot appearance.Slot) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.Kit(slot)
}

// SwappedColorIn returns the saved color of t.
func (m *Manager) SwappedColorIn(t appearance.ColorType) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.Color(t)
}

// RealKitID returns the cached natural kit of slot.
func (m *Manager) RealKitID(slot appearance.Slot) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.realKits[slot]
	return id, ok
}

// Female returns the cached gender; known is false until a composition was seen.
func (m *Manager) Female() (female, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.female, m.genderKnown
}

// Hovering reports whether a hover preview is active.
func (m *Manager) Hovering() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hover != nil
}
