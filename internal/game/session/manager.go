package session

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// Manager tracks known players and the one currently logged in. It is the
// swap engine's Host.
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	reg     *catalog.Registry
	players map[string]*Player // username → player
	active  *Player
	comp    *Composition
}

// NewManager creates an empty session Manager.
//
// Precondition: reg must be non-nil.
func NewManager(reg *catalog.Registry) *Manager {
	return &Manager{
		reg:     reg,
		players: make(map[string]*Player),
	}
}

// AddPlayer registers p.
//
// Precondition: p must be non-nil with a non-empty Username.
// Postcondition: Returns an error if the username is already registered.
func (m *Manager) AddPlayer(p *Player) error {
	if p.Username == "" {
		return fmt.Errorf("session: AddPlayer: username must not be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.players[p.Username]; exists {
		return fmt.Errorf("session: AddPlayer: player %q already registered", p.Username)
	}
	m.players[p.Username] = p
	return nil
}

// RemovePlayer forgets username, logging it out first when it is active.
//
// Postcondition: Returns an error if the player is not found.
func (m *Manager) RemovePlayer(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, exists := m.players[username]
	if !exists {
		return fmt.Errorf("session: RemovePlayer: player %q not found", username)
	}
	if m.active == p {
		m.active, m.comp = nil, nil
	}
	delete(m.players, username)
	return nil
}

// GetPlayer returns the player registered as username.
func (m *Manager) GetPlayer(username string) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[username]
	return p, ok
}

// Usernames returns every registered username in sorted order.
func (m *Manager) Usernames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.players))
	for name := range m.players {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PlayerCount returns the number of registered players.
func (m *Manager) PlayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}

// Login makes username the active character and builds its composition.
//
// Postcondition: Returns an error if the player is not found.
func (m *Manager) Login(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[username]
	if !ok {
		return fmt.Errorf("session: Login: player %q not found", username)
	}
	m.active = p
	m.comp = BuildComposition(m.reg, p)
	return nil
}

// Logout deactivates the current character, if any.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active, m.comp = nil, nil
}

// ActiveUsername returns the active character's username.
func (m *Manager) ActiveUsername() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return "", false
	}
	return m.active.Username, true
}

// Composition returns the active character's live composition, or nil.
func (m *Manager) Composition() swap.Composition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.comp == nil {
		return nil
	}
	return m.comp
}

// EquippedItem returns the item the active character really wears in slot.
func (m *Manager) EquippedItem(slot appearance.Slot) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return 0, false
	}
	id, ok := m.active.Equipment[slot]
	return id, ok
}

// Look returns the appearance of any registered player as the game would
// render it, for copying outfits.
func (m *Manager) Look(username string) (swap.Look, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[username]
	if !ok {
		return nil, false
	}
	return BuildComposition(m.reg, p), true
}

// Equip puts itemID on the active character. Wielding a two-handed weapon
// removes the shield and vice versa. The composition is rebuilt, discarding
// any displayed swaps.
//
// Postcondition: Returns an error when no character is active or itemID does
// not fit slot.
func (m *Manager) Equip(slot appearance.Slot, itemID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return fmt.Errorf("session: Equip: no active character")
	}
	itemSlot, ok := m.reg.EquipSlot(itemID)
	if !ok || itemSlot != slot {
		return fmt.Errorf("session: Equip: item %d cannot be worn in %s", itemID, slot)
	}
	eq := m.active.Equipment
	switch slot {
	case appearance.SlotWeapon:
		if m.reg.TwoHanded(itemID) {
			delete(eq, appearance.SlotShield)
		}
	case appearance.SlotShield:
		if weapon, ok := eq[appearance.SlotWeapon]; ok && m.reg.TwoHanded(weapon) {
			delete(eq, appearance.SlotWeapon)
		}
	}
	eq[slot] = itemID
	m.comp = BuildComposition(m.reg, m.active)
	return nil
}

// Unequip removes the item worn in slot and rebuilds the composition.
//
// Postcondition: Returns false when nothing was worn there.
func (m *Manager) Unequip(slot appearance.Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return false
	}
	if _, ok := m.active.Equipment[slot]; !ok {
		return false
	}
	delete(m.active.Equipment, slot)
	m.comp = BuildComposition(m.reg, m.active)
	return true
}

// Reset rebuilds the active composition from real equipment, as the game does
// whenever the character changes gear.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.comp = BuildComposition(m.reg, m.active)
	}
}
