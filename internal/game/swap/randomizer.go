package swap

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
)

// Intelligence controls how hard Shuffle looks for cohesive outfits.
type Intelligence int

const (
	IntelligenceNone Intelligence = iota
	IntelligenceLow
	IntelligenceModerate
	IntelligenceHigh
)

var intelligenceNames = map[Intelligence]string{
	IntelligenceNone:     "none",
	IntelligenceLow:      "low",
	IntelligenceModerate: "moderate",
	IntelligenceHigh:     "high",
}

// ParseIntelligence resolves an intelligence level name, ignoring case.
func ParseIntelligence(name string) (Intelligence, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range intelligenceNames {
		if n == lower {
			return i, nil
		}
	}
	return 0, fmt.Errorf("swap: ParseIntelligence: unknown level %q", name)
}

// String returns the lower-case level name.
func (i Intelligence) String() string {
	if n, ok := intelligenceNames[i]; ok {
		return n
	}
	return "unknown"
}

// Depth is the number of legal candidates gathered per slot before the best
// scoring one is chosen.
func (i Intelligence) Depth() int {
	switch i {
	case IntelligenceLow:
		return 3
	case IntelligenceModerate:
		return 5
	case IntelligenceHigh:
		return 10
	default:
		return 1
	}
}

// ColorLimit is the number of palette entries scored out of a palette of size n.
//
// Postcondition: returns at least 1.
func (i Intelligence) ColorLimit(n int) int {
	var limit int
	switch i {
	case IntelligenceLow:
		limit = n / 4
	case IntelligenceModerate:
		limit = n / 2
	case IntelligenceHigh:
		limit = n
	default:
		limit = 1
	}
	return max(1, limit)
}

// placeholder marks a slot Shuffle must leave alone.
const placeholder = -1

type candidate struct {
	itemID int
	slot   appearance.Slot
}

// Shuffle randomizes the items, kits, and colors of every unlocked slot and
// color type as one undoable action.
//
// Postcondition: locked slots and color types are untouched.
func (m *Manager) Shuffle() {
	defer m.begin()()
	if m.host.Composition() == nil {
		return
	}
	intel := m.opts.Intelligence
	ctx := m.scorer.NewContext(m.lockedItems(), m.lockedColors())

	chosen := m.shuffleItems(intel, ctx)
	newColors := m.shuffleColors(intel, ctx)

	itemReq := make(map[appearance.Slot]int)
	for slot, id := range chosen {
		if id != placeholder {
			itemReq[slot] = appearance.ItemEquipmentID(id)
		}
	}
	total := m.resolve(itemReq, Always(ModeSave))

	if m.genderKnown && !m.opts.ExcludeBaseModels {
		kitReq := make(map[appearance.Slot]int)
		for _, slot := range appearance.AllSlots {
			if _, taken := itemReq[slot]; taken || !m.isOpen(slot) {
				continue
			}
			if k, ok := dice.Pick(m.reg.KitsFor(slot, m.female), m.src); ok {
				kitReq[slot] = appearance.KitEquipmentID(k.ID)
			}
		}
		total = m.resolve(kitReq, Always(ModeSave)).MergeOver(total)
	}

	colorDiff := Blank()
	for _, t := range appearance.AllColorTypes {
		if id, ok := newColors[t]; ok {
			m.swapColorInto(colorDiff, t, id, ModeSave)
		}
	}
	total = colorDiff.MergeOver(total)
	m.appendToUndo("shuffle", total)
}

func (m *Manager) lockedItems() map[appearance.Slot]int {
	out := make(map[appearance.Slot]int)
	for slot, id := range m.saved.Items() {
		if m.saved.ItemLocked(slot) {
			out[slot] = id
		}
	}
	return out
}

func (m *Manager) lockedColors() map[appearance.ColorType]int {
	out := make(map[appearance.ColorType]int)
	for t, id := range m.saved.Colors() {
		if m.saved.ColorLocked(t) {
			out[t] = id
		}
	}
	return out
}

// shuffleItems scans the catalog in random order and picks, per slot, the best
// scoring of up to Depth legal candidates. Locked slots hold placeholders.
func (m *Manager) shuffleItems(intel Intelligence, ctx *colors.Context) map[appearance.Slot]int {
	depth := intel.Depth()
	chosen := make(map[appearance.Slot]int)
	for _, slot := range appearance.AllSlots {
		if m.saved.SlotLocked(slot) {
			chosen[slot] = placeholder
		}
	}
	skips := m.reg.Exclusions(m.opts.ExcludeNonStandardItems)
	ids := m.reg.ItemIDs()
	dice.Shuffle(ids, m.src)

	pending := make(map[appearance.Slot][]candidate)
	choose := func(slot appearance.Slot) {
		var legal []candidate
		for _, c := range pending[slot] {
			if m.fitsTentative(c, chosen) {
				legal = append(legal, c)
			}
		}
		delete(pending, slot)
		if len(legal) == 0 {
			return
		}
		best := legal[0]
		if depth > 1 {
			bestScore := ctx.ScoreItem(best.itemID, best.slot)
			for _, c := range legal[1:] {
				if s := ctx.ScoreItem(c.itemID, c.slot); s > bestScore {
					best, bestScore = c, s
				}
			}
		}
		chosen[slot] = best.itemID
		ctx.AddItem(slot, best.itemID)
	}

	for _, raw := range ids {
		if len(chosen) >= len(appearance.AllSlots) {
			break
		}
		id := m.reg.Canonicalize(raw)
		if skips[id] {
			continue
		}
		def, ok := m.reg.Item(id)
		if !ok || !def.IsEquipable() {
			continue
		}
		slot, ok := def.EquipSlot()
		if !ok {
			continue
		}
		if _, taken := chosen[slot]; taken {
			continue
		}
		c := candidate{itemID: id, slot: slot}
		if !m.fitsTentative(c, chosen) {
			continue
		}
		pending[slot] = append(pending[slot], c)
		if len(pending[slot]) >= depth {
			choose(slot)
		}
	}
	// Small catalogs may never fill a slot's candidate list.
	for _, slot := range appearance.AllSlots {
		if _, taken := chosen[slot]; !taken && len(pending[slot]) > 0 {
			choose(slot)
		}
	}
	return chosen
}

// fitsTentative reports whether c is compatible with the assignment built so
// far and with the current locks. A shield facing a chosen two-handed weapon
// is marked as taken instead.
func (m *Manager) fitsTentative(c candidate, chosen map[appearance.Slot]int) bool {
	equip := appearance.ItemEquipmentID(c.itemID)
	switch c.slot {
	case appearance.SlotWeapon:
		if _, hasShield := chosen[appearance.SlotShield]; hasShield && m.rules.WeaponForbidsShield(equip) {
			return false
		}
	case appearance.SlotShield:
		if weapon, ok := chosen[appearance.SlotWeapon]; ok && weapon != placeholder &&
			m.rules.WeaponForbidsShield(appearance.ItemEquipmentID(weapon)) {
			chosen[appearance.SlotShield] = placeholder
			return false
		}
	case appearance.SlotHead:
		if !m.rules.HeadAllowsHair(equip) && m.saved.SlotLocked(appearance.SlotHair) {
			return false
		}
		if !m.rules.HeadAllowsJaw(equip) && m.saved.SlotLocked(appearance.SlotJaw) {
			return false
		}
	case appearance.SlotTorso:
		if !m.rules.TorsoAllowsArms(equip) && m.saved.SlotLocked(appearance.SlotArms) {
			return false
		}
	}
	return true
}

// shuffleColors picks, per unlocked color type in random order, the best
// scoring of ColorLimit randomly drawn palette entries.
func (m *Manager) shuffleColors(intel Intelligence, ctx *colors.Context) map[appearance.ColorType]int {
	out := make(map[appearance.ColorType]int)
	types := append([]appearance.ColorType(nil), appearance.AllColorTypes...)
	dice.Shuffle(types, m.src)
	for _, t := range types {
		if m.saved.ColorLocked(t) {
			continue
		}
		palette := m.reg.Palette(t)
		if len(palette) == 0 {
			continue
		}
		dice.Shuffle(palette, m.src)
		best := bestColor(ctx, t, palette[:intel.ColorLimit(len(palette))])
		ctx.AddColor(t, best)
		out[t] = best.ID
	}
	return out
}

func bestColor(ctx *colors.Context, t appearance.ColorType, pool []*catalog.ColorDef) *catalog.ColorDef {
	best := pool[0]
	bestScore := ctx.ScoreColor(t, best)
	for _, c := range pool[1:] {
		if s := ctx.ScoreColor(t, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// isOpen reports whether slot may receive a random kit: it is unlocked, holds
// no saved item, and is not hidden by a real or swapped item.
func (m *Manager) isOpen(slot appearance.Slot) bool {
	if m.saved.SlotLocked(slot) {
		return false
	}
	if _, ok := m.saved.Item(slot); ok {
		return false
	}
	comp := m.host.Composition()
	if comp == nil {
		return false
	}
	shown := func(controller appearance.Slot) int {
		equip := comp.EquipmentID(controller)
		if equip == appearance.Empty {
			if item, ok := m.host.EquippedItem(controller); ok {
				equip = appearance.ItemEquipmentID(item)
			}
		}
		return equip
	}
	switch slot {
	case appearance.SlotHair:
		if head := shown(appearance.SlotHead); appearance.IsItem(head) {
			return m.rules.HeadAllowsHair(head)
		}
	case appearance.SlotJaw:
		if head := shown(appearance.SlotHead); appearance.IsItem(head) {
			return m.rules.HeadAllowsJaw(head)
		}
	case appearance.SlotArms:
		if torso := shown(appearance.SlotTorso); appearance.IsItem(torso) {
			return m.rules.TorsoAllowsArms(torso)
		}
	}
	if comp.EquipmentID(slot) > appearance.Empty {
		return true
	}
	_, equipped := m.host.EquippedItem(slot)
	return !equipped
}
