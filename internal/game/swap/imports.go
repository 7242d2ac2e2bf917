package swap

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/outfit"
)

// ImportSwaps saves every entry of o as one undoable action. Entries for
// locked slots and color types are skipped. An item and a kit for the same
// slot resolve to the item.
func (m *Manager) ImportSwaps(o outfit.Outfit) {
	defer m.begin()()
	m.importSwaps(o)
}

func (m *Manager) importSwaps(o outfit.Outfit) {
	req := make(map[appearance.Slot]int)
	for slot, kit := range o.Kits {
		if !m.saved.SlotLocked(slot) {
			req[slot] = appearance.KitEquipmentID(kit)
		}
	}
	for slot, item := range o.Items {
		if item >= 0 && !m.saved.SlotLocked(slot) {
			req[slot] = appearance.ItemEquipmentID(item)
		}
	}
	d := m.resolve(req, Always(ModeSave))
	for _, t := range appearance.AllColorTypes {
		if id, ok := o.Colors[t]; ok && !m.saved.ColorLocked(t) {
			m.swapColorInto(d, t, id, ModeSave)
		}
	}
	m.appendToUndo("import", d)
}

// LoadImports parses outfit lines and imports whatever parsed. It returns the
// lines that could not be parsed.
func (m *Manager) LoadImports(lines []string) []string {
	defer m.begin()()
	o, unparseable := outfit.Parse(lines)
	for _, line := range unparseable {
		m.logger.Warn("swap: could not import line", zap.String("line", line))
	}
	if !o.Empty() {
		m.importSwaps(o)
	}
	return unparseable
}

// CopyOutfit imports the items shown by other and, when other has the same
// gender as the active character, its kits as well.
func (m *Manager) CopyOutfit(other Look) {
	defer m.begin()()
	o := outfit.New()
	sameGender := m.genderKnown && m.female == other.Female()
	for _, slot := range appearance.AllSlots {
		switch kind, id := appearance.FromEquipmentID(other.EquipmentID(slot)); kind {
		case appearance.KindItem:
			o.Items[slot] = id
		case appearance.KindKit:
			if sameGender {
				o.Kits[slot] = id
			}
		}
	}
	if !o.Empty() {
		m.importSwaps(o)
	}
}

// Outfit returns the saved swaps as an outfit.
func (m *Manager) Outfit() outfit.Outfit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentOutfit()
}

func (m *Manager) currentOutfit() outfit.Outfit {
	return outfit.Outfit{
		Items:  m.saved.Items(),
		Kits:   m.saved.Kits(),
		Colors: m.saved.Colors(),
	}
}

// StringifySwaps renders the saved swaps in the outfit text format.
func (m *Manager) StringifySwaps() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return outfit.Format(m.currentOutfit(), CatalogNamer{Registry: m.reg})
}

// ExportSwaps writes the saved swaps to path, or to a fresh file under the
// configured outfits directory when path is empty, and returns the path
// written. Export never changes swap state or history.
func (m *Manager) ExportSwaps(path string) (string, error) {
	lines := m.StringifySwaps()
	if path == "" {
		path = filepath.Join(m.opts.OutfitsDir, "outfit-"+uuid.NewString()+".txt")
	}
	if err := outfit.WriteFile(path, lines); err != nil {
		m.logger.Warn("swap: export failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("swap: Manager.ExportSwaps: %w", err)
	}
	m.logger.Info("swap: outfit exported", zap.String("path", path), zap.Int("lines", len(lines)))
	return path, nil
}

// CatalogNamer resolves outfit display names from a catalog Registry.
type CatalogNamer struct {
	Registry *catalog.Registry
}

// ItemName returns the catalog name of itemID.
func (n CatalogNamer) ItemName(itemID int) string {
	return n.Registry.ItemName(itemID)
}

// KitName returns the catalog name of kitID.
func (n CatalogNamer) KitName(kitID int) (string, bool) {
	k, ok := n.Registry.Kit(kitID)
	if !ok {
		return "", false
	}
	return k.Name, true
}

// ColorName returns the palette name of colorID.
func (n CatalogNamer) ColorName(t appearance.ColorType, colorID int) (string, bool) {
	c, ok := n.Registry.Color(t, colorID)
	if !ok {
		return "", false
	}
	return c.Name, true
}
