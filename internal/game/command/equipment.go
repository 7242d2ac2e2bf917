package command

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// HandleShow displays what the active character shows in every slot and
// color type, marking saved swaps and locks, followed by the history depths.
// swatch, when non-nil, renders a sample of each known color.
//
// Precondition: m and reg must not be nil.
// Postcondition: Returns a multi-section listing, or a notice when no
// character is active.
func HandleShow(m *swap.Manager, host swap.Host, reg *catalog.Registry, swatch func(colorful.Color) string) string {
	comp := host.Composition()
	if comp == nil {
		return "No active character."
	}
	var sb strings.Builder
	sb.WriteString("=== Slots ===\n")
	for _, slot := range appearance.AllSlots {
		label := slot.String() + ":"
		sb.WriteString(fmt.Sprintf("  %-8s %s%s\n", label, formatEquipment(reg, comp.EquipmentID(slot)), slotMarks(m, slot)))
	}
	sb.WriteString("\n=== Colors ===\n")
	for _, t := range appearance.AllColorTypes {
		label := t.String() + ":"
		sb.WriteString(fmt.Sprintf("  %-8s %s%s\n", label, formatColor(reg, t, comp.ColorID(t), swatch), colorMarks(m, t)))
	}
	sb.WriteString(fmt.Sprintf("\nIdle animation: %d\n", comp.IdleAnimation()))
	sb.WriteString(fmt.Sprintf("History: %d undo, %d redo", m.UndoDepth(), m.RedoDepth()))
	if m.Hovering() {
		sb.WriteString(" [previewing]")
	}
	return sb.String()
}

// formatEquipment returns a human-readable description of an equipment id.
//
// Postcondition: Returns "empty" for Empty, otherwise the catalog name and id.
func formatEquipment(reg *catalog.Registry, equipmentID int) string {
	switch kind, id := appearance.FromEquipmentID(equipmentID); kind {
	case appearance.KindItem:
		return fmt.Sprintf("%s (item %d)", reg.ItemName(id), id)
	case appearance.KindKit:
		name := "unknown"
		if k, ok := reg.Kit(id); ok {
			name = k.Name
		}
		return fmt.Sprintf("%s (kit %d)", name, id)
	default:
		return "empty"
	}
}

func formatColor(reg *catalog.Registry, t appearance.ColorType, id int, swatch func(colorful.Color) string) string {
	if c, ok := reg.Color(t, id); ok {
		if swatch != nil {
			return fmt.Sprintf("%s %s (%d)", swatch(c.Color()), c.Name, id)
		}
		return fmt.Sprintf("%s (%d)", c.Name, id)
	}
	return fmt.Sprintf("unknown (%d)", id)
}

func slotMarks(m *swap.Manager, slot appearance.Slot) string {
	var marks string
	if _, ok := m.SwappedItemIn(slot); ok {
		marks += " [saved]"
	} else if _, ok := m.SwappedKitIn(slot); ok {
		marks += " [saved]"
	}
	if m.ItemLocked(slot) {
		marks += " [item locked]"
	}
	if m.KitLocked(slot) {
		marks += " [kit locked]"
	}
	return marks
}

func colorMarks(m *swap.Manager, t appearance.ColorType) string {
	var marks string
	if _, ok := m.SwappedColorIn(t); ok {
		marks += " [saved]"
	}
	if m.ColorLocked(t) {
		marks += " [locked]"
	}
	return marks
}
