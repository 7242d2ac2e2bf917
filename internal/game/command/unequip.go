package command

import (
	"fmt"

	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// HandleUnequip processes the "unequip" command.
// args is expected to be "<slot>".
//
// Precondition: host and m must not be nil.
// Postcondition: Returns a message describing the result.
func HandleUnequip(host *session.Manager, m *swap.Manager, args []string) string {
	t, msg := parseTarget(kindItem, args, false)
	if msg != "" {
		return "Usage: unequip <slot>"
	}
	if !host.Unequip(t.slot) {
		return fmt.Sprintf("Nothing is worn in %s.", t.slot)
	}
	m.CheckForBaseIDs()
	m.OnEquipmentChanged()
	return fmt.Sprintf("Unequipped %s.", t.slot)
}
