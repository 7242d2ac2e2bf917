package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// HandleEquip processes the "equip" command: the active character really
// wears the item, then saved swaps are re-applied over the rebuilt look.
// args is expected to be "<slot> <item_id>".
//
// Precondition: host and m must not be nil.
// Postcondition: On failure the character's equipment is unchanged.
func HandleEquip(host *session.Manager, m *swap.Manager, args []string) string {
	t, msg := parseTarget(kindItem, args, true)
	if msg != "" {
		return "Usage: equip <slot> <item_id>"
	}
	if err := host.Equip(t.slot, t.id); err != nil {
		return err.Error()
	}
	m.CheckForBaseIDs()
	m.OnEquipmentChanged()
	return fmt.Sprintf("Equipped item %d in %s.", t.id, t.slot)
}

// HandleLogin makes username the active character. Swaps, locks, and history
// belong to the previous character and are discarded.
func HandleLogin(host *session.Manager, m *swap.Manager, username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Usage: login <username>"
	}
	if active, ok := host.ActiveUsername(); ok && active == username {
		return fmt.Sprintf("Already playing %s.", username)
	}
	if err := host.Login(username); err != nil {
		return err.Error()
	}
	m.OnUsernameChanged(username)
	m.OnPlayerChanged()
	return fmt.Sprintf("Now playing %s.", username)
}
