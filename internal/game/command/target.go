package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Target kinds accepted by hover, select, and lock.
const (
	kindItem  = "item"
	kindKit   = "kit"
	kindColor = "color"
)

// target is a parsed "<slot|type> [id]" argument list.
type target struct {
	kind  string
	slot  appearance.Slot
	color appearance.ColorType
	id    int
}

// parseTarget parses args as "<slot|type> <id>" for kind, or "<slot|type>"
// when withID is false.
//
// Postcondition: msg is empty on success and otherwise explains the problem
// to the user.
func parseTarget(kind string, args []string, withID bool) (t target, msg string) {
	want := 1
	if withID {
		want = 2
	}
	if len(args) != want {
		if withID {
			return target{}, fmt.Sprintf("Usage: %s <%s> <id>", kind, nounFor(kind))
		}
		return target{}, fmt.Sprintf("Usage: %s <%s>", kind, nounFor(kind))
	}
	t = target{kind: kind}
	switch kind {
	case kindItem, kindKit:
		slot, ok := appearance.ParseSlot(args[0])
		if !ok {
			return target{}, fmt.Sprintf("Unknown slot %q.", args[0])
		}
		t.slot = slot
	case kindColor:
		ct, ok := appearance.ParseColorType(args[0])
		if !ok {
			return target{}, fmt.Sprintf("Unknown color type %q.", args[0])
		}
		t.color = ct
	default:
		return target{}, fmt.Sprintf("Unknown kind %q; use item, kit, or color.", kind)
	}
	if withID {
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 0 {
			return target{}, fmt.Sprintf("Invalid id %q.", args[1])
		}
		t.id = id
	}
	return t, ""
}

// parseKindTarget parses "item|kit|color <slot|type> [id]".
func parseKindTarget(args []string, withID bool) (target, string) {
	if len(args) == 0 {
		return target{}, "Specify item, kit, or color."
	}
	return parseTarget(strings.ToLower(args[0]), args[1:], withID)
}

func nounFor(kind string) string {
	if kind == kindColor {
		return "type"
	}
	return "slot"
}
