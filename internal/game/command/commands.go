// Package command provides the command registry, parser, and built-in command
// definitions for the interactive outfit shell.
package command

// Categories for organizing commands.
const (
	CategorySwap      = "swap"
	CategoryHistory   = "history"
	CategoryOutfit    = "outfit"
	CategoryCharacter = "character"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to shell handlers.
const (
	HandlerItem    = "item"
	HandlerKit     = "kit"
	HandlerColor   = "color"
	HandlerHover   = "hover"
	HandlerSelect  = "select"
	HandlerAway    = "away"
	HandlerLock    = "lock"
	HandlerUndo    = "undo"
	HandlerRedo    = "redo"
	HandlerRevert  = "revert"
	HandlerShuffle = "shuffle"
	HandlerImport  = "import"
	HandlerExport  = "export"
	HandlerCopy    = "copy"
	HandlerEquip   = "equip"
	HandlerUnequip = "unequip"
	HandlerLogin   = "login"
	HandlerShow    = "show"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a shell command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text, including usage.
	Help string
	// Category groups the command.
	Category string
	// Handler selects the shell handler.
	Handler string
}

// BuiltinCommands returns all built-in shell commands.
func BuiltinCommands() []Command {
	return []Command{
		// Swaps
		{Name: "item", Aliases: []string{"i"}, Help: "Swap an item in (item <slot> <id>)", Category: CategorySwap, Handler: HandlerItem},
		{Name: "kit", Aliases: []string{"k"}, Help: "Swap a base kit in (kit <slot> <id>)", Category: CategorySwap, Handler: HandlerKit},
		{Name: "color", Aliases: []string{"c"}, Help: "Swap a color in (color <type> <id>)", Category: CategorySwap, Handler: HandlerColor},
		{Name: "hover", Aliases: []string{"h"}, Help: "Preview without saving (hover item|kit|color <slot|type> <id>)", Category: CategorySwap, Handler: HandlerHover},
		{Name: "select", Aliases: []string{"sel"}, Help: "Commit a swap and any preview (select item|kit|color <slot|type> <id>)", Category: CategorySwap, Handler: HandlerSelect},
		{Name: "away", Aliases: nil, Help: "Discard the preview", Category: CategorySwap, Handler: HandlerAway},
		{Name: "lock", Aliases: []string{"l"}, Help: "Toggle a lock (lock item|kit|color <slot|type>)", Category: CategorySwap, Handler: HandlerLock},
		{Name: "shuffle", Aliases: []string{"random"}, Help: "Randomize every unlocked slot and color", Category: CategorySwap, Handler: HandlerShuffle},

		// History
		{Name: "undo", Aliases: []string{"u"}, Help: "Undo the last action", Category: CategoryHistory, Handler: HandlerUndo},
		{Name: "redo", Aliases: []string{"r"}, Help: "Redo the last undone action", Category: CategoryHistory, Handler: HandlerRedo},
		{Name: "revert", Aliases: []string{"rv"}, Help: "Revert swaps (revert <slot> | color <type> | all | force)", Category: CategoryHistory, Handler: HandlerRevert},

		// Outfits
		{Name: "import", Aliases: []string{"load"}, Help: "Import an outfit file (import <file>)", Category: CategoryOutfit, Handler: HandlerImport},
		{Name: "export", Aliases: []string{"save"}, Help: "Export saved swaps (export [file])", Category: CategoryOutfit, Handler: HandlerExport},
		{Name: "copy", Aliases: nil, Help: "Copy another player's outfit (copy <username>)", Category: CategoryOutfit, Handler: HandlerCopy},

		// Character
		{Name: "equip", Aliases: []string{"eq"}, Help: "Really wear an item (equip <slot> <id>)", Category: CategoryCharacter, Handler: HandlerEquip},
		{Name: "unequip", Aliases: []string{"ueq"}, Help: "Take off a real item (unequip <slot>)", Category: CategoryCharacter, Handler: HandlerUnequip},
		{Name: "login", Aliases: []string{"as"}, Help: "Switch to another character, dropping all swaps (login <username>)", Category: CategoryCharacter, Handler: HandlerLogin},
		{Name: "show", Aliases: []string{"look"}, Help: "Show the displayed outfit", Category: CategoryCharacter, Handler: HandlerShow},

		// System
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the shell", Category: CategorySystem, Handler: HandlerQuit},
	}
}
