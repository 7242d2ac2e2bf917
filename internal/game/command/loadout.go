package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/fashionscape/internal/game/outfit"
	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// HandleImport loads the outfit file at path into the saved swaps.
//
// Precondition: m must not be nil.
// Postcondition: Returns a summary naming any lines that could not be parsed.
func HandleImport(m *swap.Manager, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "Usage: import <file>"
	}
	lines, err := outfit.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Could not read %s: %v", path, err)
	}
	before := m.UndoDepth()
	bad := m.LoadImports(lines)

	var sb strings.Builder
	if m.UndoDepth() == before {
		sb.WriteString("Nothing imported.")
	} else {
		sb.WriteString(fmt.Sprintf("Imported %s.", path))
	}
	for _, line := range bad {
		sb.WriteString(fmt.Sprintf("\n  skipped: %s", line))
	}
	return sb.String()
}

// HandleExport writes the saved swaps to path, or to a generated file in the
// outfits directory when path is empty.
func HandleExport(m *swap.Manager, path string) string {
	written, err := m.ExportSwaps(strings.TrimSpace(path))
	if err != nil {
		return fmt.Sprintf("Export failed: %v", err)
	}
	return fmt.Sprintf("Exported to %s.", written)
}

// HandleCopy imports the outfit another registered player is wearing.
func HandleCopy(m *swap.Manager, host *session.Manager, username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Usage: copy <username>"
	}
	look, ok := host.Look(username)
	if !ok {
		return fmt.Sprintf("No player named %q.", username)
	}
	before := m.UndoDepth()
	m.CopyOutfit(look)
	if m.UndoDepth() == before {
		return "Nothing to copy."
	}
	return fmt.Sprintf("Copied %s's outfit.", username)
}
