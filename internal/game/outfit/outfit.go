// Package outfit reads and writes the plain-text outfit format:
//
//	HEAD:1163 (Rune full helm)
//	HAIR_KIT:5 (Long)
//	SKIN_COLOR:2 (Pale)
//
// One KEY:VALUE entry per line, where KEY is a slot name (item), a slot name
// with the _KIT suffix (kit), or a color type name with the _COLOR suffix.
// Anything after the number is decorative and ignored when parsing.
package outfit

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

const (
	KitSuffix   = "_KIT"
	ColorSuffix = "_COLOR"
)

var linePattern = regexp.MustCompile(`^(\w+):(-?\d+).*`)

// Outfit is a parsed set of item, kit, and color ids.
type Outfit struct {
	Items  map[appearance.Slot]int
	Kits   map[appearance.Slot]int
	Colors map[appearance.ColorType]int
}

// New returns an Outfit with initialised maps.
func New() Outfit {
	return Outfit{
		Items:  make(map[appearance.Slot]int),
		Kits:   make(map[appearance.Slot]int),
		Colors: make(map[appearance.ColorType]int),
	}
}

// Empty reports whether o has no entries.
func (o Outfit) Empty() bool {
	return len(o.Items) == 0 && len(o.Kits) == 0 && len(o.Colors) == 0
}

// Parse reads outfit lines. Blank lines are ignored; every other line that
// does not match the grammar or names an unknown key is returned in
// unparseable, in input order. Later lines win over earlier ones for the same key.
//
// Postcondition: every non-blank input line is either reflected in the Outfit
// or present in unparseable.
func Parse(lines []string) (Outfit, []string) {
	o := New()
	var unparseable []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			unparseable = append(unparseable, line)
			continue
		}
		id, err := strconv.Atoi(m[2])
		if err != nil {
			unparseable = append(unparseable, line)
			continue
		}
		key := m[1]
		if slot, ok := appearance.ParseSlot(key); ok {
			o.Items[slot] = id
		} else if slot, ok := kitSlot(key); ok {
			o.Kits[slot] = id
		} else if t, ok := colorType(key); ok {
			o.Colors[t] = id
		} else {
			unparseable = append(unparseable, line)
		}
	}
	return o, unparseable
}

func kitSlot(key string) (appearance.Slot, bool) {
	name, ok := strings.CutSuffix(strings.ToUpper(key), KitSuffix)
	if !ok {
		return 0, false
	}
	return appearance.ParseSlot(name)
}

func colorType(key string) (appearance.ColorType, bool) {
	name, ok := strings.CutSuffix(strings.ToUpper(key), ColorSuffix)
	if !ok {
		return 0, false
	}
	return appearance.ParseColorType(name)
}

// Namer resolves ids to display names for the export annotations.
type Namer interface {
	ItemName(itemID int) string
	KitName(kitID int) (string, bool)
	ColorName(t appearance.ColorType, colorID int) (string, bool)
}

// Format renders o as outfit lines: items, then kits, then colors, each in
// slot or color type order.
func Format(o Outfit, n Namer) []string {
	var lines []string
	for _, slot := range appearance.AllSlots {
		if id, ok := o.Items[slot]; ok {
			lines = append(lines, fmt.Sprintf("%s:%d (%s)", slot, id, n.ItemName(id)))
		}
	}
	for _, slot := range appearance.AllSlots {
		if id, ok := o.Kits[slot]; ok {
			lines = append(lines, fmt.Sprintf("%s%s:%d (%s)", slot, KitSuffix, id, nameOr(n.KitName(id))))
		}
	}
	for _, t := range appearance.AllColorTypes {
		if id, ok := o.Colors[t]; ok {
			lines = append(lines, fmt.Sprintf("%s%s:%d (%s)", t, ColorSuffix, id, nameOr(n.ColorName(t, id))))
		}
	}
	return lines
}

func nameOr(name string, ok bool) string {
	if !ok {
		return "unknown"
	}
	return name
}

// ReadFile returns the lines of the outfit file at path.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("outfit: ReadFile: %w", err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// WriteFile writes lines to path, creating parent directories as needed. The
// content is written to a temporary file and renamed into place, so a failed
// write never leaves a truncated outfit behind.
func WriteFile(path string, lines []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("outfit: WriteFile: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".outfit-*")
	if err != nil {
		return fmt.Errorf("outfit: WriteFile: %w", err)
	}
	var body strings.Builder
	for _, line := range lines {
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if _, err := tmp.WriteString(body.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("outfit: WriteFile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("outfit: WriteFile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("outfit: WriteFile: %w", err)
	}
	return nil
}
