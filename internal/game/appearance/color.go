package appearance

import "strings"

// ColorType is a recolorable part of the base model.
// The numeric value is the index into the live composition's color array.
type ColorType int

const (
	ColorHair  ColorType = 0
	ColorTorso ColorType = 1
	ColorLegs  ColorType = 2
	ColorBoots ColorType = 3
	ColorSkin  ColorType = 4
)

// AllColorTypes lists every color type in index order.
var AllColorTypes = []ColorType{ColorHair, ColorTorso, ColorLegs, ColorBoots, ColorSkin}

var colorNames = map[ColorType]string{
	ColorHair:  "HAIR",
	ColorTorso: "TORSO",
	ColorLegs:  "LEGS",
	ColorBoots: "BOOTS",
	ColorSkin:  "SKIN",
}

// Index returns the composition color array index of c.
func (c ColorType) Index() int {
	return int(c)
}

// Valid reports whether c is one of AllColorTypes.
func (c ColorType) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// String returns the upper-case color type name.
func (c ColorType) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseColorType resolves a color type name, ignoring case.
func ParseColorType(name string) (ColorType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == upper {
			return c, true
		}
	}
	return 0, false
}
