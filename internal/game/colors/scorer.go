// Package colors scores outfit candidates by how well their colors cohere with
// the pieces already chosen, so the randomizer can prefer matching outfits.
package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/scripting"
)

const (
	// NeutralScore is returned when there is nothing to compare against.
	NeutralScore = 0.5
	// UnknownScore is returned for candidates without color information.
	UnknownScore = 0.25

	// Script hooks consulted when a scorer script is loaded.
	ItemHook  = "score_item"
	ColorHook = "score_color"
)

// Scorer rates items and palette colors for cohesion.
//
// A Scorer is stateless; per-outfit state lives in a Context.
type Scorer struct {
	reg    *catalog.Registry
	hooks  *scripting.Manager
	logger *zap.Logger
}

// NewScorer creates a Scorer over reg. hooks may be nil.
//
// Precondition: reg and logger must be non-nil.
func NewScorer(reg *catalog.Registry, hooks *scripting.Manager, logger *zap.Logger) *Scorer {
	return &Scorer{reg: reg, hooks: hooks, logger: logger}
}

// Context accumulates the colors of the outfit being built.
type Context struct {
	s       *Scorer
	anchors []colorful.Color
}

// NewContext seeds a Context with already-fixed pieces, typically the locked
// items and colors of the current outfit.
//
// Postcondition: the returned Context compares candidates against every color
// of items and every palette color in colors that the catalog knows.
func (s *Scorer) NewContext(items map[appearance.Slot]int, colors map[appearance.ColorType]int) *Context {
	c := &Context{s: s}
	for _, slot := range appearance.AllSlots {
		if id, ok := items[slot]; ok {
			c.AddItem(slot, id)
		}
	}
	for _, t := range appearance.AllColorTypes {
		if id, ok := colors[t]; ok {
			if def, found := s.reg.Color(t, id); found {
				c.AddColor(t, def)
			}
		}
	}
	return c
}

// AddItem feeds a chosen item back into the context.
func (c *Context) AddItem(_ appearance.Slot, itemID int) {
	c.anchors = append(c.anchors, c.s.reg.ItemColors(itemID)...)
}

// AddColor feeds a chosen palette color back into the context.
func (c *Context) AddColor(_ appearance.ColorType, def *catalog.ColorDef) {
	c.anchors = append(c.anchors, def.Color())
}

// ScoreItem rates itemID for slot in [0, 1], higher meaning more cohesive.
// A loaded score_item(slot, item_id, base) hook may override the result.
func (c *Context) ScoreItem(itemID int, slot appearance.Slot) float64 {
	base := c.cohesion(c.s.reg.ItemColors(itemID))
	return c.s.viaHook(ItemHook, base, lua.LString(slot.String()), lua.LNumber(itemID))
}

// ScoreColor rates a palette entry of t in [0, 1].
// A loaded score_color(type, color_id, base) hook may override the result.
func (c *Context) ScoreColor(t appearance.ColorType, def *catalog.ColorDef) float64 {
	base := c.cohesion([]colorful.Color{def.Color()})
	return c.s.viaHook(ColorHook, base, lua.LString(t.String()), lua.LNumber(def.ID))
}

// cohesion averages, over the candidate's colors, the similarity to the
// closest anchor color.
func (c *Context) cohesion(candidate []colorful.Color) float64 {
	if len(c.anchors) == 0 {
		return NeutralScore
	}
	if len(candidate) == 0 {
		return UnknownScore
	}
	total := 0.0
	for _, col := range candidate {
		best := 0.0
		for _, a := range c.anchors {
			if sim := Similarity(col, a); sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(candidate))
}

// Similarity maps the CIE Lab distance between a and b onto [0, 1].
func Similarity(a, b colorful.Color) float64 {
	return 1 - math.Min(a.DistanceLab(b), 1)
}

func (s *Scorer) viaHook(hook string, base float64, args ...lua.LValue) float64 {
	if s.hooks == nil {
		return base
	}
	ret, err := s.hooks.CallHook(hook, append(args, lua.LNumber(base))...)
	if err != nil {
		return base
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		if ret != lua.LNil {
			s.logger.Debug("colors: ignoring non-numeric hook result",
				zap.String("hook", hook),
				zap.String("type", ret.Type().String()),
			)
		}
		return base
	}
	return float64(n)
}
