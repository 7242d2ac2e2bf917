// Package session tracks the characters known to the host and exposes the
// active one's live composition to the swap engine.
package session

import (
	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
)

// Player is a character's natural appearance and real equipment.
type Player struct {
	Username string
	Female   bool
	// Kits holds the natural base kit per slot.
	Kits map[appearance.Slot]int
	// Equipment holds the item really worn per slot.
	Equipment map[appearance.Slot]int
	Colors    map[appearance.ColorType]int
	// IdleAnimation is the unarmed idle pose; 0 uses catalog.DefaultIdleAnimation.
	IdleAnimation int
}

// NewPlayer returns a Player with empty appearance maps.
func NewPlayer(username string, female bool) *Player {
	return &Player{
		Username:  username,
		Female:    female,
		Kits:      make(map[appearance.Slot]int),
		Equipment: make(map[appearance.Slot]int),
		Colors:    make(map[appearance.ColorType]int),
	}
}

// Composition is the displayed state of one character.
type Composition struct {
	// Indexed by Slot.Index and ColorType.Index.
	equipment [12]int
	colors    [5]int
	female    bool
	idle      int
}

// BuildComposition renders p as the game would: worn items first, natural kits
// elsewhere, and nothing where a worn item hides the kit.
//
// Precondition: reg and p must be non-nil.
func BuildComposition(reg *catalog.Registry, p *Player) *Composition {
	c := &Composition{female: p.Female, idle: p.IdleAnimation}
	if c.idle <= 0 {
		c.idle = catalog.DefaultIdleAnimation
	}
	for _, slot := range appearance.AllSlots {
		if item, ok := p.Equipment[slot]; ok {
			c.equipment[slot.Index()] = appearance.ItemEquipmentID(item)
		} else if kit, ok := p.Kits[slot]; ok {
			c.equipment[slot.Index()] = appearance.KitEquipmentID(kit)
		}
	}
	if head, ok := p.Equipment[appearance.SlotHead]; ok {
		if reg.HidesHair(head) {
			c.equipment[appearance.SlotHair.Index()] = appearance.Empty
		}
		if reg.HidesJaw(head) {
			c.equipment[appearance.SlotJaw.Index()] = appearance.Empty
		}
	}
	if torso, ok := p.Equipment[appearance.SlotTorso]; ok && reg.HidesArms(torso) {
		c.equipment[appearance.SlotArms.Index()] = appearance.Empty
	}
	if weapon, ok := p.Equipment[appearance.SlotWeapon]; ok {
		if anim, ok := reg.IdleAnimation(weapon); ok {
			c.idle = anim
		}
	}
	for _, t := range appearance.AllColorTypes {
		c.colors[t.Index()] = p.Colors[t]
	}
	return c
}

func (c *Composition) EquipmentID(slot appearance.Slot) int {
	return c.equipment[slot.Index()]
}

func (c *Composition) SetEquipmentID(slot appearance.Slot, equipmentID int) {
	c.equipment[slot.Index()] = equipmentID
}

func (c *Composition) KitID(slot appearance.Slot) (int, bool) {
	kind, id := appearance.FromEquipmentID(c.equipment[slot.Index()])
	if kind != appearance.KindKit {
		return 0, false
	}
	return id, true
}

func (c *Composition) ColorID(t appearance.ColorType) int { return c.colors[t.Index()] }

func (c *Composition) SetColorID(t appearance.ColorType, colorID int) {
	c.colors[t.Index()] = colorID
}

func (c *Composition) Female() bool { return c.female }

func (c *Composition) IdleAnimation() int { return c.idle }

func (c *Composition) SetIdleAnimation(animationID int) { c.idle = animationID }
