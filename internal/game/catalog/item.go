// Package catalog holds the static equipment metadata the swap engine reads:
// which slot an item occupies, whether it hides hair, jaw, or arms, whether it
// is two-handed, its idle animation, and the base-model kits and color palettes.
package catalog

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// DefaultIdleAnimation is the idle pose used when no weapon dictates one.
const DefaultIdleAnimation = 808

// ItemDef defines the static properties of a wearable item loaded from YAML.
type ItemDef struct {
	ID            int      `yaml:"id"`
	Name          string   `yaml:"name"`
	Slot          string   `yaml:"slot"`
	Equipable     *bool    `yaml:"equipable"`
	TwoHanded     bool     `yaml:"two_handed"`
	Canonical     *int     `yaml:"canonical"`
	Model         int      `yaml:"model"`
	HidesHair     bool     `yaml:"hides_hair"`
	HidesJaw      bool     `yaml:"hides_jaw"`
	HidesArms     bool     `yaml:"hides_arms"`
	IdleAnimation *int     `yaml:"idle_animation"`
	NonStandard   bool     `yaml:"non_standard"`
	Excluded      bool     `yaml:"excluded"`
	Colors        []string `yaml:"colors"`

	slot    appearance.Slot
	hasSlot bool
	palette []colorful.Color
}

// IsEquipable reports whether the item can be worn. Items default to equipable.
func (d *ItemDef) IsEquipable() bool {
	return d.Equipable == nil || *d.Equipable
}

// EquipSlot returns the slot the item occupies when worn.
//
// Postcondition: ok is false for items without a slot or that are not equipable.
func (d *ItemDef) EquipSlot() (appearance.Slot, bool) {
	if !d.hasSlot || !d.IsEquipable() {
		return 0, false
	}
	return d.slot, true
}

// Validate checks the definition's invariants and resolves its slot and colors.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid; on success EquipSlot and
// the parsed palette are populated.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID < 0 {
		errs = append(errs, fmt.Errorf("ID must be >= 0, got %d", d.ID))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.Slot != "" {
		s, ok := appearance.ParseSlot(d.Slot)
		if !ok {
			errs = append(errs, fmt.Errorf("Slot %q is not a known slot", d.Slot))
		}
		d.slot, d.hasSlot = s, ok
	}
	if d.TwoHanded && d.hasSlot && d.slot != appearance.SlotWeapon {
		errs = append(errs, errors.New("TwoHanded is only valid for weapon slot items"))
	}
	if d.Canonical != nil && *d.Canonical < 0 {
		errs = append(errs, fmt.Errorf("Canonical must be >= 0, got %d", *d.Canonical))
	}
	if d.IdleAnimation != nil && *d.IdleAnimation < 0 {
		errs = append(errs, fmt.Errorf("IdleAnimation must be >= 0, got %d", *d.IdleAnimation))
	}
	d.palette = d.palette[:0]
	for _, hex := range d.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("color %q: %w", hex, err))
			continue
		}
		d.palette = append(d.palette, c)
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// KitDef defines a base-model variant for one slot.
type KitDef struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Slot     string `yaml:"slot"`
	Female   bool   `yaml:"female"`
	Fallback bool   `yaml:"fallback"`

	slot appearance.Slot
}

// EquipSlot returns the slot the kit is shown in. Only valid after Validate.
func (k *KitDef) EquipSlot() appearance.Slot {
	return k.slot
}

// Validate checks the kit's invariants and resolves its slot.
//
// Postcondition: returns nil iff the id fits the kit range and the slot is known.
func (k *KitDef) Validate() error {
	var errs []error
	if k.ID < 0 || k.ID >= appearance.ItemOffset-appearance.KitOffset {
		errs = append(errs, fmt.Errorf("ID must be in [0, %d), got %d", appearance.ItemOffset-appearance.KitOffset, k.ID))
	}
	if k.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	s, ok := appearance.ParseSlot(k.Slot)
	if !ok {
		errs = append(errs, fmt.Errorf("Slot %q is not a known slot", k.Slot))
	}
	k.slot = s
	if len(errs) > 0 {
		return fmt.Errorf("kit validation failed: %v", errs)
	}
	return nil
}

// ColorDef is one entry in a color type's palette.
type ColorDef struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`

	color colorful.Color
}

// Color returns the parsed display color. Only valid after Validate.
func (c *ColorDef) Color() colorful.Color {
	return c.color
}

// Validate checks the color's invariants and parses its hex value.
func (c *ColorDef) Validate() error {
	var errs []error
	if c.ID < 0 {
		errs = append(errs, fmt.Errorf("ID must be >= 0, got %d", c.ID))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	parsed, err := colorful.Hex(c.Hex)
	if err != nil {
		errs = append(errs, fmt.Errorf("hex %q: %w", c.Hex, err))
	}
	c.color = parsed
	if len(errs) > 0 {
		return fmt.Errorf("color validation failed: %v", errs)
	}
	return nil
}
