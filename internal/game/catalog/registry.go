package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Registry holds all loaded item, kit, and color definitions indexed by ID.
//
// A Registry is read-only once loading completes and may then be shared freely.
type Registry struct {
	items      map[int]*ItemDef
	kits       map[int]*KitDef
	palettes   map[appearance.ColorType][]*ColorDef
	iconKeys   map[string]int
	duplicates map[int]bool
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		items:      make(map[int]*ItemDef),
		kits:       make(map[int]*KitDef),
		palettes:   make(map[appearance.ColorType][]*ColorDef),
		iconKeys:   make(map[string]int),
		duplicates: make(map[int]bool),
	}
}

// RegisterItem validates d and adds it to the registry. An item that shares a
// model and colors with an earlier registered item is recorded as a duplicate.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d is invalid or
// d.ID is already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("catalog: Registry.RegisterItem: item %d: %w", d.ID, err)
	}
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterItem: item ID %d already registered", d.ID)
	}
	r.items[d.ID] = d
	if d.Model != 0 && d.IsEquipable() {
		key := iconKey(d)
		if _, seen := r.iconKeys[key]; seen {
			r.duplicates[d.ID] = true
		} else {
			r.iconKeys[key] = d.ID
		}
	}
	return nil
}

func iconKey(d *ItemDef) string {
	return fmt.Sprintf("%d|%s", d.Model, strings.ToLower(strings.Join(d.Colors, ",")))
}

// RegisterKit validates k and adds it to the registry.
//
// Postcondition: Kit(k.ID) returns (k, true); returns error if k is invalid or
// k.ID is already registered.
func (r *Registry) RegisterKit(k *KitDef) error {
	if err := k.Validate(); err != nil {
		return fmt.Errorf("catalog: Registry.RegisterKit: kit %d: %w", k.ID, err)
	}
	if _, exists := r.kits[k.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterKit: kit ID %d already registered", k.ID)
	}
	r.kits[k.ID] = k
	return nil
}

// RegisterColor validates c and appends it to the palette of t.
//
// Postcondition: Color(t, c.ID) returns (c, true); returns error if c is
// invalid or its id already exists in the palette.
func (r *Registry) RegisterColor(t appearance.ColorType, c *ColorDef) error {
	if !t.Valid() {
		return fmt.Errorf("catalog: Registry.RegisterColor: unknown color type %d", t)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("catalog: Registry.RegisterColor: %s color %d: %w", t, c.ID, err)
	}
	if _, exists := r.Color(t, c.ID); exists {
		return fmt.Errorf("catalog: Registry.RegisterColor: %s color ID %d already registered", t, c.ID)
	}
	r.palettes[t] = append(r.palettes[t], c)
	return nil
}

// Item returns the ItemDef for the given id and whether it was found.
func (r *Registry) Item(id int) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// ItemIDs returns every registered item id in ascending order.
func (r *Registry) ItemIDs() []int {
	out := make([]int, 0, len(r.items))
	for id := range r.items {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Canonicalize maps noted or variant ids onto the item they display as.
// Unknown ids are returned unchanged.
func (r *Registry) Canonicalize(id int) int {
	if d, ok := r.items[id]; ok && d.Canonical != nil {
		return *d.Canonical
	}
	return id
}

// ItemName returns the display name of id, or "unknown".
func (r *Registry) ItemName(id int) string {
	if d, ok := r.items[id]; ok {
		return d.Name
	}
	return "unknown"
}

// EquipSlot returns the slot an equipable item occupies.
func (r *Registry) EquipSlot(itemID int) (appearance.Slot, bool) {
	d, ok := r.items[itemID]
	if !ok {
		return 0, false
	}
	return d.EquipSlot()
}

// TwoHanded reports whether itemID is an equipable two-handed weapon.
func (r *Registry) TwoHanded(itemID int) bool {
	d, ok := r.items[itemID]
	return ok && d.IsEquipable() && d.TwoHanded
}

// HidesHair reports whether wearing itemID hides the hair kit.
func (r *Registry) HidesHair(itemID int) bool {
	d, ok := r.items[itemID]
	return ok && d.HidesHair
}

// HidesJaw reports whether wearing itemID hides the jaw kit.
func (r *Registry) HidesJaw(itemID int) bool {
	d, ok := r.items[itemID]
	return ok && d.HidesJaw
}

// HidesArms reports whether wearing itemID hides the arms kit.
func (r *Registry) HidesArms(itemID int) bool {
	d, ok := r.items[itemID]
	return ok && d.HidesArms
}

// IdleAnimation returns the idle pose associated with wielding itemID.
func (r *Registry) IdleAnimation(itemID int) (int, bool) {
	d, ok := r.items[itemID]
	if !ok || d.IdleAnimation == nil {
		return 0, false
	}
	return *d.IdleAnimation, true
}

// ItemColors returns the dominant colors of itemID, possibly empty.
func (r *Registry) ItemColors(itemID int) []colorful.Color {
	d, ok := r.items[itemID]
	if !ok {
		return nil
	}
	return d.palette
}

// Duplicate reports whether itemID looks identical to an earlier item.
func (r *Registry) Duplicate(itemID int) bool {
	return r.duplicates[itemID]
}

// Exclusions returns the ids to skip when searching for items: excluded ids,
// duplicates, and non-standard ids when includeNonStandard is set.
//
// Postcondition: the returned map is owned by the caller.
func (r *Registry) Exclusions(includeNonStandard bool) map[int]bool {
	out := make(map[int]bool, len(r.duplicates))
	for id := range r.duplicates {
		out[id] = true
	}
	for id, d := range r.items {
		if d.Excluded || (includeNonStandard && d.NonStandard) {
			out[id] = true
		}
	}
	return out
}

// Kit returns the KitDef for the given id and whether it was found.
func (r *Registry) Kit(id int) (*KitDef, bool) {
	k, ok := r.kits[id]
	return k, ok
}

// KitsFor returns all kits for slot matching the given gender, ordered by id.
func (r *Registry) KitsFor(slot appearance.Slot, female bool) []*KitDef {
	var out []*KitDef
	for _, k := range r.kits {
		if k.slot == slot && k.Female == female {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FallbackKit returns the default kit shown in slot when the character's real
// kit is unknown.
//
// Postcondition: ok is false when the slot has no fallback for that gender.
func (r *Registry) FallbackKit(slot appearance.Slot, female bool) (int, bool) {
	for _, k := range r.KitsFor(slot, female) {
		if k.Fallback {
			return k.ID, true
		}
	}
	return 0, false
}

// Palette returns a copy of the palette for t.
func (r *Registry) Palette(t appearance.ColorType) []*ColorDef {
	src := r.palettes[t]
	out := make([]*ColorDef, len(src))
	copy(out, src)
	return out
}

// Color returns the palette entry of t with the given id.
func (r *Registry) Color(t appearance.ColorType, id int) (*ColorDef, bool) {
	for _, c := range r.palettes[t] {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
