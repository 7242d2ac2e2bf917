package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
)

func intPtr(v int) *int { return &v }

func TestRegistry_RegisterItem_Duplicate(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Hat", Slot: "head"}))
	err := reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Other hat", Slot: "head"})
	assert.Error(t, err)
}

func TestRegistry_RegisterItem_InvalidSlot(t *testing.T) {
	reg := catalog.NewRegistry()
	err := reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Hat", Slot: "tail"})
	assert.ErrorContains(t, err, "tail")
}

func TestRegistry_RegisterItem_TwoHandedOutsideWeaponSlot(t *testing.T) {
	reg := catalog.NewRegistry()
	err := reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Shield", Slot: "shield", TwoHanded: true})
	assert.Error(t, err)
}

func TestRegistry_RegisterItem_BadColor(t *testing.T) {
	reg := catalog.NewRegistry()
	err := reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Hat", Slot: "head", Colors: []string{"blue"}})
	assert.Error(t, err)
}

func TestRegistry_ItemQueries(t *testing.T) {
	reg := catalog.NewRegistry()
	no := false
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{
		ID: 1163, Name: "Rune full helm", Slot: "HEAD", HidesHair: true, HidesJaw: true,
	}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{
		ID: 1319, Name: "Rune 2h sword", Slot: "WEAPON", TwoHanded: true, IdleAnimation: intPtr(2561),
	}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{
		ID: 1320, Name: "Rune 2h sword (noted)", Canonical: intPtr(1319), Equipable: &no,
	}))

	assert.True(t, reg.HidesHair(1163))
	assert.True(t, reg.HidesJaw(1163))
	assert.False(t, reg.HidesArms(1163))
	assert.True(t, reg.TwoHanded(1319))
	assert.False(t, reg.TwoHanded(1163))
	assert.Equal(t, 1319, reg.Canonicalize(1320))
	assert.Equal(t, 42, reg.Canonicalize(42))

	anim, ok := reg.IdleAnimation(1319)
	require.True(t, ok)
	assert.Equal(t, 2561, anim)
	_, ok = reg.IdleAnimation(1163)
	assert.False(t, ok)

	slot, ok := reg.EquipSlot(1163)
	require.True(t, ok)
	assert.Equal(t, appearance.SlotHead, slot)
	_, ok = reg.EquipSlot(1320)
	assert.False(t, ok, "unequipable items have no slot")

	assert.Equal(t, "Rune full helm", reg.ItemName(1163))
	assert.Equal(t, "unknown", reg.ItemName(9999))
	assert.Equal(t, []int{1163, 1319, 1320}, reg.ItemIDs())
}

func TestRegistry_DuplicateDetection_FirstWins(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 10, Name: "Cape", Slot: "cape", Model: 7, Colors: []string{"#FF0000"}}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 11, Name: "Cape (t)", Slot: "cape", Model: 7, Colors: []string{"#ff0000"}}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 12, Name: "Blue cape", Slot: "cape", Model: 7, Colors: []string{"#0000ff"}}))

	assert.False(t, reg.Duplicate(10))
	assert.True(t, reg.Duplicate(11))
	assert.False(t, reg.Duplicate(12))
}

func TestRegistry_Exclusions(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Bad", Slot: "head", Excluded: true}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 2, Name: "Odd", Slot: "head", NonStandard: true}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 3, Name: "Fine", Slot: "head"}))

	assert.Equal(t, map[int]bool{1: true}, reg.Exclusions(false))
	assert.Equal(t, map[int]bool{1: true, 2: true}, reg.Exclusions(true))
}

func TestRegistry_KitsAndFallbacks(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterKit(&catalog.KitDef{ID: 0, Name: "Bald", Slot: "hair", Fallback: true}))
	require.NoError(t, reg.RegisterKit(&catalog.KitDef{ID: 5, Name: "Long", Slot: "hair"}))
	require.NoError(t, reg.RegisterKit(&catalog.KitDef{ID: 45, Name: "Pigtails", Slot: "hair", Female: true, Fallback: true}))
	assert.Error(t, reg.RegisterKit(&catalog.KitDef{ID: 300, Name: "Too big", Slot: "hair"}))

	male := reg.KitsFor(appearance.SlotHair, false)
	require.Len(t, male, 2)
	assert.Equal(t, 0, male[0].ID)
	assert.Equal(t, 5, male[1].ID)

	id, ok := reg.FallbackKit(appearance.SlotHair, true)
	require.True(t, ok)
	assert.Equal(t, 45, id)

	_, ok = reg.FallbackKit(appearance.SlotJaw, true)
	assert.False(t, ok)
}

func TestRegistry_Palette(t *testing.T) {
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterColor(appearance.ColorHair, &catalog.ColorDef{ID: 0, Name: "Dark brown", Hex: "#3b2a1a"}))
	require.NoError(t, reg.RegisterColor(appearance.ColorHair, &catalog.ColorDef{ID: 1, Name: "White", Hex: "#ffffff"}))
	assert.Error(t, reg.RegisterColor(appearance.ColorHair, &catalog.ColorDef{ID: 1, Name: "Again", Hex: "#ffffff"}))

	palette := reg.Palette(appearance.ColorHair)
	require.Len(t, palette, 2)
	palette[0] = nil
	assert.NotNil(t, reg.Palette(appearance.ColorHair)[0], "Palette must return a copy")

	c, ok := reg.Color(appearance.ColorHair, 1)
	require.True(t, ok)
	assert.Equal(t, "White", c.Name)
	assert.InDelta(t, 1.0, c.Color().R, 1e-9)
}
