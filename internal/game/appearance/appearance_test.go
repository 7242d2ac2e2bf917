package appearance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

func TestFromEquipmentID_Ranges(t *testing.T) {
	tests := []struct {
		equip int
		kind  appearance.Kind
		id    int
	}{
		{0, appearance.KindEmpty, 0},
		{256, appearance.KindKit, 0},
		{261, appearance.KindKit, 5},
		{511, appearance.KindKit, 255},
		{512, appearance.KindItem, 0},
		{1705, appearance.KindItem, 1193},
	}
	for _, tc := range tests {
		kind, id := appearance.FromEquipmentID(tc.equip)
		assert.Equal(t, tc.kind, kind, "equip %d", tc.equip)
		assert.Equal(t, tc.id, id, "equip %d", tc.equip)
	}
}

func TestKitEquipmentID_NoKitIsEmpty(t *testing.T) {
	assert.Equal(t, appearance.Empty, appearance.KitEquipmentID(appearance.NoKit))
}

func TestProperty_EquipmentID_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := rapid.Int().Draw(rt, "equipmentID")
		kind, id := appearance.FromEquipmentID(e)
		if got := appearance.ToEquipmentID(kind, id); got != e {
			rt.Fatalf("round trip of %d produced %d", e, got)
		}
	})
}

func TestProperty_EquipmentID_ExactlyOneKind(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := rapid.Int().Draw(rt, "equipmentID")
		matches := 0
		if appearance.IsItem(e) {
			matches++
		}
		if appearance.IsKit(e) {
			matches++
		}
		if kind, _ := appearance.FromEquipmentID(e); kind == appearance.KindEmpty {
			matches++
		}
		if matches != 1 {
			rt.Fatalf("equipment id %d matched %d interpretations", e, matches)
		}
	})
}

func TestParseSlot_CaseInsensitive(t *testing.T) {
	s, ok := appearance.ParseSlot("hair")
	require.True(t, ok)
	assert.Equal(t, appearance.SlotHair, s)

	_, ok = appearance.ParseSlot("HAIR_KIT")
	assert.False(t, ok)
}

func TestSlot_IndexMatchesPosition(t *testing.T) {
	for i, s := range appearance.AllSlots {
		assert.Equal(t, i, s.Index())
		got, ok := appearance.SlotForIndex(i)
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := appearance.SlotForIndex(len(appearance.AllSlots))
	assert.False(t, ok)
}

func TestParseColorType(t *testing.T) {
	for _, c := range appearance.AllColorTypes {
		got, ok := appearance.ParseColorType(c.String())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := appearance.ParseColorType("EYES")
	assert.False(t, ok)
}
