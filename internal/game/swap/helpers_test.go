package swap_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
	"github.com/cory-johannsen/fashionscape/internal/scripting"
)

const (
	runeFullHelm  = 1163
	ironMedHelm   = 1137
	rune2hSword   = 1319
	bronzeSword   = 1277
	kiteshield    = 1193
	runePlatebody = 1127
	monkRobeTop   = 544
	runePlatelegs = 1079
	redCape       = 1007
	glory         = 1704

	rune2hIdle = 2561

	kitBald     = 0
	kitLong     = 5
	kitGoatee   = 10
	kitBeard    = 12
	kitPlain    = 18
	kitRegular  = 26
	kitPlainH   = 33
	kitPlainL   = 36
	kitSmall    = 42
	kitPigtails = 45
)

func intPtr(v int) *int { return &v }

// newTestRegistry builds a small catalog covering every coupling rule.
func newTestRegistry(t testing.TB) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	items := []*catalog.ItemDef{
		{ID: runeFullHelm, Name: "Rune full helm", Slot: "head", HidesHair: true, HidesJaw: true, Colors: []string{"#3a5f7a"}},
		{ID: ironMedHelm, Name: "Iron med helm", Slot: "head", Colors: []string{"#8a8a8a"}},
		{ID: rune2hSword, Name: "Rune 2h sword", Slot: "weapon", TwoHanded: true, IdleAnimation: intPtr(rune2hIdle), Colors: []string{"#3a5f7a"}},
		{ID: bronzeSword, Name: "Bronze sword", Slot: "weapon", Colors: []string{"#a0662a"}},
		{ID: kiteshield, Name: "Steel kiteshield", Slot: "shield", Colors: []string{"#9a9a9a"}},
		{ID: runePlatebody, Name: "Rune platebody", Slot: "torso", HidesArms: true, Colors: []string{"#3a5f7a"}},
		{ID: monkRobeTop, Name: "Monk's robe top", Slot: "torso", Colors: []string{"#7a5a3a"}},
		{ID: runePlatelegs, Name: "Rune platelegs", Slot: "legs", Colors: []string{"#3a5f7a"}},
		{ID: redCape, Name: "Red cape", Slot: "cape", Colors: []string{"#cc1111"}},
		{ID: glory, Name: "Amulet of glory", Slot: "amulet", Colors: []string{"#d4af37"}},
	}
	for _, d := range items {
		require.NoError(t, reg.RegisterItem(d))
	}
	kits := []*catalog.KitDef{
		{ID: kitBald, Name: "Bald", Slot: "hair", Fallback: true},
		{ID: kitLong, Name: "Long", Slot: "hair"},
		{ID: kitGoatee, Name: "Goatee", Slot: "jaw", Fallback: true},
		{ID: kitBeard, Name: "Long beard", Slot: "jaw"},
		{ID: kitPlain, Name: "Plain", Slot: "torso", Fallback: true},
		{ID: kitRegular, Name: "Regular", Slot: "arms", Fallback: true},
		{ID: kitPlainH, Name: "Plain", Slot: "hands", Fallback: true},
		{ID: kitPlainL, Name: "Plain", Slot: "legs", Fallback: true},
		{ID: kitSmall, Name: "Small", Slot: "boots", Fallback: true},
		{ID: kitPigtails, Name: "Pigtails", Slot: "hair", Female: true, Fallback: true},
	}
	for _, k := range kits {
		require.NoError(t, reg.RegisterKit(k))
	}
	hairHex := []string{"#1a1a1a", "#5a3a1a", "#d9c27a", "#aa2a1a", "#e0e0e0", "#3a5f7a", "#2a6a2a", "#6a2a6a"}
	for i, hex := range hairHex {
		require.NoError(t, reg.RegisterColor(appearance.ColorHair, &catalog.ColorDef{ID: i, Name: hex, Hex: hex}))
	}
	for i, hex := range []string{"#cc1111", "#11cc11", "#1111cc", "#3a5f7a"} {
		require.NoError(t, reg.RegisterColor(appearance.ColorTorso, &catalog.ColorDef{ID: i, Name: hex, Hex: hex}))
		require.NoError(t, reg.RegisterColor(appearance.ColorLegs, &catalog.ColorDef{ID: i, Name: hex, Hex: hex}))
	}
	return reg
}

type fakeComposition struct {
	equipment [12]int
	colors    [5]int
	female    bool
	idle      int
}

func (c *fakeComposition) EquipmentID(slot appearance.Slot) int { return c.equipment[slot.Index()] }
func (c *fakeComposition) SetEquipmentID(slot appearance.Slot, id int) {
	c.equipment[slot.Index()] = id
}
func (c *fakeComposition) KitID(slot appearance.Slot) (int, bool) {
	e := c.equipment[slot.Index()]
	if !appearance.IsKit(e) {
		return 0, false
	}
	return e - appearance.KitOffset, true
}
func (c *fakeComposition) ColorID(t appearance.ColorType) int        { return c.colors[t.Index()] }
func (c *fakeComposition) SetColorID(t appearance.ColorType, id int) { c.colors[t.Index()] = id }
func (c *fakeComposition) Female() bool                              { return c.female }
func (c *fakeComposition) IdleAnimation() int                        { return c.idle }
func (c *fakeComposition) SetIdleAnimation(id int)                   { c.idle = id }

type fakeHost struct {
	comp     *fakeComposition
	equipped map[appearance.Slot]int
}

func (h *fakeHost) Composition() swap.Composition {
	if h.comp == nil {
		return nil
	}
	return h.comp
}

func (h *fakeHost) EquippedItem(slot appearance.Slot) (int, bool) {
	id, ok := h.equipped[slot]
	return id, ok
}

// snapshot is everything the host displays.
type snapshot struct {
	equipment [12]int
	colors    [5]int
	idle      int
}

func (h *fakeHost) snapshot() snapshot {
	return snapshot{equipment: h.comp.equipment, colors: h.comp.colors, idle: h.comp.idle}
}

// newNaturalHost returns a male character wearing no items.
func newNaturalHost() *fakeHost {
	comp := &fakeComposition{idle: catalog.DefaultIdleAnimation}
	kits := map[appearance.Slot]int{
		appearance.SlotHair:  kitBald,
		appearance.SlotJaw:   kitGoatee,
		appearance.SlotTorso: kitPlain,
		appearance.SlotArms:  kitRegular,
		appearance.SlotLegs:  kitPlainL,
		appearance.SlotHands: kitPlainH,
		appearance.SlotBoots: kitSmall,
	}
	for slot, kit := range kits {
		comp.equipment[slot.Index()] = appearance.KitEquipmentID(kit)
	}
	return &fakeHost{comp: comp, equipped: make(map[appearance.Slot]int)}
}

// wear equips itemID for real and displays it.
func (h *fakeHost) wear(slot appearance.Slot, itemID int) {
	h.equipped[slot] = itemID
	h.comp.equipment[slot.Index()] = appearance.ItemEquipmentID(itemID)
}

type fixture struct {
	m    *swap.Manager
	host *fakeHost
	reg  *catalog.Registry
	logs *observer.ObservedLogs
}

func newFixture(t testing.TB, host *fakeHost, opts swap.Options) *fixture {
	t.Helper()
	return newFixtureWithHooks(t, host, opts, nil)
}

func newFixtureWithHooks(t testing.TB, host *fakeHost, opts swap.Options, hooks *scripting.Manager) *fixture {
	t.Helper()
	return buildFixture(t, host, opts, hooks, 7)
}

func buildFixture(t testing.TB, host *fakeHost, opts swap.Options, hooks *scripting.Manager, seed uint64) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	reg := newTestRegistry(t)
	scorer := colors.NewScorer(reg, hooks, logger)
	m := swap.NewManager(host, reg, scorer, dice.NewSeededSource(seed), opts, logger)
	m.StartUp()
	return &fixture{m: m, host: host, reg: reg, logs: logs}
}
