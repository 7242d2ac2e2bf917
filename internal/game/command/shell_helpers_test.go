package command_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/command"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

const (
	fullHelm  = 1163
	twoHander = 1319
	shield    = 1193
	cape      = 1007

	kitBald   = 0
	kitLong   = 5
	kitGoatee = 10
	kitPlain  = 18
	kitArms   = 26
)

func intPtr(v int) *int { return &v }

func testCatalog(t *testing.T) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	for _, d := range []*catalog.ItemDef{
		{ID: fullHelm, Name: "Rune full helm", Slot: "head", HidesHair: true, HidesJaw: true, Colors: []string{"#3a5f7a"}},
		{ID: twoHander, Name: "Rune 2h sword", Slot: "weapon", TwoHanded: true, IdleAnimation: intPtr(2561)},
		{ID: shield, Name: "Steel kiteshield", Slot: "shield"},
		{ID: cape, Name: "Red cape", Slot: "cape", Colors: []string{"#cc1111"}},
	} {
		require.NoError(t, reg.RegisterItem(d))
	}
	for _, k := range []*catalog.KitDef{
		{ID: kitBald, Name: "Bald", Slot: "hair", Fallback: true},
		{ID: kitLong, Name: "Long", Slot: "hair"},
		{ID: kitGoatee, Name: "Goatee", Slot: "jaw", Fallback: true},
		{ID: kitPlain, Name: "Plain", Slot: "torso", Fallback: true},
		{ID: kitArms, Name: "Regular", Slot: "arms", Fallback: true},
	} {
		require.NoError(t, reg.RegisterKit(k))
	}
	for i, hex := range []string{"#1a1a1a", "#5a3a1a", "#d9c27a"} {
		require.NoError(t, reg.RegisterColor(appearance.ColorHair, &catalog.ColorDef{ID: i, Name: hex, Hex: hex}))
	}
	return reg
}

func natural(name string) *session.Player {
	p := session.NewPlayer(name, false)
	p.Kits[appearance.SlotHair] = kitBald
	p.Kits[appearance.SlotJaw] = kitGoatee
	p.Kits[appearance.SlotTorso] = kitPlain
	p.Kits[appearance.SlotArms] = kitArms
	return p
}

type shellFixture struct {
	shell *command.Shell
	swaps *swap.Manager
	host  *session.Manager
	reg   *catalog.Registry
}

// newShellFixture logs alice in and registers bob, who wears a cape and long hair.
func newShellFixture(t *testing.T) *shellFixture {
	t.Helper()
	reg := testCatalog(t)
	host := session.NewManager(reg)
	require.NoError(t, host.AddPlayer(natural("alice")))
	bob := natural("bob")
	bob.Kits[appearance.SlotHair] = kitLong
	bob.Equipment[appearance.SlotCape] = cape
	require.NoError(t, host.AddPlayer(bob))
	require.NoError(t, host.Login("alice"))

	logger := zap.NewNop()
	swaps := swap.NewManager(host, reg, colors.NewScorer(reg, nil, logger), dice.NewSeededSource(3),
		swap.Options{OutfitsDir: t.TempDir()}, logger)
	swaps.OnUsernameChanged("alice")
	swaps.StartUp()
	t.Cleanup(swaps.ShutDown)

	return &shellFixture{
		shell: command.NewShell(swaps, host, reg, logger),
		swaps: swaps,
		host:  host,
		reg:   reg,
	}
}

func (f *shellFixture) run(t *testing.T, line string) string {
	t.Helper()
	reply, quit := f.shell.Execute(line)
	require.False(t, quit, "unexpected quit on %q", line)
	return reply
}

func (f *shellFixture) shows(slot appearance.Slot) int {
	return f.host.Composition().EquipmentID(slot)
}
