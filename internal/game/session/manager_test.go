package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
)

const (
	fullHelm  = 1163
	medHelm   = 1137
	twoHander = 1319
	sword     = 1277
	shield    = 1193
	platebody = 1127
)

func intPtr(v int) *int { return &v }

func testRegistry(t testing.TB) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	for _, d := range []*catalog.ItemDef{
		{ID: fullHelm, Name: "Rune full helm", Slot: "head", HidesHair: true, HidesJaw: true},
		{ID: medHelm, Name: "Iron med helm", Slot: "head"},
		{ID: twoHander, Name: "Rune 2h sword", Slot: "weapon", TwoHanded: true, IdleAnimation: intPtr(2561)},
		{ID: sword, Name: "Bronze sword", Slot: "weapon"},
		{ID: shield, Name: "Steel kiteshield", Slot: "shield"},
		{ID: platebody, Name: "Rune platebody", Slot: "torso", HidesArms: true},
	} {
		require.NoError(t, reg.RegisterItem(d))
	}
	return reg
}

func testPlayer(name string) *Player {
	p := NewPlayer(name, false)
	p.Kits[appearance.SlotHair] = 0
	p.Kits[appearance.SlotJaw] = 10
	p.Kits[appearance.SlotTorso] = 18
	p.Kits[appearance.SlotArms] = 26
	p.Colors[appearance.ColorHair] = 3
	return p
}

func TestBuildComposition_Natural(t *testing.T) {
	c := BuildComposition(testRegistry(t), testPlayer("alice"))
	assert.Equal(t, appearance.KitEquipmentID(0), c.EquipmentID(appearance.SlotHair))
	assert.Equal(t, appearance.Empty, c.EquipmentID(appearance.SlotHead))
	kit, ok := c.KitID(appearance.SlotTorso)
	require.True(t, ok)
	assert.Equal(t, 18, kit)
	_, ok = c.KitID(appearance.SlotHead)
	assert.False(t, ok)
	assert.Equal(t, 3, c.ColorID(appearance.ColorHair))
	assert.Equal(t, catalog.DefaultIdleAnimation, c.IdleAnimation())
}

func TestBuildComposition_ItemsHideKits(t *testing.T) {
	p := testPlayer("alice")
	p.Equipment[appearance.SlotHead] = fullHelm
	p.Equipment[appearance.SlotTorso] = platebody
	p.Equipment[appearance.SlotWeapon] = twoHander
	c := BuildComposition(testRegistry(t), p)

	assert.Equal(t, appearance.ItemEquipmentID(fullHelm), c.EquipmentID(appearance.SlotHead))
	assert.Equal(t, appearance.Empty, c.EquipmentID(appearance.SlotHair))
	assert.Equal(t, appearance.Empty, c.EquipmentID(appearance.SlotJaw))
	assert.Equal(t, appearance.Empty, c.EquipmentID(appearance.SlotArms))
	assert.Equal(t, 2561, c.IdleAnimation())
}

func TestManager_AddPlayer(t *testing.T) {
	m := NewManager(testRegistry(t))
	require.NoError(t, m.AddPlayer(testPlayer("alice")))
	assert.Equal(t, 1, m.PlayerCount())

	err := m.AddPlayer(testPlayer("alice"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Error(t, m.AddPlayer(NewPlayer("", false)))
}

func TestManager_LoginLogout(t *testing.T) {
	m := NewManager(testRegistry(t))
	require.NoError(t, m.AddPlayer(testPlayer("alice")))

	assert.Nil(t, m.Composition())
	_, ok := m.EquippedItem(appearance.SlotHead)
	assert.False(t, ok)

	require.NoError(t, m.Login("alice"))
	require.NotNil(t, m.Composition())
	name, ok := m.ActiveUsername()
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	m.Logout()
	assert.Nil(t, m.Composition())
	assert.Error(t, m.Login("bob"))
}

func TestManager_RemoveActivePlayerLogsOut(t *testing.T) {
	m := NewManager(testRegistry(t))
	require.NoError(t, m.AddPlayer(testPlayer("alice")))
	require.NoError(t, m.Login("alice"))
	require.NoError(t, m.RemovePlayer("alice"))
	assert.Nil(t, m.Composition())
	assert.Error(t, m.RemovePlayer("alice"))
}

func TestManager_Equip(t *testing.T) {
	m := NewManager(testRegistry(t))
	require.NoError(t, m.AddPlayer(testPlayer("alice")))
	assert.Error(t, m.Equip(appearance.SlotHead, medHelm), "no active character")
	require.NoError(t, m.Login("alice"))

	require.NoError(t, m.Equip(appearance.SlotShield, shield))
	require.NoError(t, m.Equip(appearance.SlotWeapon, twoHander))
	_, hasShield := m.EquippedItem(appearance.SlotShield)
	assert.False(t, hasShield)
	assert.Equal(t, 2561, m.Composition().IdleAnimation())

	require.NoError(t, m.Equip(appearance.SlotShield, shield))
	_, hasWeapon := m.EquippedItem(appearance.SlotWeapon)
	assert.False(t, hasWeapon)

	err := m.Equip(appearance.SlotHead, sword)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be worn")
}

func TestManager_UnequipAndReset(t *testing.T) {
	m := NewManager(testRegistry(t))
	require.NoError(t, m.AddPlayer(testPlayer("alice")))
	require.NoError(t, m.Login("alice"))
	require.NoError(t, m.Equip(appearance.SlotHead, fullHelm))
	assert.Equal(t, appearance.Empty, m.Composition().EquipmentID(appearance.SlotHair))

	m.Composition().SetEquipmentID(appearance.SlotCape, appearance.ItemEquipmentID(9999))
	m.Reset()
	assert.Equal(t, appearance.Empty, m.Composition().EquipmentID(appearance.SlotCape))

	assert.True(t, m.Unequip(appearance.SlotHead))
	assert.False(t, m.Unequip(appearance.SlotHead))
	assert.Equal(t, appearance.KitEquipmentID(0), m.Composition().EquipmentID(appearance.SlotHair))
}

func TestManager_Look(t *testing.T) {
	m := NewManager(testRegistry(t))
	bob := testPlayer("bob")
	bob.Female = true
	bob.Equipment[appearance.SlotHead] = medHelm
	require.NoError(t, m.AddPlayer(bob))

	look, ok := m.Look("bob")
	require.True(t, ok)
	assert.True(t, look.Female())
	assert.Equal(t, appearance.ItemEquipmentID(medHelm), look.EquipmentID(appearance.SlotHead))
	_, ok = m.Look("carol")
	assert.False(t, ok)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(testRegistry(t))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d", n)
			_ = m.AddPlayer(testPlayer(name))
			_ = m.Login(name)
			_ = m.Composition()
			_, _ = m.EquippedItem(appearance.SlotHead)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, m.PlayerCount())
	assert.Len(t, m.Usernames(), 20)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
username: alice
female: true
idle_animation: 808
kits:
  hair: 45
  torso: 56
equipment:
  HEAD: 1137
colors:
  hair: 2
  skin: 4
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.True(t, p.Female)
	assert.Equal(t, 808, p.IdleAnimation)
	assert.Equal(t, map[appearance.Slot]int{appearance.SlotHair: 45, appearance.SlotTorso: 56}, p.Kits)
	assert.Equal(t, map[appearance.Slot]int{appearance.SlotHead: medHelm}, p.Equipment)
	assert.Equal(t, map[appearance.ColorType]int{appearance.ColorHair: 2, appearance.ColorSkin: 4}, p.Colors)
}

func TestLoadProfile_CollectsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
kits:
  tail: 3
equipment:
  head: -1
colors:
  eyes: 1
`), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
	for _, want := range []string{"username must not be empty", `unknown slot "tail"`, "HEAD must be >= 0", `unknown color type "eyes"`} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProperty_BuildComposition_ShowsEveryEquippedItem(t *testing.T) {
	reg := testRegistry(t)
	items := map[appearance.Slot][]int{
		appearance.SlotHead:   {fullHelm, medHelm},
		appearance.SlotWeapon: {twoHander, sword},
		appearance.SlotShield: {shield},
		appearance.SlotTorso:  {platebody},
	}
	rapid.Check(t, func(rt *rapid.T) {
		p := testPlayer("p")
		for slot, ids := range items {
			if rapid.Bool().Draw(rt, "wear "+slot.String()) {
				p.Equipment[slot] = rapid.SampledFrom(ids).Draw(rt, "item "+slot.String())
			}
		}
		c := BuildComposition(reg, p)
		for slot, id := range p.Equipment {
			if got := c.EquipmentID(slot); got != appearance.ItemEquipmentID(id) {
				rt.Fatalf("%s shows %d, want item %d", slot, got, id)
			}
		}
		for _, slot := range []appearance.Slot{appearance.SlotHair, appearance.SlotJaw, appearance.SlotArms} {
			if appearance.IsItem(c.EquipmentID(slot)) {
				rt.Fatalf("%s shows an item", slot)
			}
		}
	})
}
