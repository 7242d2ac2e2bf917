package colors_test

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/scripting"
)

func newRegistry(t *testing.T) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 1, Name: "Red hat", Slot: "head", Colors: []string{"#cc1111"}}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 2, Name: "Red top", Slot: "torso", Colors: []string{"#dd2222"}}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 3, Name: "Green top", Slot: "torso", Colors: []string{"#11cc11"}}))
	require.NoError(t, reg.RegisterItem(&catalog.ItemDef{ID: 4, Name: "Plain top", Slot: "torso"}))
	require.NoError(t, reg.RegisterColor(appearance.ColorLegs, &catalog.ColorDef{ID: 0, Name: "Red", Hex: "#cc2020"}))
	require.NoError(t, reg.RegisterColor(appearance.ColorLegs, &catalog.ColorDef{ID: 1, Name: "Teal", Hex: "#20cccc"}))
	return reg
}

func TestContext_EmptyIsNeutral(t *testing.T) {
	s := colors.NewScorer(newRegistry(t), nil, zap.NewNop())
	ctx := s.NewContext(nil, nil)
	assert.Equal(t, colors.NeutralScore, ctx.ScoreItem(2, appearance.SlotTorso))
}

func TestContext_PrefersMatchingItem(t *testing.T) {
	s := colors.NewScorer(newRegistry(t), nil, zap.NewNop())
	ctx := s.NewContext(map[appearance.Slot]int{appearance.SlotHead: 1}, nil)

	red := ctx.ScoreItem(2, appearance.SlotTorso)
	green := ctx.ScoreItem(3, appearance.SlotTorso)
	assert.Greater(t, red, green)
	assert.Equal(t, colors.UnknownScore, ctx.ScoreItem(4, appearance.SlotTorso))
}

func TestContext_PrefersMatchingColor(t *testing.T) {
	reg := newRegistry(t)
	s := colors.NewScorer(reg, nil, zap.NewNop())
	ctx := s.NewContext(nil, nil)
	ctx.AddItem(appearance.SlotTorso, 2)

	red, _ := reg.Color(appearance.ColorLegs, 0)
	teal, _ := reg.Color(appearance.ColorLegs, 1)
	assert.Greater(t, ctx.ScoreColor(appearance.ColorLegs, red), ctx.ScoreColor(appearance.ColorLegs, teal))
}

func TestContext_LockedColorsSeedContext(t *testing.T) {
	s := colors.NewScorer(newRegistry(t), nil, zap.NewNop())
	ctx := s.NewContext(nil, map[appearance.ColorType]int{appearance.ColorLegs: 1})
	assert.Greater(t, ctx.ScoreItem(3, appearance.SlotTorso), ctx.ScoreItem(2, appearance.SlotTorso))
}

func TestScorer_HookOverridesScore(t *testing.T) {
	hooks := scripting.NewManager(zap.NewNop())
	defer hooks.Close()
	require.NoError(t, hooks.LoadString(`
		function score_item(slot, id, base)
			if id == 3 then return 10 end
			return base
		end
		function score_color(kind, id, base)
			return "not a number"
		end
	`, 0))
	reg := newRegistry(t)
	s := colors.NewScorer(reg, hooks, zap.NewNop())
	ctx := s.NewContext(map[appearance.Slot]int{appearance.SlotHead: 1}, nil)

	assert.Equal(t, 10.0, ctx.ScoreItem(3, appearance.SlotTorso))
	teal, _ := reg.Color(appearance.ColorLegs, 1)
	base := colors.NewScorer(reg, nil, zap.NewNop()).NewContext(map[appearance.Slot]int{appearance.SlotHead: 1}, nil)
	assert.Equal(t, base.ScoreColor(appearance.ColorLegs, teal), ctx.ScoreColor(appearance.ColorLegs, teal))
}

func TestProperty_Similarity_Bounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := colorful.Color{
			R: rapid.Float64Range(0, 1).Draw(rt, "ar"),
			G: rapid.Float64Range(0, 1).Draw(rt, "ag"),
			B: rapid.Float64Range(0, 1).Draw(rt, "ab"),
		}
		b := colorful.Color{
			R: rapid.Float64Range(0, 1).Draw(rt, "br"),
			G: rapid.Float64Range(0, 1).Draw(rt, "bg"),
			B: rapid.Float64Range(0, 1).Draw(rt, "bb"),
		}
		sim := colors.Similarity(a, b)
		if sim < 0 || sim > 1 {
			rt.Fatalf("similarity %f out of range", sim)
		}
		if colors.Similarity(a, a) < 0.999999 {
			rt.Fatalf("self similarity %f", colors.Similarity(a, a))
		}
	})
}
