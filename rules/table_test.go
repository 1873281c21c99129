package rules_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/rules"
	"github.com/katalvlaran/unitlib/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//----------------------------------------------------------------------------//
// Initialization
//----------------------------------------------------------------------------//

// TestNewTable_Seeds verifies base tier order, the gram rule and prefixes.
func TestNewTable_Seeds(t *testing.T) {
	tbl := rules.NewTable()

	all := tbl.Rules()
	require.Len(t, all, int(unit.NumDimensions)+1)
	for i, d := range unit.Dimensions() {
		r := all[i]
		assert.Equal(t, d.Symbol(), r.Symbol)
		assert.True(t, r.Force)
		assert.Equal(t, rules.TierBase, r.Tier)
		assert.Equal(t, unit.Base(d), r.Unit)
	}

	g := all[len(all)-1]
	assert.Equal(t, rules.GramSymbol, g.Symbol)
	assert.Equal(t, rules.TierBuiltin, g.Tier)
	assert.True(t, g.Force)
	assert.Equal(t, 1, g.Unit.Exps[unit.Kilogram])
	assert.Equal(t, 1e-3, g.Unit.Factor)

	prefixes := tbl.Prefixes()
	assert.Len(t, prefixes, 19)
	_, hasDeca := tbl.Prefix('D')
	assert.False(t, hasDeca)
	k, ok := tbl.Prefix('k')
	require.True(t, ok)
	assert.Equal(t, 1e3, k.Value)
}

//----------------------------------------------------------------------------//
// Add / Remove
//----------------------------------------------------------------------------//

func TestAdd_AppendsInOrder(t *testing.T) {
	tbl := rules.NewTable()
	n := unit.New().With(unit.Kilogram, 1).With(unit.Meter, 1).With(unit.Second, -2)

	_, err := tbl.Add("N", n, false)
	require.NoError(t, err)
	_, err = tbl.Add("J", n.With(unit.Meter, 2), true)
	require.NoError(t, err)

	all := tbl.Rules()
	assert.Equal(t, "N", all[len(all)-2].Symbol)
	assert.Equal(t, "J", all[len(all)-1].Symbol)

	got, ok := tbl.Lookup("N")
	require.True(t, ok)
	assert.Equal(t, rules.TierDynamic, got.Tier)
	assert.False(t, got.Force)

	_, err = tbl.Add("N", n, false)
	assert.ErrorIs(t, err, diag.ErrRuleConflict, "symbols are unique")
	_, err = tbl.Add("", n, false)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestRemove(t *testing.T) {
	tbl := rules.NewTable()
	_, err := tbl.Add("Soft", unit.Base(unit.Second), false)
	require.NoError(t, err)
	_, err = tbl.Add("Hard", unit.Base(unit.Second), true)
	require.NoError(t, err)

	require.NoError(t, tbl.Remove("Soft"))
	_, ok := tbl.Lookup("Soft")
	assert.False(t, ok)

	assert.ErrorIs(t, tbl.Remove("Hard"), diag.ErrRuleConflict)
	assert.ErrorIs(t, tbl.Remove("kg"), diag.ErrRuleConflict, "base rules are permanent")
	assert.ErrorIs(t, tbl.Remove(rules.GramSymbol), diag.ErrRuleConflict)
	assert.ErrorIs(t, tbl.Remove("Missing"), diag.ErrInvalidArgument)
}

//----------------------------------------------------------------------------//
// Define
//----------------------------------------------------------------------------//

func constant(u unit.Unit) func() (unit.Unit, error) {
	return func() (unit.Unit, error) { return u, nil }
}

// TestDefine_Policy covers the redefinition matrix of the rule language.
func TestDefine_Policy(t *testing.T) {
	tbl := rules.NewTable()
	kg := unit.Base(unit.Kilogram)
	s := unit.Base(unit.Second)

	_, err := tbl.Define("R", false, constant(kg))
	require.NoError(t, err)

	_, err = tbl.Define("R", false, constant(s))
	assert.ErrorIs(t, err, diag.ErrRuleConflict, "non-forced redefinition is rejected")

	_, err = tbl.Define("R", true, constant(s))
	require.NoError(t, err, "forced redefinition of a soft rule succeeds")
	r, _ := tbl.Lookup("R")
	assert.Equal(t, s, r.Unit)
	assert.True(t, r.Force)

	_, err = tbl.Define("R", true, constant(kg))
	assert.ErrorIs(t, err, diag.ErrRuleConflict, "forced rules are final")

	_, err = tbl.Define("kg", true, constant(kg))
	assert.ErrorIs(t, err, diag.ErrRuleConflict)
}

// TestDefine_OldBindingHiddenDuringEval ensures eval cannot see the symbol
// being redefined.
func TestDefine_OldBindingHiddenDuringEval(t *testing.T) {
	tbl := rules.NewTable()
	_, err := tbl.Define("X", false, constant(unit.Base(unit.Meter)))
	require.NoError(t, err)

	_, err = tbl.Define("X", true, func() (unit.Unit, error) {
		u, _, err := tbl.Resolve("X")
		return u, err
	})
	assert.ErrorIs(t, err, diag.ErrUnknownSymbol)
}

// TestDefine_FailureRestoresTable checks atomicity of a failed redefinition.
func TestDefine_FailureRestoresTable(t *testing.T) {
	tbl := rules.NewTable()
	for _, sym := range []string{"A", "B", "C"} {
		_, err := tbl.Add(sym+"x", unit.Base(unit.Ampere), false)
		require.NoError(t, err)
	}
	before := tbl.Rules()

	boom := errors.New("boom")
	_, err := tbl.Define("Bx", true, func() (unit.Unit, error) { return unit.Unit{}, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, tbl.Rules(), "table must be unchanged after a failed definition")

	_, err = tbl.Define("", false, constant(unit.New()))
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, err = tbl.Define("Q", false, nil)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

//----------------------------------------------------------------------------//
// Resolve
//----------------------------------------------------------------------------//

func TestResolve(t *testing.T) {
	tbl := rules.NewTable()

	cases := []struct {
		sym    string
		dim    unit.Dimension
		factor float64
		prefix float64
	}{
		{"m", unit.Meter, 1, 1},
		{"mm", unit.Meter, 1, 1e-3},
		{"mol", unit.Mole, 1, 1},
		{"kmol", unit.Mole, 1, 1e3},
		{"kg", unit.Kilogram, 1, 1},
		{"mg", unit.Kilogram, 1e-3, 1e-3},
		{"ucd", unit.Kilogram, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.sym, func(t *testing.T) {
			u, p, err := tbl.Resolve(tc.sym)
			if tc.prefix == 0 {
				assert.ErrorIs(t, err, diag.ErrUnknownSymbol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, u.Exps[tc.dim])
			assert.Equal(t, tc.factor, u.Factor)
			assert.Equal(t, tc.prefix, p)
		})
	}

	_, _, err := tbl.Resolve("")
	assert.ErrorIs(t, err, diag.ErrUnknownSymbol)
	_, _, err = tbl.Resolve("k")
	assert.ErrorIs(t, err, diag.ErrUnknownSymbol)
	_, _, err = tbl.Resolve("xm")
	assert.ErrorIs(t, err, diag.ErrUnknownSymbol)
}

// TestResolve_ExactBeatsPrefix locks in prefix-as-fallback ordering.
func TestResolve_ExactBeatsPrefix(t *testing.T) {
	tbl := rules.NewTable()
	_, err := tbl.Add("day", unit.Base(unit.Second).Scaled(86400), false)
	require.NoError(t, err)
	_, err = tbl.Add("ay", unit.Base(unit.Lemming), false)
	require.NoError(t, err)

	u, p, err := tbl.Resolve("day")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, 1, u.Exps[unit.Second])
}

//----------------------------------------------------------------------------//
// Reduce / Reset / Close
//----------------------------------------------------------------------------//

func TestReduce_FirstMatchWins(t *testing.T) {
	tbl := rules.NewTable()
	n := unit.New().With(unit.Kilogram, 1).With(unit.Meter, 1).With(unit.Second, -2)
	_, err := tbl.Add("N", n, false)
	require.NoError(t, err)
	_, err = tbl.Add("kN", n.Scaled(1e3), false)
	require.NoError(t, err)

	r, ok := tbl.Reduce(n.Scaled(42))
	require.True(t, ok)
	assert.Equal(t, "N", r.Symbol)

	r, ok = tbl.Reduce(unit.Base(unit.Kilogram).Scaled(5))
	require.True(t, ok)
	assert.Equal(t, "kg", r.Symbol, "base tier is preferred over the gram alias")

	_, ok = tbl.Reduce(unit.New().With(unit.Kelvin, 3))
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	tbl := rules.NewTable()
	_, err := tbl.Add("N", unit.Base(unit.Kilogram), true)
	require.NoError(t, err)

	require.NoError(t, tbl.Reset())
	_, ok := tbl.Lookup("N")
	assert.False(t, ok)
	_, ok = tbl.Lookup(rules.GramSymbol)
	assert.True(t, ok)
	assert.Equal(t, int(unit.NumDimensions)+1, tbl.Len())
}

func TestClose(t *testing.T) {
	tbl := rules.NewTable()
	require.NoError(t, tbl.Close())
	require.NoError(t, tbl.Close(), "double close is a no-op")
	assert.True(t, tbl.Closed())

	_, err := tbl.Add("N", unit.New(), false)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, _, err = tbl.Resolve("m")
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
	_, ok := tbl.Lookup("m")
	assert.False(t, ok)
	assert.Nil(t, tbl.Rules())
	assert.Zero(t, tbl.Len())
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "base", rules.TierBase.String())
	assert.Equal(t, "builtin", rules.TierBuiltin.String())
	assert.Equal(t, "dynamic", rules.TierDynamic.String())
	assert.Equal(t, "unknown", rules.Tier(9).String())
}
