package libautf

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/stretchr/testify/require"
)

func TestAutomorphismCounts(t *testing.T) {
	tests := []struct {
		set   AutomorphismSet
		count int
	}{
		{AutomorphismSet{Rank: 1}, 0},
		{AutomorphismSet{Rank: 1, BothKinds: true}, 1},
		{AutomorphismSet{Rank: 2}, 8},
		{AutomorphismSet{Rank: 2, AllowInner: true}, 12},
		{AutomorphismSet{Rank: 2, AllowInner: true, BothKinds: true}, 19},
		{AutomorphismSet{Rank: 3}, 84},
		{AutomorphismSet{Rank: 3, AllowInner: true, BothKinds: true}, 47 + 90},
	}
	for _, tt := range tests {
		require.Equal(t, tt.count, tt.set.Count(), "%+v", tt.set)

		// re-enumerable
		require.Equal(t, tt.count, tt.set.Count(), "%+v", tt.set)
	}
}

func TestWhiteheadAutoApply(t *testing.T) {
	wa := NewWhiteheadAuto(1, 2)
	require.Equal(t, autf.Word{1, 2, 1}, wa.Apply(autf.Word{2, 1}))
	require.Equal(t, autf.Word{-2, -1, -1}, wa.Apply(autf.Word{-2, -1}))

	both := NewWhiteheadAuto(-1, 2, -2)
	require.Equal(t, autf.Word{-1, 2, 1, 1}, both.Apply(autf.Word{2, 1}))

	require.False(t, wa.IsInner(2))
	require.True(t, both.IsInner(2))
	require.True(t, NewWhiteheadAuto(2).IsTrivial())
	require.Equal(t, "(1; {1, 2})", wa.String())
}

func TestAutomorphismInverses(t *testing.T) {
	words := []autf.Word{
		{1, 2, -1, -2},
		{3, 1, 1, -2, 3},
		{-3, -3, 2},
	}
	set := AutomorphismSet{Rank: 3, AllowInner: true}
	for _, wa := range set.SecondKind() {
		inv := wa.Inverse()
		require.True(t, inv.Z.Has(inv.X) && !inv.Z.Has(-inv.X))
		for _, w := range words {
			require.Equal(t, w, inv.Apply(wa.Apply(w)).FreeReduce(), "%v on %v", wa, w)
		}
	}
	for _, sp := range set.FirstKind() {
		require.False(t, sp.IsIdentity())
		for _, w := range words {
			require.Equal(t, w, sp.Inverse().Apply(sp.Apply(w)))
		}
	}
}

func TestSecondKindOrder(t *testing.T) {
	autos := AutomorphismSet{Rank: 2}.SecondKind()
	require.Len(t, autos, 8)
	var xs []autf.Letter
	for _, wa := range autos {
		xs = append(xs, wa.X)
		require.False(t, wa.IsInner(2))
		require.False(t, wa.IsTrivial())
	}
	require.Equal(t, []autf.Letter{1, 1, 2, 2, -2, -2, -1, -1}, xs)
}
