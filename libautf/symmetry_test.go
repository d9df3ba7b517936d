package libautf

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/stretchr/testify/require"
)

func allCyclicWords(rank, length int) []autf.Word {
	var words []autf.Word
	GenerateWords(rank, length, func(w autf.Word) bool {
		if w.IsCyclicallyReduced() {
			words = append(words, w.Clone())
		}
		return true
	})
	return words
}

func TestShortlexPermutationRep(t *testing.T) {
	require.Equal(t, autf.Word{-2, -1, 2, 1}, ShortlexPermutationRep(2, autf.Word{1, 2, -1, -2}))
	require.Equal(t, autf.Word{-3, -2, 3, 2}, ShortlexPermutationRep(3, autf.Word{3, 1, -3, -1}))
	require.Equal(t, autf.Word{-3, 3, -2}, ShortlexPermutationRep(3, autf.Word{-1, 1, 2}))
	require.Equal(t, autf.Word{}, ShortlexPermutationRep(2, autf.Word{}))

	// constant on permutation-inversion orbits
	w := autf.Word{1, 1, 2, -1, 2}
	for _, sp := range (AutomorphismSet{Rank: 2, BothKinds: true}).FirstKind() {
		require.Equal(t, ShortlexPermutationRep(2, w), ShortlexPermutationRep(2, sp.Apply(w)))
	}
}

func TestSLPCIRep(t *testing.T) {
	for _, noInversion := range []bool{false, true} {
		for length := 1; length <= 5; length++ {
			for _, w := range allCyclicWords(2, length) {
				rep := SLPCIRep(2, w, noInversion)
				require.Equal(t, rep, SLPCIRep(2, rep, noInversion), "idempotence %v", w)
				require.True(t, IsSLPCIMinimal(2, rep, noInversion))
				require.Equal(t, w.Equal(rep), IsSLPCIMinimal(2, w, noInversion), "minimality %v", w)

				for k := 1; k < length; k++ {
					require.Equal(t, rep, SLPCIRep(2, w.Rotate(k), noInversion), "rotation %v", w)
				}
				for _, sp := range (AutomorphismSet{Rank: 2, BothKinds: true}).FirstKind() {
					require.Equal(t, rep, SLPCIRep(2, sp.Apply(w), noInversion), "permutation %v", w)
				}
				if !noInversion {
					require.Equal(t, rep, SLPCIRep(2, w.Inverse(), noInversion), "inversion %v", w)
				}
			}
		}
	}
}

func TestSymmetryRankBelowWord(t *testing.T) {
	w := autf.Word{1, 2, 3, -2}
	require.Equal(t, ShortlexPermutationRep(3, w), ShortlexPermutationRep(1, w))
	require.Equal(t, SLPCIRep(3, w, false), SLPCIRep(0, w, false))
	require.Equal(t, IsSLPCIMinimal(3, w, true), IsSLPCIMinimal(2, w, true))
	for _, li := range SLPCIRep(1, w, true) {
		require.NotZero(t, li)
	}
}

func TestSLPCIRepEdges(t *testing.T) {
	require.Equal(t, autf.Word{}, SLPCIRep(2, autf.Word{}, false))
	require.Equal(t, autf.Word{}, SLPCIRep(2, autf.Word{1, -1}, false))
	require.Equal(t, autf.Word{-2}, SLPCIRep(2, autf.Word{2, 1, -2}, false))
	require.True(t, IsSLPCIMinimal(2, autf.Word{}, true))
	require.False(t, IsSLPCIMinimal(2, autf.Word{-2, 2}, true))
	require.False(t, IsSLPCIMinimal(2, autf.Word{-2, -1, 2}, true))

	// every single letter maps to -rank
	for _, li := range []autf.Letter{-3, -2, -1, 1, 2, 3} {
		require.Equal(t, autf.Word{-3}, SLPCIRep(3, autf.Word{li}, true))
	}
}
