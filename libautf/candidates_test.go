package libautf

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/stretchr/testify/require"
)

func collectCandidates(t *testing.T, opts EnumOpts) []autf.Word {
	var words []autf.Word
	require.NoError(t, EnumCandidates(opts, func(w autf.Word) bool {
		words = append(words, w.Clone())
		return true
	}))
	return words
}

// slowCandidates filters every reduced word of the given length.
func slowCandidates(opts EnumOpts) []autf.Word {
	var words []autf.Word
	GenerateWords(opts.Rank, opts.Length, func(w autf.Word) bool {
		if IsSLPCIMinimal(opts.Rank, w, opts.NoInversion) && (PeakReduction{}).IsWhiteheadMinimal(opts.Rank, w) {
			words = append(words, w.Clone())
		}
		return true
	})
	return words
}

func TestEnumCandidatesComplete(t *testing.T) {
	for _, noInversion := range []bool{false, true} {
		for rank, maxLen := range map[int]int{1: 5, 2: 7, 3: 5} {
			for length := 0; length <= maxLen; length++ {
				opts := EnumOpts{
					SearchOpts: SearchOpts{Rank: rank, NoInversion: noInversion},
					Length:     length,
				}
				require.Equal(t, slowCandidates(opts), collectCandidates(t, opts), "rank %d length %d", rank, length)
			}
		}
	}
}

func TestPrecandidatesEdges(t *testing.T) {
	it, err := NewPrecandidates(3, 0, false, nil, nil)
	require.NoError(t, err)
	w, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, autf.Word{}, w)
	_, ok = it.Next()
	require.False(t, ok)

	it, err = NewPrecandidates(3, 1, false, nil, nil)
	require.NoError(t, err)
	w, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, autf.Word{-3}, w)
	_, ok = it.Next()
	require.False(t, ok)

	// restartable
	it.Reset()
	w, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, autf.Word{-3}, w)
}

func TestPrecandidatesOrder(t *testing.T) {
	it, err := NewPrecandidates(2, 6, false, nil, nil)
	require.NoError(t, err)

	var prev autf.Word
	count := 0
	for {
		w, ok := it.Next()
		if !ok {
			break
		}
		require.Equal(t, autf.Letter(-2), w[0])
		require.True(t, w.IsFreelyReduced(), "%v", w)
		if prev != nil {
			require.Equal(t, -1, autf.Compare(prev, w))
		}
		prev = w.Clone()
		count++
	}

	// the odometer skips most of the 4*3^5 reduced words
	require.Less(t, count, 4*3*3*3*3*3/4)
}

func TestEnumCandidatesWindows(t *testing.T) {
	opts := EnumOpts{
		SearchOpts: SearchOpts{Rank: 3},
		Length:     5,
	}
	all := collectCandidates(t, opts)

	var joined []autf.Word
	for _, win := range Windows(3, 5) {
		wopts := opts
		wopts.Start, wopts.End = win.Start, win.End
		joined = append(joined, collectCandidates(t, wopts)...)
	}
	require.Equal(t, all, joined)

	// arbitrary window
	start, end := autf.Word{-3, -2, 1, 1, 2}, autf.Word{-3, 1, -3, -2, -2}
	wopts := opts
	wopts.Start, wopts.End = start, end
	var want []autf.Word
	for _, w := range all {
		if autf.Compare(start, w) <= 0 && autf.Compare(w, end) < 0 {
			want = append(want, w)
		}
	}
	require.Equal(t, want, collectCandidates(t, wopts))
}

func TestWindows(t *testing.T) {
	require.Equal(t, []Window{{}}, Windows(2, 1))

	wins := Windows(2, 3)
	require.Len(t, wins, 3)
	require.Nil(t, wins[0].Start)
	require.Equal(t, autf.Word{-2, -1, -2}, wins[0].End)
	require.Equal(t, autf.Word{-2, -1, -2}, wins[1].Start)
	require.Equal(t, autf.Word{-2, 1, -2}, wins[1].End)
	require.Equal(t, autf.Word{-2, 1, -2}, wins[2].Start)
	require.Nil(t, wins[2].End)
}

func TestEnumOptsCheck(t *testing.T) {
	_, err := NewPrecandidates(2, 3, false, autf.Word{-2, -2}, nil)
	require.ErrorIs(t, err, autf.ErrBadWindow)

	_, err = NewPrecandidates(2, 2, false, nil, autf.Word{-2, 3})
	require.ErrorIs(t, err, autf.ErrInvalidWord)

	_, err = NewPrecandidates(autf.MaxRank+1, 2, false, nil, nil)
	require.ErrorIs(t, err, autf.ErrBadRank)
}

func TestEnumCandidatesProgressResume(t *testing.T) {
	opts := EnumOpts{
		SearchOpts:    SearchOpts{Rank: 2},
		Length:        7,
		ProgressEvery: 5,
	}
	all := collectCandidates(t, opts)
	require.NotEmpty(t, all)

	for _, stopAfter := range []int{1, 4, 20} {
		var at autf.Word
		calls := 0
		first := opts
		first.Progress = func(pos autf.Word) bool {
			calls++
			at = pos.Clone()
			return calls < stopAfter
		}
		got := collectCandidates(t, first)
		require.Equal(t, stopAfter, calls)

		rest := opts
		rest.Start = at
		got = append(got, collectCandidates(t, rest)...)
		require.Equal(t, all, got, "stopped after %d checkpoints", stopAfter)
	}
}
