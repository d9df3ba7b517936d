package autf_test

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewWord(t *testing.T) {
	w, err := autf.NewWord(2, 1, 2, -1, -2)
	require.NoError(t, err)
	require.Equal(t, autf.Word{1, 2, -1, -2}, w)

	for _, bad := range [][]int{{0}, {3}, {1, -3}} {
		_, err = autf.NewWord(2, bad...)
		require.True(t, errors.Is(err, autf.ErrInvalidWord), "letters %v", bad)
	}

	_, err = autf.NewWord(autf.MaxRank+1, 1)
	require.True(t, errors.Is(err, autf.ErrBadRank))
}

func TestReduction(t *testing.T) {
	tests := []struct {
		in     autf.Word
		free   autf.Word
		cyclic autf.Word
	}{
		{autf.Word{}, autf.Word{}, autf.Word{}},
		{autf.Word{1, -1}, autf.Word{}, autf.Word{}},
		{autf.Word{1, 2, -2, 3}, autf.Word{1, 3}, autf.Word{1, 3}},
		{autf.Word{3, 1, 2, -3}, autf.Word{3, 1, 2, -3}, autf.Word{1, 2}},
		{autf.Word{3, 1, 2, 1, -1, -2, -1, -3}, autf.Word{}, autf.Word{}},
		{autf.Word{-2, 1, 1, 2}, autf.Word{-2, 1, 1, 2}, autf.Word{1, 1}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.free, tt.in.FreeReduce(), "free reduce %v", tt.in)
		require.Equal(t, tt.cyclic, tt.in.CyclicReduce(), "cyclic reduce %v", tt.in)
		require.True(t, tt.in.CyclicReduce().IsCyclicallyReduced())
	}
}

func TestRotateInverse(t *testing.T) {
	w := autf.Word{1, 2, -1, -2, 3}
	require.Equal(t, autf.Word{-1, -2, 3, 1, 2}, w.Rotate(2))
	require.Equal(t, autf.Word{3, 1, 2, -1, -2}, w.Rotate(-1))
	require.Equal(t, w, w.Rotate(len(w)))
	require.Equal(t, autf.Word{-3, 2, 1, -2, -1}, w.Inverse())
	require.Equal(t, autf.Word{}, w.Product(w.Inverse()))
	require.Equal(t, autf.Word{1, 2, 2, 1}, autf.Word{1, 2}.Concat(autf.Word{2, 1}))

	// inputs are never modified
	require.Equal(t, autf.Word{1, 2, -1, -2, 3}, w)
}

func TestOrdering(t *testing.T) {
	require.Equal(t, -1, autf.Compare(autf.Word{-2, 1}, autf.Word{-1, -2}))
	require.Equal(t, -1, autf.Compare(autf.Word{-2}, autf.Word{-2, -2}))
	require.Equal(t, 1, autf.Compare(autf.Word{2}, autf.Word{-2, -2}))
	require.Equal(t, 0, autf.Compare(autf.Word{1, 2}, autf.Word{1, 2}))

	require.True(t, autf.ShortlexLess(autf.Word{2}, autf.Word{-2, -2}))
	require.False(t, autf.ShortlexLess(autf.Word{-1, -2}, autf.Word{-2, 1}))

	// keys sort like words
	a, b := autf.Word{-2, 1, 2}, autf.Word{-1, -2, -2}
	require.Less(t, a.Key(), b.Key())
	require.Equal(t, a, autf.WordFromKey([]byte(a.Key())))
}

func TestString(t *testing.T) {
	require.Equal(t, "(1, -2, 3)", autf.Word{1, -2, 3}.String())
	require.Equal(t, "()", autf.Word{}.String())
	require.Equal(t, 3, autf.Word{1, -3, 2}.MinRank())
}
