package autf_test

import (
	"bytes"
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/stretchr/testify/require"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

type keySet map[string]struct{}

func (set keySet) TryAddWord(w autf.Word) bool {
	key := w.Key()
	if _, exists := set[key]; exists {
		return false
	}
	set[key] = struct{}{}
	return true
}

func (set keySet) Close() {}

func TestWordStream(t *testing.T) {
	out := &bufCloser{}
	alpha := autf.CompactAlphabet("ab")

	words := autf.StreamWords(
		autf.Word{1, 2},
		autf.Word{-1},
		autf.Word{1, 2},
		autf.Word{2, 2},
	).
		AddTo(keySet{}, autf.AddWordOpts{AutoCloseAdder: true}).
		Select(func(w autf.Word) bool { return len(w) == 2 }).
		Print(out, autf.PrintOpts{Label: "reps", Alphabet: &alpha}).
		Collect()

	require.Equal(t, []autf.Word{{1, 2}, {2, 2}}, words)
	require.True(t, out.closed)
	require.Equal(t, "reps,000001,ab\nreps,000002,bb\n", out.String())
}

func TestPrintCompressed(t *testing.T) {
	opts := autf.PrintOpts{Compress: true, Rank: 2}
	require.Equal(t, "1", opts.FormatWord(autf.Word{-2}))
	require.Equal(t, "(1, 2)", autf.DefaultPrintOpts.FormatWord(autf.Word{1, 2}))
}
