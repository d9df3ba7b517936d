package autf_test

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	for rank := 1; rank <= 4; rank++ {
		codec := autf.Codec{Rank: rank}
		prev := uint64(0)
		for val := uint64(0); val < 500; val++ {
			w, err := codec.DecodeShortlex(val)
			require.NoError(t, err)
			require.NoError(t, w.Validate(rank))

			back, err := codec.EncodeShortlex(w)
			require.NoError(t, err)
			require.Equal(t, val, back, "rank %d word %v", rank, w)

			// order preserving
			if val > 0 {
				pw, _ := codec.DecodeShortlex(prev)
				require.True(t, autf.ShortlexLess(pw, w))
			}
			prev = val
		}
	}
}

func TestCodecFixedLength(t *testing.T) {
	codec := autf.Codec{Rank: 2}
	w := autf.Word{-2, -1, 1, 2}
	val, err := codec.Encode(w)
	require.NoError(t, err)
	require.Equal(t, uint64(0*64+1*16+2*4+3), val)

	back, err := codec.Decode(val, len(w))
	require.NoError(t, err)
	require.Equal(t, w, back)

	first, _ := codec.Encode(autf.Word{-2, -2, -2})
	require.Equal(t, uint64(0), first)
}

func TestCodecOverflow(t *testing.T) {
	codec := autf.Codec{Rank: 2}
	long := make(autf.Word, 40)
	for i := range long {
		long[i] = 2
	}
	_, err := codec.EncodeShortlex(long)
	require.True(t, errors.Is(err, autf.ErrEncodingOverflow))

	_, err = autf.Codec{Rank: 0}.Encode(autf.Word{})
	require.True(t, errors.Is(err, autf.ErrBadRank))
}
