package libautf

import (
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/stretchr/testify/require"
)

func TestPeakReduction(t *testing.T) {
	oracle := PeakReduction{}
	tests := []struct {
		rank    int
		w       autf.Word
		minimal bool
	}{
		{2, autf.Word{}, true},
		{2, autf.Word{1}, true},
		{2, autf.Word{1, 1}, true},
		{2, autf.Word{1, 2}, false},
		{2, autf.Word{1, 1, 2}, false},
		{2, autf.Word{1, 2, -1, -2}, true},
		{2, autf.Word{1, -1}, false},
		{3, autf.Word{1, 2, 3}, false},
		{1, autf.Word{1, 1, 1}, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.minimal, oracle.IsWhiteheadMinimal(tt.rank, tt.w), "%v", tt.w)
	}
}

func TestMinimalRepresentative(t *testing.T) {
	require.Len(t, MinimalRepresentative(3, autf.Word{1, 2, 3}), 1)
	require.Len(t, MinimalRepresentative(3, autf.Word{3, 1, 2, 1, 2, 1, 2, -3}), 3)
	require.Equal(t, autf.Word{1, 2, -1, -2}, MinimalRepresentative(2, autf.Word{1, 2, -1, -2}))

	for _, w := range allCyclicWords(2, 5) {
		wmin := MinimalRepresentative(2, w)
		require.True(t, PeakReduction{}.IsWhiteheadMinimal(2, wmin), "%v", w)
		require.LessOrEqual(t, len(wmin), len(w))
	}
}
