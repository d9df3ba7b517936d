package catalog_test

import (
	"path"
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/cashenchris/grouptheory/libautf"
	"github.com/cashenchris/grouptheory/libautf/catalog"
	"github.com/stretchr/testify/require"
)

func selectAll(cat autf.Catalog, spec autf.RunSpec) []autf.Word {
	var words []autf.Word
	onHit := make(chan autf.Word)
	go func() {
		cat.Select(spec, onHit)
		close(onHit)
	}()
	for w := range onHit {
		words = append(words, w)
	}
	return words
}

func TestBasics(t *testing.T) {
	ctx := autf.NewCatalogContext()
	dbPath := path.Join(t.TempDir(), "TestBasics")

	cat, err := catalog.OpenCatalog(ctx, autf.CatalogOpts{DbPathName: dbPath})
	require.NoError(t, err)

	opts := libautf.EnumOpts{
		SearchOpts: libautf.SearchOpts{Rank: 2, NoInversion: true},
		Length:     6,
	}
	spec := opts.RunSpec()

	var reps []autf.Word
	require.NoError(t, libautf.GenerateAutRepsLowMem(opts, func(w autf.Word) bool {
		require.True(t, cat.TryAddRep(spec, w))
		require.False(t, cat.TryAddRep(spec, w))
		reps = append(reps, w)
		return true
	}))
	require.NoError(t, cat.SetCheckpoint(spec, nil, true))

	other := spec
	other.Length = 5
	require.True(t, cat.TryAddRep(other, autf.Word{-2, -2, -2, -2, -2}))
	require.NoError(t, cat.SetCheckpoint(other, autf.Word{-2, -1, 2, 1, 1}, false))

	require.Equal(t, int64(len(reps)), cat.NumReps(spec))
	require.Equal(t, reps, selectAll(cat, spec))
	require.NoError(t, cat.Close())

	// reopen read-only and check persisted state
	cat, err = catalog.OpenCatalog(ctx, autf.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	require.NoError(t, err)
	require.True(t, cat.IsReadOnly())
	require.Equal(t, int64(len(reps)), cat.NumReps(spec))
	require.Equal(t, int64(1), cat.NumReps(other))
	require.Equal(t, reps, selectAll(cat, spec))

	_, done, found := cat.Checkpoint(spec)
	require.True(t, found)
	require.True(t, done)

	at, done, found := cat.Checkpoint(other)
	require.True(t, found)
	require.False(t, done)
	require.Equal(t, autf.Word{-2, -1, 2, 1, 1}, at)

	_, _, found = cat.Checkpoint(autf.RunSpec{Rank: 3, Length: 2})
	require.False(t, found)

	require.ErrorIs(t, cat.SetCheckpoint(spec, nil, false), autf.ErrReadOnly)
	require.False(t, cat.TryAddRep(spec, autf.Word{-2}))

	ctx.Close()
	<-ctx.Done()
}

func TestInMemoryAdder(t *testing.T) {
	cat, err := catalog.OpenCatalog(nil, autf.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	spec := autf.RunSpec{Rank: 2, Length: 2}
	words := autf.StreamWords(autf.Word{-2, -2}, autf.Word{-2, 1}, autf.Word{-2, -2}).
		AddTo(cat.Adder(spec), autf.AddWordOpts{AutoCloseAdder: true}).
		Collect()
	require.Len(t, words, 2)
	require.Equal(t, int64(2), cat.NumReps(spec))

	_, err = catalog.OpenCatalog(nil, autf.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, autf.ErrBadCatalogParam)
}
