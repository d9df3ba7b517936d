package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/cashenchris/grouptheory/libautf"
	"github.com/cashenchris/grouptheory/libautf/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	out := &bytes.Buffer{}
	root := newRootCmd(nil)
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestCanonCmd(t *testing.T) {
	out, err := execute(t, "canon", "abc")
	require.NoError(t, err)
	assert.Equal(t, "C\n", out)

	out, err = execute(t, "canon", "(3, 1, 2, -1, -3, -2)")
	require.NoError(t, err)
	assert.Equal(t, "(-3, -2, 3, 2)\n", out)

	out, err = execute(t, "canon", "--rank", "3", "(1, 2, -1, -2)")
	require.NoError(t, err)
	assert.Equal(t, "(-3, -2, 3, 2)\n", out)

	out, err = execute(t, "canon", "--compress", "(1)")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = execute(t, "canon", "--rank", "1", "(1, 2)")
	assert.ErrorIs(t, err, autf.ErrBadRank)

	_, err = execute(t, "canon", "a^")
	assert.ErrorIs(t, err, autf.ErrParse)
}

func TestIsCanonAndSLPCICmds(t *testing.T) {
	out, err := execute(t, "is-canon", "(-3, -2, 3, 2)")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, "is-canon", "abAB")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = execute(t, "slpci", "--inversion", "(1, 1, 2)")
	require.NoError(t, err)
	assert.Equal(t, "(-2, -2, -1)\n", out)
}

func TestLevelSetCmd(t *testing.T) {
	out, err := execute(t, "levelset", "--edges", "(1, 2, -1, -2)")
	require.NoError(t, err)
	rows := lines(out)
	require.NotEmpty(t, rows)
	assert.Equal(t, "0,(-2, -1, 2, 1)", rows[0])
}

func TestRepsCmd(t *testing.T) {
	var counts []string
	for _, args := range [][]string{
		{"reps", "-r", "2", "-n", "5", "--count"},
		{"reps", "-r", "2", "-n", "5", "--count", "--lowmem"},
		{"reps", "-r", "2", "-n", "5", "--count", "--workers", "3"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		counts = append(counts, strings.TrimSpace(out))
	}
	assert.Equal(t, counts[0], counts[1])
	assert.Equal(t, counts[0], counts[2])

	out, err := execute(t, "reps", "-r", "2", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "000001,(-2, -2)\n", out)

	out, err = execute(t, "reps", "-r", "2", "-n", "2", "--letters")
	require.NoError(t, err)
	assert.Equal(t, "000001,BB\n", out)

	_, err = execute(t, "reps", "-r", "99", "-n", "2")
	assert.ErrorIs(t, err, autf.ErrBadRank)
}

func TestRepsCatalog(t *testing.T) {
	dir := t.TempDir()
	pathname := filepath.Join(dir, "reps")

	first, err := execute(t, "reps", "-r", "2", "-n", "5", "--catalog", pathname, "--progress-every", "7")
	require.NoError(t, err)
	numReps := len(lines(first))

	plain, err := execute(t, "reps", "-r", "2", "-n", "5", "--lowmem")
	require.NoError(t, err)
	assert.Equal(t, plain, first)

	// a completed run adds nothing
	again, err := execute(t, "reps", "-r", "2", "-n", "5", "--catalog", pathname)
	require.NoError(t, err)
	assert.Empty(t, again)

	selected, err := execute(t, "select", "-r", "2", "-n", "5", "--catalog", pathname)
	require.NoError(t, err)
	assert.Len(t, lines(selected), numReps)

	_, err = execute(t, "select", "-r", "2", "-n", "5")
	assert.ErrorIs(t, err, autf.ErrBadCatalogParam)
}

func TestCandidatesCmd(t *testing.T) {
	out, err := execute(t, "candidates", "-r", "2", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "000001,(-2, -2)\n", out)
}

func TestVerifyCmd(t *testing.T) {
	out, err := execute(t, "verify", "-r", "2", "-n", "4")
	require.NoError(t, err)
	rows := lines(out)
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.True(t, strings.HasPrefix(row, "rank 2, length "), row)
	}
}

func TestEncodeDecodeCmds(t *testing.T) {
	out, err := execute(t, "encode", "-r", "2", "Ba")
	require.NoError(t, err)
	val := strings.TrimSpace(out)

	out, err = execute(t, "decode", "-r", "2", "--letters", val, "0")
	require.NoError(t, err)
	assert.Equal(t, "Ba\n\n", out)

	_, err = execute(t, "decode", "-r", "2", "x")
	assert.ErrorIs(t, err, autf.ErrParse)
}

func TestCatalogRepsResume(t *testing.T) {
	opts := libautf.EnumOpts{
		SearchOpts: libautf.SearchOpts{Rank: 2, NoInversion: true},
		Length:     7,
	}
	var full []autf.Word
	require.NoError(t, libautf.GenerateAutRepsLowMem(opts, func(w autf.Word) bool {
		full = append(full, w)
		return true
	}))
	require.Greater(t, len(full), 2)

	for _, stopAfter := range []int{1, len(full) / 2, len(full) - 1} {
		a := &app{
			Config: Config{Catalog: filepath.Join(t.TempDir(), "reps")},
		}
		opts.ProgressEvery = 3

		ctx, cancel := context.WithCancel(context.Background())
		var emitted []autf.Word
		err := a.catalogReps(ctx, opts, func(w autf.Word) {
			emitted = append(emitted, w)
			if len(emitted) == stopAfter {
				cancel()
			}
		})
		cancel()
		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, emitted, stopAfter)

		require.NoError(t, a.catalogReps(context.Background(), opts, func(w autf.Word) {
			emitted = append(emitted, w)
		}))
		assert.ElementsMatch(t, full, emitted, "stopped after %d reps", stopAfter)

		// a completed run adds nothing
		require.NoError(t, a.catalogReps(context.Background(), opts, func(w autf.Word) {
			t.Errorf("unexpected rep %v", w)
		}))

		cat, err := catalog.OpenCatalog(nil, autf.CatalogOpts{DbPathName: a.Catalog, ReadOnly: true})
		require.NoError(t, err)
		spec := opts.RunSpec()
		assert.EqualValues(t, len(full), cat.NumReps(spec))
		_, done, _ := cat.Checkpoint(spec)
		assert.True(t, done)

		stream := autf.NewWordStream()
		go func() {
			cat.Select(spec, stream.Outlet)
			stream.Close()
		}()
		assert.Equal(t, full, stream.Collect())
		require.NoError(t, cat.Close())
	}
}
