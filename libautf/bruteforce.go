package libautf

import (
	"github.com/cashenchris/grouptheory/autf"
	"github.com/plan-systems/klog"
)

// GenerateWords calls onWord with every freely reduced word of the given rank and length, in lexicographic order,
// until onWord returns false.  The Word passed is only valid for the duration of the call.
func GenerateWords(rank, length int, onWord func(w autf.Word) bool) {
	if length == 0 {
		onWord(autf.Word{})
		return
	}
	if rank < 1 {
		return
	}
	r := autf.Letter(rank)
	w := make(autf.Word, length)
	fillLetter(w, -r)

	// next advances position i to the next letter not cancelling w[i-1], returning false on overflow.
	next := func(i int) bool {
		for v := w[i] + 1; v <= r; v++ {
			if v != 0 && (i == 0 || v != -w[i-1]) {
				w[i] = v
				return true
			}
		}
		return false
	}

	for {
		if w.IsFreelyReduced() {
			if !onWord(w) {
				return
			}
		}
		i := length - 1
		for i >= 0 && !next(i) {
			i--
		}
		if i < 0 {
			return
		}
		// smallest valid suffix
		for j := i + 1; j < length; j++ {
			w[j] = -r
			if w[j] == -w[j-1] {
				w[j] = -r + 1
				if w[j] == 0 {
					w[j] = 1
				}
			}
		}
	}
}

// CountOrbitsBruteForce counts the orbits of words whose minimal length is the given length by building the full graph:
// vertices are all Whitehead minimal words of that length and edges are all Whitehead automorphisms of both kinds
// (and inversion of the word, unless opts.NoInversion is set).
//
// This is exponentially slower than GenerateAutReps and exists to validate it.
func CountOrbitsBruteForce(opts SearchOpts, length int) (int, error) {
	if err := opts.check(); err != nil {
		return 0, err
	}
	oracle := opts.oracle()

	var verts []autf.Word
	index := make(map[string]int)
	GenerateWords(opts.Rank, length, func(w autf.Word) bool {
		if oracle.IsWhiteheadMinimal(opts.Rank, w) {
			index[w.Key()] = len(verts)
			verts = append(verts, w.Clone())
		}
		return true
	})

	uf := newUnionFind(len(verts))
	if !opts.NoInversion {
		for i, v := range verts {
			if j, ok := index[v.Inverse().Key()]; ok {
				uf.union(i, j)
			}
		}
	}
	AutomorphismSet{
		Rank:       opts.Rank,
		AllowInner: true,
		BothKinds:  true,
	}.ForEach(func(alpha autf.Automorphism) bool {
		for i, v := range verts {
			u := alpha.Apply(v).CyclicReduce()
			if len(u) > length {
				continue
			}
			if j, ok := index[u.Key()]; ok {
				uf.union(i, j)
			}
		}
		return true
	})

	klog.V(1).Infof("rank %d, length %d: %d minimal words, %d orbits", opts.Rank, length, len(verts), uf.count)
	return uf.count, nil
}

// VerifyCorrectCount returns the number of representatives GenerateAutReps produces and the number of orbits CountOrbitsBruteForce finds.
func VerifyCorrectCount(opts SearchOpts, length int) (numReps, numOrbits int, err error) {
	err = GenerateAutReps(EnumOpts{SearchOpts: opts, Length: length}, func(autf.Word) bool {
		numReps++
		return true
	})
	if err != nil {
		return 0, 0, err
	}
	numOrbits, err = CountOrbitsBruteForce(opts, length)
	return numReps, numOrbits, err
}

type unionFind struct {
	parent []int
	count  int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		count:  n,
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri != rj {
		uf.parent[ri] = rj
		uf.count--
	}
}
