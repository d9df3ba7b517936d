package libautf

import (
	"sort"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// EdgeVisitor is called for each edge (v, u) found while expanding a level set; isNew is set the first time u is reached.
// Returning false stops the expansion.
type EdgeVisitor func(v, u autf.Word, isNew bool) bool

// componentWalker expands reduced level sets: vertices are SLPCI canonical words and edges are
// non-inner Whitehead automorphisms of the second kind followed by cyclic reduction and SLPCIRep.
type componentWalker struct {
	SearchOpts
	autos    []WhiteheadAuto
	frontier *arraystack.Stack
	visited  map[string]autf.Word
	imgBuf   autf.Word
}

func newComponentWalker(opts SearchOpts) *componentWalker {
	return &componentWalker{
		SearchOpts: opts,
		autos:      secondKind(opts.Rank, false),
		frontier:   arraystack.New(),
		visited:    make(map[string]autf.Word),
	}
}

func (cw *componentWalker) reset() {
	cw.frontier.Clear()
	for k := range cw.visited {
		delete(cw.visited, k)
	}
}

// expand explores the component containing seed, which must already be SLPCI canonical.
// Returns false if onEdge stopped the expansion.
func (cw *componentWalker) expand(seed autf.Word, onEdge EdgeVisitor) bool {
	cw.reset()
	cw.visited[seed.Key()] = seed
	cw.frontier.Push(seed)

	for !cw.frontier.Empty() {
		top, _ := cw.frontier.Pop()
		v := top.(autf.Word)
		for _, wa := range cw.autos {
			cw.imgBuf = wa.AppendImage(cw.imgBuf[:0], v)
			w := cw.imgBuf.CyclicReduce()
			if len(w) > len(v) {
				continue
			}
			u := SLPCIRep(cw.Rank, w, cw.NoInversion)
			key := u.Key()
			_, seen := cw.visited[key]
			if !seen {
				cw.visited[key] = u
				cw.frontier.Push(u)
			}
			if onEdge != nil && !onEdge(v, u, !seen) {
				return false
			}
		}
	}
	return true
}

// verts returns the vertices visited so far in lexicographic order.
func (cw *componentWalker) verts() []autf.Word {
	verts := make([]autf.Word, 0, len(cw.visited))
	for _, v := range cw.visited {
		verts = append(verts, v)
	}
	sortWords(verts)
	return verts
}

func sortWords(words []autf.Word) {
	sort.Slice(words, func(i, j int) bool {
		return autf.ShortlexLess(words[i], words[j])
	})
}

// ExpandComponent walks the reduced level set containing SLPCIRep(seed), calling onEdge (if non-nil) for every edge traversed.
//
// seed must be Whitehead minimal; this is not checked and the result is otherwise unspecified.
// Returns the vertices visited in shortlex order and whether the walk ran to completion.
func ExpandComponent(opts SearchOpts, seed autf.Word, onEdge EdgeVisitor) ([]autf.Word, bool) {
	cw := newComponentWalker(opts)
	completed := cw.expand(SLPCIRep(opts.Rank, seed, opts.NoInversion), onEdge)
	return cw.verts(), completed
}

// ReducedLevelSet returns the SLPCI canonical words of the same length as the Whitehead minimal word w that lie in its orbit.
//
// The result contains w only if w is itself SLPCI canonical.
func ReducedLevelSet(opts SearchOpts, w autf.Word) []autf.Word {
	verts, _ := ExpandComponent(opts, w, nil)
	return verts
}

// LevelSetGraph is a reduced level set with the edges found while expanding it.
type LevelSetGraph struct {
	Verts []autf.Word // shortlex order
	Edges [][2]int    // undirected edges as index pairs into Verts, lo < hi
}

// ReducedLevelSetGraph is ReducedLevelSet with the edges between distinct vertices kept.
func ReducedLevelSetGraph(opts SearchOpts, w autf.Word) *LevelSetGraph {
	type edge struct {
		v, u string
	}
	edges := make(map[edge]struct{})
	verts, _ := ExpandComponent(opts, w, func(v, u autf.Word, isNew bool) bool {
		vk, uk := v.Key(), u.Key()
		if vk == uk {
			return true
		}
		if uk < vk {
			vk, uk = uk, vk
		}
		edges[edge{vk, uk}] = struct{}{}
		return true
	})

	G := &LevelSetGraph{
		Verts: verts,
		Edges: make([][2]int, 0, len(edges)),
	}
	index := make(map[string]int, len(verts))
	for i, v := range verts {
		index[v.Key()] = i
	}
	for e := range edges {
		lo, hi := index[e.v], index[e.u]
		if lo > hi {
			lo, hi = hi, lo
		}
		G.Edges = append(G.Edges, [2]int{lo, hi})
	}
	sort.Slice(G.Edges, func(i, j int) bool {
		if G.Edges[i][0] != G.Edges[j][0] {
			return G.Edges[i][0] < G.Edges[j][0]
		}
		return G.Edges[i][1] < G.Edges[j][1]
	})
	return G
}

// LevelSet returns every word of the same length as the Whitehead minimal word w in its orbit
// (and, unless opts.NoInversion is set, in the orbit of w^-1), without symmetry reduction.
func LevelSet(opts SearchOpts, w autf.Word) []autf.Word {
	autos := AutomorphismSet{
		Rank:       opts.Rank,
		AllowInner: true,
		BothKinds:  true,
	}

	visited := make(map[string]autf.Word)
	frontier := arraystack.New()
	push := func(u autf.Word) {
		key := u.Key()
		if _, seen := visited[key]; !seen {
			visited[key] = u
			frontier.Push(u)
		}
	}

	seed := w.CyclicReduce()
	push(seed)
	if !opts.NoInversion {
		push(seed.Inverse())
	}

	for !frontier.Empty() {
		top, _ := frontier.Pop()
		v := top.(autf.Word)
		autos.ForEach(func(alpha autf.Automorphism) bool {
			if u := alpha.Apply(v).CyclicReduce(); len(u) <= len(v) {
				push(u)
			}
			return true
		})
	}

	verts := make([]autf.Word, 0, len(visited))
	for _, v := range visited {
		verts = append(verts, v)
	}
	sortWords(verts)
	return verts
}
