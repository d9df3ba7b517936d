package libautf

import (
	"github.com/cashenchris/grouptheory/autf"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// CanonicalRepresentative returns the shortlex least word in the orbit of w under Aut(F)
// (and, unless opts.NoInversion is set, in the orbit of w^-1).
func CanonicalRepresentative(opts SearchOpts, w autf.Word) (autf.Word, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	if err := w.Validate(opts.Rank); err != nil {
		return nil, err
	}
	if len(w) == 0 {
		return autf.Word{}, nil
	}
	wmin := MinimalRepresentative(opts.Rank, w)
	return ShortlexMin(ReducedLevelSet(opts, wmin))
}

// IsCanonicalRepresentative returns true if w is the shortlex least word in its orbit, as CanonicalRepresentative would return.
//
// If skipChecks is set, w is assumed to be Whitehead minimal and SLPCI canonical; if it is not, the result is unspecified.
// The reduced level set of w is expanded only until a vertex preceding w is found.
func IsCanonicalRepresentative(opts SearchOpts, w autf.Word, skipChecks bool) (bool, error) {
	if err := opts.check(); err != nil {
		return false, err
	}
	if err := w.Validate(opts.Rank); err != nil {
		return false, err
	}
	if !skipChecks {
		if !opts.oracle().IsWhiteheadMinimal(opts.Rank, w) {
			return false, nil
		}
		if !IsSLPCIMinimal(opts.Rank, w, opts.NoInversion) {
			return false, nil
		}
	}
	return newComponentWalker(opts).isCanonical(w), nil
}

func (cw *componentWalker) isCanonical(w autf.Word) bool {
	return cw.expand(w, func(v, u autf.Word, isNew bool) bool {
		return !isNew || !autf.ShortlexLess(u, w)
	})
}

// Classify tags w with both minimality flags.
func Classify(opts SearchOpts, w autf.Word) (Candidate, error) {
	if err := opts.check(); err != nil {
		return Candidate{}, err
	}
	if err := w.Validate(opts.Rank); err != nil {
		return Candidate{}, err
	}
	return Candidate{
		Word:               w,
		IsSLPCIMinimal:     IsSLPCIMinimal(opts.Rank, w, opts.NoInversion),
		IsWhiteheadMinimal: opts.oracle().IsWhiteheadMinimal(opts.Rank, w),
	}, nil
}

// ShortlexMin returns the shortlex least of the given words.
func ShortlexMin(words []autf.Word) (autf.Word, error) {
	if len(words) == 0 {
		return nil, errors.Wrap(autf.ErrEmptyInput, "ShortlexMin")
	}
	best := words[0]
	for _, w := range words[1:] {
		if autf.ShortlexLess(w, best) {
			best = w
		}
	}
	return best, nil
}

// Component is one orbit's reduced level set.
type Component struct {
	Rep   autf.Word   // shortlex least vertex
	Verts []autf.Word // shortlex order
}

// GenerateComponents partitions a pool of Whitehead minimal, SLPCI canonical words of one length into orbit components,
// calling onComponent once per component until it returns false.
//
// Each pool word lies in exactly one reported component and no vertex is expanded twice.
// The whole pool is held in memory.
func GenerateComponents(opts SearchOpts, pool []autf.Word, onComponent func(comp Component) bool) error {
	if err := opts.check(); err != nil {
		return err
	}

	remaining := redblacktree.NewWithStringComparator()
	for _, w := range pool {
		if err := w.Validate(opts.Rank); err != nil {
			return err
		}
		remaining.Put(w.Key(), w)
	}
	klog.V(1).Infof("rank %d: partitioning %d candidates", opts.Rank, remaining.Size())

	cw := newComponentWalker(opts)
	numComps := 0
	for !remaining.Empty() {
		node := remaining.Left()
		seed := node.Value.(autf.Word)
		remaining.Remove(node.Key)

		cw.expand(seed, func(v, u autf.Word, isNew bool) bool {
			if isNew {
				remaining.Remove(u.Key())
			}
			return true
		})

		comp := Component{
			Verts: cw.verts(),
		}
		comp.Rep = comp.Verts[0]
		numComps++
		klog.V(2).Infof("component %d: rep %v, %d vertices, %d remaining", numComps, comp.Rep, len(comp.Verts), remaining.Size())
		if !onComponent(comp) {
			break
		}
	}
	klog.V(1).Infof("rank %d: %d components", opts.Rank, numComps)
	return nil
}

// GenerateAutReps calls onRep with one representative per Aut(F) orbit of words whose minimal length is opts.Length,
// until onRep returns false.
//
// Every candidate is generated and held in memory, then partitioned by GenerateComponents; each representative is its component's shortlex least word.
func GenerateAutReps(opts EnumOpts, onRep func(w autf.Word) bool) error {
	var pool []autf.Word
	err := EnumCandidates(opts, func(w autf.Word) bool {
		pool = append(pool, w.Clone())
		return true
	})
	if err != nil {
		return err
	}
	return GenerateComponents(opts.SearchOpts, pool, func(comp Component) bool {
		return onRep(comp.Rep)
	})
}

// GenerateAutRepsLowMem produces the same representatives as GenerateAutReps but tests each candidate on its own,
// holding at most one component in memory.  Representatives arrive in lexicographic order.
//
// Respects opts.Start and opts.End, so disjoint windows can be processed independently.
func GenerateAutRepsLowMem(opts EnumOpts, onRep func(w autf.Word) bool) error {
	cw := newComponentWalker(opts.SearchOpts)
	return EnumCandidates(opts, func(w autf.Word) bool {
		if cw.isCanonical(w) {
			return onRep(w.Clone())
		}
		return true
	})
}
