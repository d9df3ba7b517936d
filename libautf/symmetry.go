package libautf

import "github.com/cashenchris/grouptheory/autf"

// permRenamer incrementally renames generators in order of first appearance: -rank, -rank+1, ...
type permRenamer struct {
	img  [autf.MaxRank + 1]autf.Letter // image of each positive generator, 0 if not yet seen
	next autf.Letter
}

func (pr *permRenamer) reset(rank int) {
	pr.img = [autf.MaxRank + 1]autf.Letter{}
	pr.next = autf.Letter(-rank)
}

func (pr *permRenamer) rename(li autf.Letter) autf.Letter {
	g := li.Abs()
	if pr.img[g] == 0 {
		if li > 0 {
			pr.img[g] = pr.next
		} else {
			pr.img[g] = -pr.next
		}
		pr.next++
	}
	if li > 0 {
		return pr.img[g]
	}
	return -pr.img[g]
}

// ShortlexPermutationRep returns the lexicographically least image of w under permutations and inversions of generators.
//
// The first letter of w is renamed -rank (and its inverse rank), the next letter of a new generator -rank+1, and so on.
// The result is constant on each permutation-inversion orbit.
// A rank below w.MinRank() is raised to w.MinRank().
func ShortlexPermutationRep(rank int, w autf.Word) autf.Word {
	return appendPermutationRep(make(autf.Word, 0, len(w)), atLeastMinRank(rank, w), w)
}

// atLeastMinRank keeps the renamed letters within -rank..rank, never reaching 0.
func atLeastMinRank(rank int, w autf.Word) int {
	if r := w.MinRank(); r > rank {
		return r
	}
	return rank
}

func appendPermutationRep(dst autf.Word, rank int, w autf.Word) autf.Word {
	var pr permRenamer
	pr.reset(rank)
	for _, li := range w {
		dst = append(dst, pr.rename(li))
	}
	return dst
}

// comparePermRep compares ShortlexPermutationRep(src) with w without forming it, stopping at the first difference.
// src and w are expected to have the same length.
func comparePermRep(rank int, src, w autf.Word) int {
	var pr permRenamer
	pr.reset(rank)
	for i, li := range src {
		if i >= len(w) {
			return 1
		}
		if ri := pr.rename(li); ri != w[i] {
			if ri < w[i] {
				return -1
			}
			return 1
		}
	}
	if len(src) < len(w) {
		return -1
	}
	return 0
}

// SLPCIRep returns the canonical form of w under rotation, permutation and inversion of generators
// and, unless noInversion is set, inversion of w itself.
//
// w is cyclically reduced first; the result is the least ShortlexPermutationRep over every rotation considered.
// A rank below w.MinRank() is raised to w.MinRank().
func SLPCIRep(rank int, w autf.Word, noInversion bool) autf.Word {
	rank = atLeastMinRank(rank, w)
	c := w.CyclicReduce()
	n := len(c)
	if n == 0 {
		return autf.Word{}
	}

	best := appendPermutationRep(make(autf.Word, 0, n), rank, c)
	scan := func(src autf.Word) {
		for i := 0; i < n; i++ {
			if comparePermRep(rank, src[i:i+n], best) < 0 {
				best = appendPermutationRep(best[:0], rank, src[i:i+n])
			}
		}
	}

	doubled := make(autf.Word, 0, 2*n)
	doubled = append(append(doubled, c...), c...)
	scan(doubled)
	if !noInversion {
		inv := c.Inverse()
		doubled = append(append(doubled[:0], inv...), inv...)
		scan(doubled)
	}
	return best
}

// IsSLPCIMinimal returns true if w is cyclically reduced and SLPCIRep(w) == w.
//
// It returns as soon as any rotation's image is found to precede w.
func IsSLPCIMinimal(rank int, w autf.Word, noInversion bool) bool {
	if !w.IsCyclicallyReduced() {
		return false
	}
	rank = atLeastMinRank(rank, w)
	n := len(w)
	if n == 0 {
		return true
	}
	doubled := make(autf.Word, 0, 2*n)
	doubled = append(append(doubled, w...), w...)
	for i := 0; i < n; i++ {
		if comparePermRep(rank, doubled[i:i+n], w) < 0 {
			return false
		}
	}
	if !noInversion {
		inv := w.Inverse()
		doubled = append(append(doubled[:0], inv...), inv...)
		for i := 0; i < n; i++ {
			if comparePermRep(rank, doubled[i:i+n], w) < 0 {
				return false
			}
		}
	}
	return true
}
