package libautf

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cashenchris/grouptheory/autf"
)

// LetterSet is a set of letters of a free group, two bits per generator.
type LetterSet uint64

func letterBit(li autf.Letter) LetterSet {
	pos := 2 * (li.Abs() - 1)
	if li < 0 {
		pos++
	}
	return 1 << pos
}

func (set LetterSet) Has(li autf.Letter) bool {
	return set&letterBit(li) != 0
}

func (set LetterSet) With(li autf.Letter) LetterSet {
	return set | letterBit(li)
}

func (set LetterSet) Without(li autf.Letter) LetterSet {
	return set &^ letterBit(li)
}

func (set LetterSet) Len() int {
	return bits.OnesCount64(uint64(set))
}

// WhiteheadAuto is a Whitehead automorphism of the second kind, defined by a letter X and a set Z containing X but not -X.
//
// It maps each letter y with |y| != |X| to one of y, X y, y X^-1, or X y X^-1 according to which of y and y^-1 lie in Z.
type WhiteheadAuto struct {
	X autf.Letter
	Z LetterSet
}

func NewWhiteheadAuto(x autf.Letter, z ...autf.Letter) WhiteheadAuto {
	wa := WhiteheadAuto{X: x, Z: letterBit(x)}
	for _, li := range z {
		if li != -x {
			wa.Z = wa.Z.With(li)
		}
	}
	return wa
}

// Apply returns the (unreduced) image of w.
func (wa WhiteheadAuto) Apply(w autf.Word) autf.Word {
	return wa.AppendImage(make(autf.Word, 0, len(w)+len(w)/2), w)
}

// AppendImage appends the (unreduced) image of w to dst.
func (wa WhiteheadAuto) AppendImage(dst, w autf.Word) autf.Word {
	x := wa.X
	xg := x.Abs()
	for _, y := range w {
		if y.Abs() == xg {
			dst = append(dst, y)
			continue
		}
		inZ, invInZ := wa.Z.Has(y), wa.Z.Has(-y)
		switch {
		case inZ && invInZ:
			dst = append(dst, x, y, -x)
		case inZ:
			dst = append(dst, x, y)
		case invInZ:
			dst = append(dst, y, -x)
		default:
			dst = append(dst, y)
		}
	}
	return dst
}

// Inverse returns the Whitehead automorphism undoing wa.
func (wa WhiteheadAuto) Inverse() WhiteheadAuto {
	return WhiteheadAuto{
		X: -wa.X,
		Z: wa.Z.Without(wa.X).With(-wa.X),
	}
}

// IsInner returns true if wa is conjugation by X (Z holds every letter except -X).
func (wa WhiteheadAuto) IsInner(rank int) bool {
	return wa.Z == allLetters(rank).Without(-wa.X)
}

// IsTrivial returns true if wa is the identity (Z = {X}).
func (wa WhiteheadAuto) IsTrivial() bool {
	return wa.Z == letterBit(wa.X)
}

func (wa WhiteheadAuto) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%d; {", wa.X)
	first := true
	for g := 1; g <= autf.MaxRank; g++ {
		for _, li := range [2]autf.Letter{autf.Letter(g), autf.Letter(-g)} {
			if wa.Z.Has(li) {
				if !first {
					b.WriteString(", ")
				}
				first = false
				fmt.Fprintf(&b, "%d", li)
			}
		}
	}
	b.WriteString("})")
	return b.String()
}

func allLetters(rank int) LetterSet {
	if rank >= autf.MaxRank {
		return ^LetterSet(0)
	}
	return LetterSet(1)<<(2*rank) - 1
}

// SignedPermutation is a Whitehead automorphism of the first kind: generator i maps to Images[i-1].
type SignedPermutation struct {
	Images []autf.Letter
}

func (sp SignedPermutation) Apply(w autf.Word) autf.Word {
	out := make(autf.Word, len(w))
	for i, y := range w {
		img := sp.Images[y.Abs()-1]
		if y < 0 {
			img = -img
		}
		out[i] = img
	}
	return out
}

func (sp SignedPermutation) Inverse() SignedPermutation {
	inv := SignedPermutation{
		Images: make([]autf.Letter, len(sp.Images)),
	}
	for i, img := range sp.Images {
		g := autf.Letter(i + 1)
		if img < 0 {
			g = -g
		}
		inv.Images[img.Abs()-1] = g
	}
	return inv
}

func (sp SignedPermutation) IsIdentity() bool {
	for i, img := range sp.Images {
		if img != autf.Letter(i+1) {
			return false
		}
	}
	return true
}

// AutomorphismSet enumerates the nontrivial Whitehead automorphisms of a free group of a given rank.
//
// By default only non-inner automorphisms of the second kind are produced.
// An AutomorphismSet holds no iteration state, so it can be enumerated any number of times.
type AutomorphismSet struct {
	Rank       int
	AllowInner bool // also produce inner automorphisms of the second kind
	BothKinds  bool // also produce signed permutations of generators (first kind)
}

// SecondKind returns every automorphism of the second kind in enumeration order.
//
// X runs over 1..rank and then -rank..-1; for each X, Z \ {X} runs over the nonempty subsets of letters of other generators.
func (set AutomorphismSet) SecondKind() []WhiteheadAuto {
	var autos []WhiteheadAuto
	set.forEachSecondKind(func(wa WhiteheadAuto) bool {
		autos = append(autos, wa)
		return true
	})
	return autos
}

func (set AutomorphismSet) forEachSecondKind(fn func(wa WhiteheadAuto) bool) bool {
	rank := set.Rank
	letters := make([]autf.Letter, 0, 2*rank)
	for g := 1; g <= rank; g++ {
		letters = append(letters, autf.Letter(g))
	}
	for g := rank; g >= 1; g-- {
		letters = append(letters, autf.Letter(-g))
	}

	others := make([]LetterSet, 0, 2*rank)
	for _, x := range letters {
		others = others[:0]
		for _, y := range letters {
			if y.Abs() != x.Abs() {
				others = append(others, letterBit(y))
			}
		}
		full := uint64(1)<<len(others) - 1
		for mask := uint64(1); mask <= full; mask++ {
			if mask == full && !set.AllowInner {
				continue
			}
			wa := WhiteheadAuto{X: x, Z: letterBit(x)}
			for rest := mask; rest != 0; rest &= rest - 1 {
				wa.Z |= others[bits.TrailingZeros64(rest)]
			}
			if !fn(wa) {
				return false
			}
		}
	}
	return true
}

// FirstKind returns every signed permutation of generators except the identity.
func (set AutomorphismSet) FirstKind() []SignedPermutation {
	var perms []SignedPermutation
	set.forEachFirstKind(func(sp SignedPermutation) bool {
		perms = append(perms, sp)
		return true
	})
	return perms
}

func (set AutomorphismSet) forEachFirstKind(fn func(sp SignedPermutation) bool) bool {
	rank := set.Rank
	perm := make([]autf.Letter, rank)
	for i := range perm {
		perm[i] = autf.Letter(i + 1)
	}
	for {
		for signs := uint64(0); signs < uint64(1)<<rank; signs++ {
			sp := SignedPermutation{
				Images: make([]autf.Letter, rank),
			}
			for i, g := range perm {
				if signs&(1<<i) != 0 {
					g = -g
				}
				sp.Images[i] = g
			}
			if sp.IsIdentity() {
				continue
			}
			if !fn(sp) {
				return false
			}
		}
		if !nextPermutation(perm) {
			return true
		}
	}
}

// nextPermutation advances perm to its lexicographic successor, returning false after the last.
func nextPermutation(perm []autf.Letter) bool {
	i := len(perm) - 2
	for i >= 0 && perm[i] >= perm[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(perm) - 1
	for perm[j] <= perm[i] {
		j--
	}
	perm[i], perm[j] = perm[j], perm[i]
	for lo, hi := i+1, len(perm)-1; lo < hi; lo, hi = lo+1, hi-1 {
		perm[lo], perm[hi] = perm[hi], perm[lo]
	}
	return true
}

// ForEach calls fn with each automorphism in the set until fn returns false.
// Automorphisms of the first kind, if included, come first.
func (set AutomorphismSet) ForEach(fn func(alpha autf.Automorphism) bool) {
	if set.BothKinds {
		if !set.forEachFirstKind(func(sp SignedPermutation) bool { return fn(sp) }) {
			return
		}
	}
	set.forEachSecondKind(func(wa WhiteheadAuto) bool { return fn(wa) })
}

// Count returns the number of automorphisms ForEach produces.
func (set AutomorphismSet) Count() int {
	count := 0
	set.ForEach(func(autf.Automorphism) bool {
		count++
		return true
	})
	return count
}
