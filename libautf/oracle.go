package libautf

import (
	"sync"

	"github.com/cashenchris/grouptheory/autf"
)

// PeakReduction decides Whitehead minimality directly: a cyclically reduced word is minimal
// iff no Whitehead automorphism of the second kind strictly reduces its cyclic length.
type PeakReduction struct{}

func (PeakReduction) IsWhiteheadMinimal(rank int, w autf.Word) bool {
	if !w.IsCyclicallyReduced() {
		return false
	}
	_, reduced := reduceOnce(rank, w)
	return !reduced
}

// MinimalRepresentative applies length reducing Whitehead automorphisms to w until none remain, returning a Whitehead minimal word in the orbit of w.
func MinimalRepresentative(rank int, w autf.Word) autf.Word {
	cur := w.CyclicReduce()
	for {
		next, reduced := reduceOnce(rank, cur)
		if !reduced {
			return cur
		}
		cur = next
	}
}

// reduceOnce returns the image of the cyclically reduced word w under the first automorphism that shortens it.
func reduceOnce(rank int, w autf.Word) (autf.Word, bool) {
	buf := make(autf.Word, 0, 3*len(w))
	for _, wa := range secondKind(rank, false) {
		buf = wa.AppendImage(buf[:0], w)
		if img := buf.CyclicReduce(); len(img) < len(w) {
			return img, true
		}
	}
	return nil, false
}

var gSecondKind struct {
	sync.Mutex
	byRank map[[2]int][]WhiteheadAuto
}

// secondKind returns a shared, read-only list of the automorphisms of the second kind for the given rank.
func secondKind(rank int, allowInner bool) []WhiteheadAuto {
	key := [2]int{rank, 0}
	if allowInner {
		key[1] = 1
	}
	gSecondKind.Lock()
	defer gSecondKind.Unlock()
	autos, ok := gSecondKind.byRank[key]
	if !ok {
		if gSecondKind.byRank == nil {
			gSecondKind.byRank = make(map[[2]int][]WhiteheadAuto)
		}
		autos = AutomorphismSet{Rank: rank, AllowInner: allowInner}.SecondKind()
		gSecondKind.byRank[key] = autos
	}
	return autos
}
