package autf

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NewWord forms a Word from integer letters, checking each is nonzero and within [-rank, rank].
func NewWord(rank int, letters ...int) (Word, error) {
	if rank < 0 || rank > MaxRank {
		return nil, errors.Wrapf(ErrBadRank, "rank %d not in 0..%d", rank, MaxRank)
	}
	w := make(Word, len(letters))
	for i, li := range letters {
		if li == 0 || li < -rank || li > rank {
			return nil, errors.Wrapf(ErrInvalidWord, "letter %d at position %d is not in ±1..%d", li, i, rank)
		}
		w[i] = Letter(li)
	}
	return w, nil
}

// MustWord is NewWord for literals known to be valid.
func MustWord(rank int, letters ...int) Word {
	w, err := NewWord(rank, letters...)
	if err != nil {
		panic(err)
	}
	return w
}

// Validate returns ErrInvalidWord if any letter of w is zero or out of range for the given rank.
func (w Word) Validate(rank int) error {
	for i, li := range w {
		if li == 0 || int(li) < -rank || int(li) > rank {
			return errors.Wrapf(ErrInvalidWord, "letter %d at position %d is not in ±1..%d", li, i, rank)
		}
	}
	return nil
}

// MinRank returns the smallest rank whose alphabet contains every letter of w.
func (w Word) MinRank() int {
	rank := 0
	for _, li := range w {
		if a := li.Abs(); a > rank {
			rank = a
		}
	}
	return rank
}

// Abs returns the generator index of this letter.
func (l Letter) Abs() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Clone returns a copy of w.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	dup := make(Word, len(w))
	copy(dup, w)
	return dup
}

// Equal returns true if w and v are the same sequence.
func (w Word) Equal(v Word) bool {
	if len(w) != len(v) {
		return false
	}
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}

// IsFreelyReduced returns true if no two adjacent letters are mutually inverse.
func (w Word) IsFreelyReduced() bool {
	for i := 1; i < len(w); i++ {
		if w[i] == -w[i-1] {
			return false
		}
	}
	return true
}

// IsCyclicallyReduced returns true if w is freely reduced and its first and last letters are not mutually inverse.
func (w Word) IsCyclicallyReduced() bool {
	n := len(w)
	if n > 1 && w[0] == -w[n-1] {
		return false
	}
	return w.IsFreelyReduced()
}

// FreeReduce cancels adjacent inverse pairs until none remain.
func (w Word) FreeReduce() Word {
	out := make(Word, 0, len(w))
	for _, li := range w {
		if n := len(out); n > 0 && out[n-1] == -li {
			out = out[:n-1]
		} else {
			out = append(out, li)
		}
	}
	return out
}

// CyclicReduce freely reduces w and then strips matching first/last pairs.
func (w Word) CyclicReduce() Word {
	out := w.FreeReduce()
	lo, hi := 0, len(out)
	for hi-lo > 1 && out[lo] == -out[hi-1] {
		lo++
		hi--
	}
	return out[lo:hi]
}

// Rotate returns the cyclic shift of w by k, i.e. w conjugated by its prefix of length k.
func (w Word) Rotate(k int) Word {
	n := len(w)
	out := make(Word, n)
	if n == 0 {
		return out
	}
	k %= n
	if k < 0 {
		k += n
	}
	copy(out, w[k:])
	copy(out[n-k:], w[:k])
	return out
}

// Inverse reverses and negates w.
func (w Word) Inverse() Word {
	n := len(w)
	out := make(Word, n)
	for i, li := range w {
		out[n-1-i] = -li
	}
	return out
}

// Concat returns w followed by v, without reduction.
func (w Word) Concat(v Word) Word {
	out := make(Word, 0, len(w)+len(v))
	out = append(out, w...)
	return append(out, v...)
}

// Product returns the freely reduced product w*v.
func (w Word) Product(v Word) Word {
	return w.Concat(v).FreeReduce()
}

// Key returns a string usable as a map key.  Keys of equal-length words sort in the same order as the words.
func (w Word) Key() string {
	var scrap [64]byte
	return string(w.AppendKey(scrap[:0]))
}

// AppendKey appends the key bytes of w to buf.
func (w Word) AppendKey(buf []byte) []byte {
	for _, li := range w {
		buf = append(buf, byte(int(li)+LetterKeyOffset))
	}
	return buf
}

// WordFromKey is the inverse of Word.Key.
func WordFromKey(key []byte) Word {
	w := make(Word, len(key))
	for i, b := range key {
		w[i] = Letter(int(b) - LetterKeyOffset)
	}
	return w
}

// Compare compares w and v lexicographically as integer sequences (a proper prefix sorts first).
func Compare(w, v Word) int {
	n := len(w)
	if len(v) < n {
		n = len(v)
	}
	for i := 0; i < n; i++ {
		if w[i] != v[i] {
			if w[i] < v[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(w) < len(v):
		return -1
	case len(w) > len(v):
		return 1
	}
	return 0
}

// ShortlexCompare orders words by length and then lexicographically.
func ShortlexCompare(w, v Word) int {
	if d := len(w) - len(v); d != 0 {
		if d < 0 {
			return -1
		}
		return 1
	}
	return Compare(w, v)
}

// ShortlexLess reports whether w precedes v in shortlex order.
func ShortlexLess(w, v Word) bool {
	return ShortlexCompare(w, v) < 0
}

// String prints w as an integer tuple, e.g. "(1, 2, -1, -2)".
func (w Word) String() string {
	b := strings.Builder{}
	b.Grow(4 * len(w))
	b.WriteByte('(')
	for i, li := range w {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(li)))
	}
	b.WriteByte(')')
	return b.String()
}
