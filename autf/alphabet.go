package autf

import (
	"strings"

	"github.com/pkg/errors"
)

// Alphabet names the generators of a free group with single letters: generator i is Names[i-1] and its inverse is the upper case form.
type Alphabet struct {
	Names []byte
}

// DefaultAlphabet maps a↦1, b↦2, ..., z↦26.
var DefaultAlphabet = func() Alphabet {
	names := make([]byte, 26)
	for i := range names {
		names[i] = 'a' + byte(i)
	}
	return Alphabet{Names: names}
}()

// CompactAlphabet returns the alphabet whose generators are the distinct letters appearing in s, in sorted order.
func CompactAlphabet(s string) Alphabet {
	var seen [26]bool
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			seen[r-'a'] = true
		}
	}
	names := make([]byte, 0, 26)
	for i, ok := range seen {
		if ok {
			names = append(names, 'a'+byte(i))
		}
	}
	return Alphabet{Names: names}
}

// Rank returns the number of generators named by this alphabet.
func (a Alphabet) Rank() int {
	return len(a.Names)
}

// Letter maps a lower case name to its generator and an upper case name to its inverse.
func (a Alphabet) Letter(r rune) (Letter, bool) {
	lower := r
	sign := Letter(1)
	if r >= 'A' && r <= 'Z' {
		lower = r - 'A' + 'a'
		sign = -1
	}
	for i, name := range a.Names {
		if rune(name) == lower {
			return sign * Letter(i+1), true
		}
	}
	return 0, false
}

// Format writes w using this alphabet.
func (a Alphabet) Format(w Word) (string, error) {
	b := strings.Builder{}
	b.Grow(len(w))
	for i, li := range w {
		g := li.Abs()
		if g == 0 || g > len(a.Names) {
			return "", errors.Wrapf(ErrInvalidWord, "letter %d at position %d has no name in a rank %d alphabet", li, i, len(a.Names))
		}
		name := a.Names[g-1]
		if li < 0 {
			name = name - 'a' + 'A'
		}
		b.WriteByte(name)
	}
	return b.String(), nil
}
