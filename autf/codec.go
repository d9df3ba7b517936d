package autf

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Codec is an order preserving bijection between Words over a rank r alphabet and integers.
//
// A letter maps to a base-2r digit: -r..-1 ↦ 0..r-1 and 1..r ↦ r..2r-1.
// Encode numbers words of a fixed length lexicographically; EncodeShortlex numbers all words in shortlex order.
type Codec struct {
	Rank int
}

func (c Codec) radix() uint64 {
	return uint64(2 * c.Rank)
}

func (c Codec) digit(li Letter) uint64 {
	if li < 0 {
		return uint64(int(li) + c.Rank)
	}
	return uint64(int(li) + c.Rank - 1)
}

func (c Codec) letter(d uint64) Letter {
	if int(d) < c.Rank {
		return Letter(int(d) - c.Rank)
	}
	return Letter(int(d) - c.Rank + 1)
}

func (c Codec) check() error {
	if c.Rank < 1 || c.Rank > MaxRank {
		return errors.Wrapf(ErrBadRank, "codec rank %d", c.Rank)
	}
	return nil
}

// Encode returns the index of w among words of length len(w), in lexicographic order.
func (c Codec) Encode(w Word) (uint64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if err := w.Validate(c.Rank); err != nil {
		return 0, err
	}
	radix := c.radix()
	val := uint64(0)
	for _, li := range w {
		hi, lo := bits.Mul64(val, radix)
		if hi != 0 {
			return 0, errors.Wrapf(ErrEncodingOverflow, "rank %d, length %d", c.Rank, len(w))
		}
		var carry uint64
		val, carry = bits.Add64(lo, c.digit(li), 0)
		if carry != 0 {
			return 0, errors.Wrapf(ErrEncodingOverflow, "rank %d, length %d", c.Rank, len(w))
		}
	}
	return val, nil
}

// Decode is the inverse of Encode for words of the given length.
func (c Codec) Decode(val uint64, length int) (Word, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	radix := c.radix()
	w := make(Word, length)
	for i := length - 1; i >= 0; i-- {
		w[i] = c.letter(val % radix)
		val /= radix
	}
	if val != 0 {
		return nil, errors.Wrapf(ErrEncodingOverflow, "value exceeds words of length %d", length)
	}
	return w, nil
}

// shortlexOffset returns the number of words shorter than length, i.e. sum of radix^k for k < length.
func (c Codec) shortlexOffset(length int) (uint64, bool) {
	radix := c.radix()
	sum, pow := uint64(0), uint64(1)
	for k := 0; k < length; k++ {
		var carry uint64
		sum, carry = bits.Add64(sum, pow, 0)
		if carry != 0 {
			return 0, false
		}
		hi, lo := bits.Mul64(pow, radix)
		if hi != 0 && k+1 < length {
			return 0, false
		}
		pow = lo
	}
	return sum, true
}

// EncodeShortlex returns the index of w among all words in shortlex order.
func (c Codec) EncodeShortlex(w Word) (uint64, error) {
	val, err := c.Encode(w)
	if err != nil {
		return 0, err
	}
	offset, ok := c.shortlexOffset(len(w))
	if !ok {
		return 0, errors.Wrapf(ErrEncodingOverflow, "rank %d, length %d", c.Rank, len(w))
	}
	sum, carry := bits.Add64(val, offset, 0)
	if carry != 0 {
		return 0, errors.Wrapf(ErrEncodingOverflow, "rank %d, length %d", c.Rank, len(w))
	}
	return sum, nil
}

// DecodeShortlex is the inverse of EncodeShortlex.
func (c Codec) DecodeShortlex(val uint64) (Word, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	radix := c.radix()
	length, count := 0, uint64(1)
	for val >= count {
		val -= count
		length++
		hi, lo := bits.Mul64(count, radix)
		if hi != 0 {
			// every remaining value fits within words of this length
			break
		}
		count = lo
	}
	return c.Decode(val, length)
}
