package libautf

import (
	"github.com/cashenchris/grouptheory/autf"
	"github.com/plan-systems/klog"
)

// Precandidates is an odometer over words of a fixed length that skips ranges of words that cannot be SLPCI canonical.
//
// After forming a word it looks for a subword (possibly wrapping, possibly reversed) whose ShortlexPermutationRep precedes the
// prefix of the same length.  Such a witness rules out every word sharing the prefix up to the subword's last index,
// so the odometer advances at that index instead of the last one.
// Every SLPCI canonical word in the window is produced, along with some words that are not.
type Precandidates struct {
	rank        int
	length      int
	noInversion bool
	start       autf.Word
	stop        autf.Word
	cur         autf.Word
	scratch     autf.Word
	index       int
	started     bool
	done        bool
}

// NewPrecandidates returns an odometer over [start, end); nil bounds denote the first and past-the-last word.
func NewPrecandidates(rank, length int, noInversion bool, start, end autf.Word) (*Precandidates, error) {
	opts := EnumOpts{
		SearchOpts: SearchOpts{Rank: rank, NoInversion: noInversion},
		Length:     length,
		Start:      start,
		End:        end,
	}
	if err := opts.check(); err != nil {
		return nil, err
	}

	it := &Precandidates{
		rank:        rank,
		length:      length,
		noInversion: noInversion,
		start:       start.Clone(),
		cur:         make(autf.Word, length),
		scratch:     make(autf.Word, length),
	}
	if end != nil {
		it.stop = end.Clone()
	} else {
		it.stop = make(autf.Word, length)
		for i := range it.stop {
			it.stop[i] = autf.Letter(rank)
		}
	}
	it.Reset()
	return it, nil
}

// Reset restarts the odometer at the start of its window.
func (it *Precandidates) Reset() {
	if it.start != nil {
		copy(it.cur, it.start)
	} else {
		for i := range it.cur {
			it.cur[i] = autf.Letter(-it.rank)
		}
	}
	it.index = it.length - 1
	it.started = false
	it.done = false
}

// Position returns the current odometer reading.
func (it *Precandidates) Position() autf.Word {
	return it.cur
}

// Next returns the next precandidate, or false once the window is exhausted.
// The returned Word is owned by the odometer and is only valid until the next call.
func (it *Precandidates) Next() (autf.Word, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		if it.length == 0 {
			it.done = true
			return autf.Word{}, true
		}
		if autf.Compare(it.cur, it.stop) >= 0 {
			it.done = true
			return nil, false
		}
		if it.start == nil || IsSLPCIMinimal(it.rank, it.cur, it.noInversion) {
			return it.cur, true
		}
	}

	n := it.length
	first := autf.Letter(-it.rank)
	for it.index > 0 && autf.Compare(it.cur, it.stop) < 0 {
		if !it.increment(it.index) {
			break
		}
		if autf.Compare(it.stop, it.cur) <= 0 || it.cur[0] != first {
			break
		}
		if it.cur[0] == -it.cur[n-1] {
			it.index = n - 1
			continue
		}
		if idx, found := it.findProblem(); found {
			it.index = idx
			continue
		}
		it.index = n - 1
		return it.cur, true
	}

	it.done = true
	return nil, false
}

// increment advances the odometer at the given index, stepping over values that would be zero or cancel
// with the previous letter.  Returns false if the carry reaches index 0, which is always -rank in a canonical word.
func (it *Precandidates) increment(index int) bool {
	w := it.cur
	n := len(w)
	r := autf.Letter(it.rank)
	for {
		if index == 0 {
			return false
		}
		v := w[index]
		switch {
		case v == r:
			fillLetter(w[index:], -r)
			index--
		case v == -1 || v+1 == -w[index-1]:
			w[index] = v + 1
		case v == r-1 && index < n-1:
			w[index] = v + 1
			fillLetter(w[index+1:], -r)
			index++
		default:
			w[index] = v + 1
			fillLetter(w[index+1:], -r)
			return true
		}
	}
}

func fillLetter(w autf.Word, li autf.Letter) {
	for i := range w {
		w[i] = li
	}
}

// findProblem returns the rightmost index of a subword proving the current word is not SLPCI canonical.
func (it *Precandidates) findProblem() (int, bool) {
	cur, n := it.cur, it.length
	rank := it.rank

	for RI := 1; RI < n; RI++ {
		for sublen := 2; sublen <= RI+1; sublen++ {
			if comparePermRep(rank, cur[RI+1-sublen:RI+1], cur[:sublen]) < 0 {
				return RI, true
			}
		}
		if !it.noInversion {
			rev := it.scratch[:RI+1]
			for i := 0; i <= RI; i++ {
				rev[i] = cur[RI-i]
			}
			if comparePermRep(rank, rev, cur[:RI+1]) < 0 {
				return RI, true
			}
		}
	}

	rot := it.scratch[:n]
	for LI := 1; LI < n; LI++ {
		copy(rot, cur[LI:])
		copy(rot[n-LI:], cur[:LI])
		if comparePermRep(rank, rot, cur) < 0 {
			return n - 1, true
		}
	}
	if !it.noInversion {
		for k := 1; k < n; k++ {
			// rot = rotation by k of cur reversed
			for i := 0; i < n; i++ {
				rot[i] = cur[n-1-(i+k)%n]
			}
			if comparePermRep(rank, rot, cur) < 0 {
				return n - 1, true
			}
		}
	}
	return 0, false
}

// EnumCandidates calls onCandidate with each word of length opts.Length in [opts.Start, opts.End) that is both
// SLPCI canonical and Whitehead minimal, in lexicographic order, until onCandidate returns false.
//
// The Word passed to onCandidate is only valid for the duration of the call.
func EnumCandidates(opts EnumOpts, onCandidate func(w autf.Word) bool) error {
	it, err := NewPrecandidates(opts.Rank, opts.Length, opts.NoInversion, opts.Start, opts.End)
	if err != nil {
		return err
	}
	oracle := opts.oracle()

	every := opts.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	numPre, numCand := 0, 0
	for {
		w, ok := it.Next()
		if !ok {
			break
		}
		numPre++
		if opts.Progress != nil && numPre%every == 0 && !opts.Progress(w) {
			break
		}
		if !IsSLPCIMinimal(opts.Rank, w, opts.NoInversion) || !oracle.IsWhiteheadMinimal(opts.Rank, w) {
			continue
		}
		numCand++
		klog.V(3).Infof("candidate %v", w)
		if !onCandidate(w) {
			break
		}
	}
	klog.V(1).Infof("rank %d, length %d: %d precandidates, %d candidates", opts.Rank, opts.Length, numPre, numCand)
	return nil
}
