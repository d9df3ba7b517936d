package libautf

import (
	"context"
	"sync"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// Window is a half-open lexicographic range [Start, End) of words of one length; nil bounds are open.
type Window struct {
	Start autf.Word
	End   autf.Word
}

// Windows splits the words of the given rank and length that begin with -rank into consecutive windows, one per possible second letter.
func Windows(rank, length int) []Window {
	if length < 2 || rank < 1 {
		return []Window{{}}
	}
	r := autf.Letter(rank)
	var starts []autf.Word
	for v := -r; v < r; v++ {
		if v == 0 {
			continue
		}
		start := make(autf.Word, length)
		fillLetter(start, -r)
		start[1] = v
		starts = append(starts, start)
	}

	wins := make([]Window, len(starts))
	for i := range starts {
		if i > 0 {
			wins[i].Start = starts[i]
		}
		if i+1 < len(starts) {
			wins[i].End = starts[i+1]
		}
	}
	return wins
}

// EnumCanonicalReps calls onRep with every representative GenerateAutRepsLowMem would produce, processing windows concurrently.
//
// If opts.Start or opts.End is set, that single window is processed.  onRep calls are serialized but arrive in no particular order.
// If ctx is cancelled, the representatives already passed to onRep remain valid and ctx.Err() is returned.
// opts.Progress is not called since windows advance independently.
func EnumCanonicalReps(ctx context.Context, opts EnumOpts, onRep func(w autf.Word)) error {
	if err := opts.check(); err != nil {
		return err
	}

	wins := []Window{{Start: opts.Start, End: opts.End}}
	if opts.Start == nil && opts.End == nil {
		wins = Windows(opts.Rank, opts.Length)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, win := range wins {
		i, win := i, win
		g.Go(func() error {
			wopts := opts
			wopts.Start, wopts.End = win.Start, win.End
			wopts.Progress = nil

			numReps := 0
			var canceled error
			cw := newComponentWalker(wopts.SearchOpts)
			err := EnumCandidates(wopts, func(w autf.Word) bool {
				if canceled = gctx.Err(); canceled != nil {
					return false
				}
				if cw.isCanonical(w) {
					numReps++
					mu.Lock()
					onRep(w.Clone())
					mu.Unlock()
				}
				return true
			})
			if err == nil {
				err = canceled
			}
			klog.V(1).Infof("window %d (%v..%v): %d reps", i, win.Start, win.End, numReps)
			return err
		})
	}
	return errors.WithStack(g.Wait())
}
