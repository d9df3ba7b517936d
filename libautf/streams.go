package libautf

import (
	"context"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/plan-systems/klog"
)

// StreamCandidates emits the output of EnumCandidates.
func StreamCandidates(opts EnumOpts) (*autf.WordStream, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	next := autf.NewWordStream()
	go func() {
		err := EnumCandidates(opts, func(w autf.Word) bool {
			next.PushWord(w)
			return true
		})
		if err != nil {
			klog.Errorf("StreamCandidates: %v", err)
		}
		next.Close()
	}()
	return next, nil
}

// StreamAutReps emits one representative per orbit, using GenerateAutReps or, if lowMem is set, GenerateAutRepsLowMem.
func StreamAutReps(opts EnumOpts, lowMem bool) (*autf.WordStream, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	gen := GenerateAutReps
	if lowMem {
		gen = GenerateAutRepsLowMem
	}
	next := autf.NewWordStream()
	go func() {
		err := gen(opts, func(w autf.Word) bool {
			next.Outlet <- w
			return true
		})
		if err != nil {
			klog.Errorf("StreamAutReps: %v", err)
		}
		next.Close()
	}()
	return next, nil
}

// StreamCanonicalReps emits the output of EnumCanonicalReps.
// If ctx is cancelled, the stream closes after the representatives found so far.
func StreamCanonicalReps(ctx context.Context, opts EnumOpts) (*autf.WordStream, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	next := autf.NewWordStream()
	go func() {
		err := EnumCanonicalReps(ctx, opts, func(w autf.Word) {
			next.Outlet <- w
		})
		if err != nil {
			klog.Warningf("StreamCanonicalReps: %v", err)
		}
		next.Close()
	}()
	return next, nil
}

// SelectMinimal forwards the words of stream that are Whitehead minimal.
func SelectMinimal(stream *autf.WordStream, opts SearchOpts) *autf.WordStream {
	oracle := opts.oracle()
	return stream.Select(func(w autf.Word) bool {
		return oracle.IsWhiteheadMinimal(opts.Rank, w)
	})
}

// SelectCanonical forwards the words of stream that are canonical orbit representatives.
// Input words are assumed to be SLPCI canonical and Whitehead minimal.
func SelectCanonical(stream *autf.WordStream, opts SearchOpts) *autf.WordStream {
	cw := newComponentWalker(opts)
	return stream.Select(cw.isCanonical)
}

// CanonicalizeStream maps each word of stream to its canonical representative.
func CanonicalizeStream(stream *autf.WordStream, opts SearchOpts) *autf.WordStream {
	return stream.Map(func(w autf.Word) autf.Word {
		rep, err := CanonicalRepresentative(opts, w)
		if err != nil {
			klog.Warningf("CanonicalizeStream: %v", err)
			return w
		}
		return rep
	})
}
