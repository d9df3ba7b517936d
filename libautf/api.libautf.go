package libautf

import (
	"github.com/cashenchris/grouptheory/autf"
	"github.com/pkg/errors"
)

// SearchOpts specifies the ambient free group and symmetry used by orbit searches.
type SearchOpts struct {
	Rank        int
	NoInversion bool                  // if set, w and w^-1 lie in distinct classes
	Oracle      autf.MinimalityOracle // nil denotes PeakReduction
}

// EnumOpts specifies an enumeration of orbit representatives of a fixed length.
type EnumOpts struct {
	SearchOpts
	Length int

	// Start and End bound the enumeration to the half-open lexicographic window [Start, End).
	// Each must be nil or a Word of the given Length.
	Start autf.Word
	End   autf.Word

	Workers int // max concurrent windows for EnumCanonicalReps; 0 denotes unlimited

	// If set, Progress is called every ProgressEvery precandidates with the current enumerator position.
	// Every candidate lexicographically before that position has been fully processed.
	// Returning false stops the enumeration before the candidate at that position is processed.
	Progress      func(at autf.Word) bool
	ProgressEvery int // 0 denotes DefaultProgressEvery
}

const DefaultProgressEvery = 1 << 14

// Candidate is a Word tagged with both minimality flags.
type Candidate struct {
	Word               autf.Word
	IsSLPCIMinimal     bool
	IsWhiteheadMinimal bool
}

// IsCandidate is true when both minimality flags are set.
func (c Candidate) IsCandidate() bool {
	return c.IsSLPCIMinimal && c.IsWhiteheadMinimal
}

func (opts *SearchOpts) oracle() autf.MinimalityOracle {
	if opts.Oracle == nil {
		return PeakReduction{}
	}
	return opts.Oracle
}

func (opts *SearchOpts) check() error {
	if opts.Rank < 0 || opts.Rank > autf.MaxRank {
		return errors.Wrapf(autf.ErrBadRank, "rank %d not in 0..%d", opts.Rank, autf.MaxRank)
	}
	return nil
}

func (opts *EnumOpts) check() error {
	if err := opts.SearchOpts.check(); err != nil {
		return err
	}
	if opts.Length < 0 {
		return errors.Wrapf(autf.ErrBadWindow, "length %d", opts.Length)
	}
	if opts.Rank == 0 && opts.Length > 0 {
		return errors.Wrap(autf.ErrBadRank, "rank 0 has no nonempty words")
	}
	for _, bound := range []autf.Word{opts.Start, opts.End} {
		if bound == nil {
			continue
		}
		if len(bound) != opts.Length {
			return errors.Wrapf(autf.ErrBadWindow, "bound %v does not have length %d", bound, opts.Length)
		}
		if err := bound.Validate(opts.Rank); err != nil {
			return err
		}
	}
	return nil
}

func (opts EnumOpts) RunSpec() autf.RunSpec {
	return autf.RunSpec{
		Rank:        opts.Rank,
		Length:      opts.Length,
		NoInversion: opts.NoInversion,
	}
}
