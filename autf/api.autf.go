package autf

const (

	// MaxRank is the largest free group rank supported.  Sets of letters are packed into a uint64 (two bits per generator).
	MaxRank = 32

	// MaxExprLength is the longest word a word expression may expand to.
	MaxExprLength = 4096

	// LetterKeyOffset is added to each Letter when forming a Word key so that byte order matches letter order.
	LetterKeyOffset = MaxRank + 1
)

// Letter is a generator (1..rank) or its formal inverse (-rank..-1) of a free group.
//
// Letters are ordered as integers: -2 < -1 < 1 < 2 ...
type Letter int8

// Word is an ordered sequence of nonzero Letters.
//
// Words are treated as values: every transformation returns a new Word and never modifies its receiver.
// The rank of the ambient free group is not an attribute of a Word and is always passed explicitly.
type Word []Letter

// Automorphism maps a Word to its (not yet reduced) image.
type Automorphism interface {
	Apply(w Word) Word
}

// MinimalityOracle decides Whitehead minimality.
type MinimalityOracle interface {

	// IsWhiteheadMinimal returns true if w is cyclically reduced and no Whitehead automorphism strictly reduces its cyclic length.
	IsWhiteheadMinimal(rank int, w Word) bool
}

// OnWordHit is a channel used to return Words meeting a set of selection criteria.
type OnWordHit chan<- Word

// WordAdder receives Words and reports which were new.
type WordAdder interface {

	// TryAddWord adds w if not already present, returning true if w was added.
	TryAddWord(w Word) bool

	// Close releases resources; subsequent calls to TryAddWord are invalid.
	Close()
}

// RunSpec identifies an enumeration run: all orbit representatives for a given rank and length.
type RunSpec struct {
	Rank        int
	Length      int
	NoInversion bool
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of orbit representatives, grouped by RunSpec.
type Catalog interface {

	// TryAddRep adds w as a representative for the given run.
	// If true is returned, w was not present and was added.
	TryAddRep(spec RunSpec, w Word) bool

	// NumReps returns the number of representatives stored for the given run.
	NumReps(spec RunSpec) int64

	// Select sends each stored representative of the given run to onHit, in shortlex order.
	Select(spec RunSpec, onHit OnWordHit)

	// Checkpoint returns the last recorded enumerator position for the given run.
	// If done is set, the run completed and no resume is needed.
	Checkpoint(spec RunSpec) (at Word, done bool, found bool)

	// SetCheckpoint records the enumerator position for the given run.
	SetCheckpoint(spec RunSpec, at Word, done bool) error

	// Adder returns a WordAdder that adds representatives to the given run.
	Adder(spec RunSpec) WordAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	Close() error
}

// PrintOpts specifies how words are printed
type PrintOpts struct {
	Label    string    // Prefix label
	Alphabet *Alphabet // If set, words print as letters; otherwise as integer tuples
	Compress bool      // If set, words print as their shortlex integer encoding
	Rank     int       // Rank used for Compress
}

// DefaultPrintOpts prints words as integer tuples.
var DefaultPrintOpts = PrintOpts{}
