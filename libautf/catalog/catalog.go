package catalog

import (
	"runtime"
	"sync"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey                        => CatalogState

	'n', RunSpec key                        => RunState
	...

	'r', RunSpec key, Word key              => (empty)
	...

A RunSpec key is (rank, length (2 bytes, big endian), flags) so runs sort by rank, then length.
A Word key maps each letter to a byte preserving letter order, so the reps of a run iterate in lexicographic order.

***/

const (
	kMajorVers = 2024
	kMinorVers = 1

	kRunStatePrefix = 'n'
	kRepPrefix      = 'r'
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a db wrapper for a catalog of Aut(F) orbit representatives
type catalog struct {
	ctx        autf.CatalogContext
	readOnly   bool
	mu         sync.Mutex
	stateDirty bool
	state      CatalogState
	runs       map[autf.RunSpec]*runEntry
	db         *badger.DB
}

type runEntry struct {
	RunState
	dirty bool
}

func OpenCatalog(ctx autf.CatalogContext, opts autf.CatalogOpts) (autf.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
		runs:     make(map[autf.RunSpec]*runEntry),
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(autf.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	if ctx != nil {
		ctx.AttachCatalog(cat)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(autf.ErrCatalogVersion, "found v%d.%d", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() {
	if cat.readOnly || cat.db == nil {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		if cat.stateDirty {
			stateBuf, err := proto.Marshal(&cat.state)
			if err != nil {
				return err
			}
			if err = txn.Set(gCatalogStateKey, stateBuf); err != nil {
				return err
			}
		}
		for spec, run := range cat.runs {
			if !run.dirty {
				continue
			}
			runBuf, err := proto.Marshal(&run.RunState)
			if err != nil {
				return err
			}
			if err = txn.Set(runStateKey(spec), runBuf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
	for _, run := range cat.runs {
		run.dirty = false
	}
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	cat.flushState()
	if cat.db != nil {
		err := cat.db.Close()
		cat.db = nil
		if cat.ctx != nil {
			cat.ctx.DetachCatalog(cat)
			cat.ctx = nil
		}
		return err
	}
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func runStateKey(spec autf.RunSpec) []byte {
	return spec.AppendKey([]byte{kRunStatePrefix})
}

func repPrefix(spec autf.RunSpec) []byte {
	return spec.AppendKey([]byte{kRepPrefix})
}

// run returns the cached RunState for spec, loading it as needed.  cat.mu must be held.
func (cat *catalog) run(spec autf.RunSpec) *runEntry {
	run := cat.runs[spec]
	if run != nil {
		return run
	}
	run = &runEntry{}
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runStateKey(spec))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &run.RunState)
		})
	})
	if err != nil && err != badger.ErrKeyNotFound {
		panic(err)
	}
	cat.runs[spec] = run
	return run
}

// TryAddRep adds w to the given run, returning true if it was not already present.
func (cat *catalog) TryAddRep(spec autf.RunSpec, w autf.Word) bool {
	if cat.readOnly {
		return false
	}

	var keyBuf [128]byte
	key := w.AppendKey(spec.AppendKey(append(keyBuf[:0], kRepPrefix)))

	cat.mu.Lock()
	defer cat.mu.Unlock()

	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			added = true
			return txn.Set(key, nil)
		}
		return err
	})
	if err != nil {
		panic(err)
	}

	if added {
		run := cat.run(spec)
		run.NumReps++
		run.dirty = true
		cat.state.TotalReps++
		cat.stateDirty = true
	}
	return added
}

func (cat *catalog) NumReps(spec autf.RunSpec) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.run(spec).NumReps)
}

// NumRepsTotal returns the number of representatives stored across all runs.
func (cat *catalog) NumRepsTotal() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.TotalReps)
}

// Select sends each representative of the given run to onHit in lexicographic order.
// onHit is not closed.
func (cat *catalog) Select(spec autf.RunSpec, onHit autf.OnWordHit) {
	prefix := repPrefix(spec)

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         prefix,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		key := it.Item().Key()
		onHit <- autf.WordFromKey(key[len(prefix):])
	}
}

func (cat *catalog) Checkpoint(spec autf.RunSpec) (at autf.Word, done bool, found bool) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	run := cat.run(spec)
	if run.HasCheckpoint {
		at = autf.WordFromKey(run.Checkpoint)
	}
	return at, run.Done, run.HasCheckpoint || run.Done
}

// SetCheckpoint records the enumerator position for the given run and flushes it along with all pending state.
func (cat *catalog) SetCheckpoint(spec autf.RunSpec, at autf.Word, done bool) error {
	if cat.readOnly {
		return autf.ErrReadOnly
	}
	cat.mu.Lock()
	defer cat.mu.Unlock()

	run := cat.run(spec)
	run.Done = done
	run.HasCheckpoint = at != nil
	run.Checkpoint = at.AppendKey(run.Checkpoint[:0])
	run.dirty = true
	cat.flushState()
	return nil
}

// Adder returns a WordAdder that adds to the given run.  Closing it flushes the catalog state but leaves the catalog open.
func (cat *catalog) Adder(spec autf.RunSpec) autf.WordAdder {
	return &runAdder{
		cat:  cat,
		spec: spec,
	}
}

type runAdder struct {
	cat  *catalog
	spec autf.RunSpec
}

func (adder *runAdder) TryAddWord(w autf.Word) bool {
	return adder.cat.TryAddRep(adder.spec, w)
}

func (adder *runAdder) Close() {
	adder.cat.mu.Lock()
	adder.cat.flushState()
	adder.cat.mu.Unlock()
}
