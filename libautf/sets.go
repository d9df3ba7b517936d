package libautf

import (
	"bytes"
	"hash/maphash"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/dgraph-io/badger/v3"
)

// NewWordSet returns a WordAdder backed by an in-memory LSM tree, suited to sets too large for a Go map.
func NewWordSet() autf.WordAdder {
	return &lsmWordSet{}
}

type lsmWordSet struct {
	db *badger.DB
}

func (set *lsmWordSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmWordSet) TryAddWord(w autf.Word) bool {
	set.autoOpen()

	var keyBuf [128]byte
	key := w.AppendKey(append(keyBuf[:0], 'w'))

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
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
	return added
}

// Close drops all added words.
func (set *lsmWordSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}

type dropDupes struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)
}

// NewDropDupes returns a WordAdder backed by a hash map whose keys are packed into pooled buffers.
func NewDropDupes(opts DropDupeOpts) autf.WordAdder {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

func (set *dropDupes) Reset() {
	set.bufPoolSz = 0
	for k := range set.hashMap {
		delete(set.hashMap, k)
	}
}

func (set *dropDupes) Close() {
	set.Reset()
	set.hashMap = nil
}

func (set *dropDupes) TryAddWord(w autf.Word) bool {
	var keyBuf [128]byte
	key := w.AppendKey(keyBuf[:0])

	set.hasher.Reset()
	set.hasher.Write(key)
	hash := set.hasher.Sum64()

	// open addressing on collision
	existing, found := set.hashMap[hash]
	for found {
		if bytes.Equal(existing, key) {
			return false
		}
		hash++
		existing, found = set.hashMap[hash]
	}

	pos := set.bufPoolSz
	itemLen := len(key)
	if pos+itemLen > cap(set.bufPool) {
		allocSz := set.opts.PoolSz
		if itemLen > allocSz {
			allocSz = itemLen
		}
		set.bufPool = make([]byte, allocSz)
		set.bufPoolSz = 0
		pos = 0
	}

	set.hashMap[hash] = append(set.bufPool[pos:pos], key...)
	set.bufPoolSz += itemLen
	return true
}
