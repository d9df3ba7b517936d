package autf

import (
	"fmt"
	"sync"
)

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
	closeOnce    sync.Once
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		for cat := range ctx.openCatalogs {
			go cat.Close()
		}
		ctx.mu.Unlock()
	})
}

// AppendKey appends the defining info about a run to the given buffer.
//
// Field order is such that, lexicographically, runs sort by rank, then length, then inversion mode.
func (spec RunSpec) AppendKey(prefix []byte) []byte {
	flags := byte(0)
	if spec.NoInversion {
		flags = 1
	}
	return append(prefix,
		byte(spec.Rank),
		byte(spec.Length>>8),
		byte(spec.Length),
		flags,
	)
}

func (spec RunSpec) String() string {
	mode := "inv"
	if spec.NoInversion {
		mode = "noinv"
	}
	return fmt.Sprintf("rank%d-len%d-%s", spec.Rank, spec.Length, mode)
}

// FormatWord writes w according to opts.
func (opts *PrintOpts) FormatWord(w Word) string {
	if opts.Compress {
		val, err := Codec{Rank: opts.Rank}.EncodeShortlex(w)
		if err == nil {
			return fmt.Sprintf("%d", val)
		}
	}
	if opts.Alphabet != nil {
		if str, err := opts.Alphabet.Format(w); err == nil {
			return str
		}
	}
	return w.String()
}
