package pyautf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/cashenchris/grouptheory/libautf"
	"github.com/cashenchris/grouptheory/libautf/catalog"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyWordStreamType = py.NewType("WordStream", "autf.WordStream")
	pyCatalogType    = py.NewType("Catalog", "autf.Catalog")
	pyWorkspaceType  = py.NewType("Workspace", "collects active session resources and catalogs")
)

// pyWord is a word read from a python object, remembering the form it arrived in.
type pyWord struct {
	autf.Input
	form py.Object
}

func loadWord(obj py.Object) (pyWord, error) {
	var items []py.Object
	switch arg := obj.(type) {
	case py.String:
		in, err := autf.ParseInput(string(arg))
		if err != nil {
			return pyWord{}, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return pyWord{in, obj}, nil
	case py.Tuple:
		items = arg
	case *py.List:
		items = arg.Items
	default:
		return pyWord{}, py.ExceptionNewf(py.TypeError, "expected str, tuple or list (got %v)", obj.Type().Name)
	}

	ints := make([]int, len(items))
	for i, item := range items {
		val, err := py.GetInt(item)
		if err != nil {
			return pyWord{}, err
		}
		ints[i] = int(val)
	}
	w, err := autf.NewWord(autf.MaxRank, ints...)
	if err != nil {
		return pyWord{}, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyWord{
		Input: autf.Input{Word: w, Rank: w.MinRank()},
		form:  obj,
	}, nil
}

// export returns w in the same form as the word was given.
func (pw pyWord) export(w autf.Word) py.Object {
	switch pw.form.(type) {
	case py.String:
		return py.String(pw.Format(w))
	case *py.List:
		return py.NewListFromItems(wordItems(w))
	default:
		return py.Tuple(wordItems(w))
	}
}

func wordItems(w autf.Word) []py.Object {
	items := make([]py.Object, len(w))
	for i, li := range w {
		items[i] = py.Int(li)
	}
	return items
}

func kwBool(kwargs py.StringDict, key string, dst *bool) error {
	if val, ok := kwargs[key]; ok {
		b, isBool := val.(py.Bool)
		if !isBool {
			return py.ExceptionNewf(py.TypeError, "%s must be a bool", key)
		}
		*dst = bool(b)
	}
	return nil
}

func kwInt(kwargs py.StringDict, key string, dst *int) error {
	if val, ok := kwargs[key]; ok {
		i, err := py.GetInt(val)
		if err != nil {
			return err
		}
		*dst = int(i)
	}
	return nil
}

// searchOpts reads the rank and noinversion keywords; the rank defaults to that of the given word.
func searchOpts(pw pyWord, kwargs py.StringDict, noInversion bool) (libautf.SearchOpts, error) {
	opts := libautf.SearchOpts{
		Rank:        pw.Rank,
		NoInversion: noInversion,
	}
	if err := kwBool(kwargs, "noinversion", &opts.NoInversion); err != nil {
		return opts, err
	}
	if pw.Alphabet == nil {
		if err := kwInt(kwargs, "rank", &opts.Rank); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// canonical_rep(word, noinversion=True, rank=None)
func py_CanonicalRep(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "canonical_rep() takes one word")
	}
	pw, err := loadWord(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := searchOpts(pw, kwargs, true)
	if err != nil {
		return nil, err
	}
	rep, err := libautf.CanonicalRepresentative(opts, pw.Word)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	compress := false
	if err = kwBool(kwargs, "compress", &compress); err != nil {
		return nil, err
	}
	if compress {
		val, err := autf.Codec{Rank: opts.Rank}.EncodeShortlex(rep)
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return py.Int(val), nil
	}
	return pw.export(rep), nil
}

// is_canonical_rep(word, noinversion=True, skipchecks=False, rank=None)
func py_IsCanonicalRep(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "is_canonical_rep() takes one word")
	}
	pw, err := loadWord(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := searchOpts(pw, kwargs, true)
	if err != nil {
		return nil, err
	}
	skipChecks := false
	if err = kwBool(kwargs, "skipchecks", &skipChecks); err != nil {
		return nil, err
	}
	canon, err := libautf.IsCanonicalRepresentative(opts, pw.Word, skipChecks)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.NewBool(canon), nil
}

// slpci_rep(word, noinversion=False, rank=None)
func py_SLPCIRep(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "slpci_rep() takes one word")
	}
	pw, err := loadWord(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := searchOpts(pw, kwargs, false)
	if err != nil {
		return nil, err
	}
	if err = pw.Word.Validate(opts.Rank); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pw.export(libautf.SLPCIRep(opts.Rank, pw.Word, opts.NoInversion)), nil
}

func loadEnumOpts(args py.Tuple, kwargs py.StringDict, noInversion bool) (libautf.EnumOpts, error) {
	var rank, length int32
	err := py.LoadTuple(args, []interface{}{&rank, &length})
	if err != nil {
		return libautf.EnumOpts{}, err
	}
	opts := libautf.EnumOpts{
		SearchOpts: libautf.SearchOpts{
			Rank:        int(rank),
			NoInversion: noInversion,
		},
		Length: int(length),
	}
	if err = kwBool(kwargs, "noinversion", &opts.NoInversion); err != nil {
		return opts, err
	}
	if err = kwInt(kwargs, "workers", &opts.Workers); err != nil {
		return opts, err
	}
	return opts, nil
}

// reps(rank, length, noinversion=True, lowmem=False, workers=0) streams one representative per orbit.
func py_Reps(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	opts, err := loadEnumOpts(args, kwargs, true)
	if err != nil {
		return nil, err
	}
	lowMem := false
	if err = kwBool(kwargs, "lowmem", &lowMem); err != nil {
		return nil, err
	}
	var stream *autf.WordStream
	if opts.Workers > 0 {
		stream, err = libautf.StreamCanonicalReps(context.Background(), opts)
	} else {
		stream, err = libautf.StreamAutReps(opts, lowMem)
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapWordStream(stream, opts.Rank), nil
}

// candidates(rank, length, noinversion=False) streams words that are Whitehead minimal and SLPCI canonical.
func py_Candidates(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	opts, err := loadEnumOpts(args, kwargs, false)
	if err != nil {
		return nil, err
	}
	stream, err := libautf.StreamCandidates(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapWordStream(stream, opts.Rank), nil
}

// encode(rank, word) returns the shortlex index of word.
func py_Encode(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "encode() takes rank and word")
	}
	rank, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	pw, err := loadWord(args[1])
	if err != nil {
		return nil, err
	}
	val, err := autf.Codec{Rank: int(rank)}.EncodeShortlex(pw.Word)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Int(val), nil
}

// decode(rank, n) is the inverse of encode.
func py_Decode(module py.Object, args py.Tuple) (py.Object, error) {
	var rank int32
	var val int64
	err := py.LoadTuple(args, []interface{}{&rank, &val})
	if err != nil {
		return nil, err
	}
	if val < 0 {
		return nil, py.ExceptionNewf(py.ValueError, "decode() needs a non-negative value")
	}
	w, err := autf.Codec{Rank: int(rank)}.DecodeShortlex(uint64(val))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Tuple(wordItems(w)), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx autf.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{
			CatalogCtx: autf.NewCatalogContext(),
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := autf.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}
	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	autf.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func loadRunSpec(args py.Tuple, kwargs py.StringDict) (autf.RunSpec, error) {
	opts, err := loadEnumOpts(args, kwargs, true)
	return opts.RunSpec(), err
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

// Catalog.Select(rank, length, noinversion=True) streams the stored reps of a run.
func py_Catalog_Select(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	cat := self.(pyCatalog)
	spec, err := loadRunSpec(args, kwargs)
	if err != nil {
		return nil, err
	}
	next := autf.NewWordStream()
	go func() {
		cat.Select(spec, next.Outlet)
		next.Close()
	}()
	return wrapWordStream(next, spec.Rank), nil
}

func py_Catalog_NumReps(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	cat := self.(pyCatalog)
	spec, err := loadRunSpec(args, kwargs)
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumReps(spec)), nil
}

type wordStream struct {
	*autf.WordStream
	rank int
}

func (stream wordStream) Type() *py.Type {
	return pyWordStreamType
}

func wrapWordStream(stream *autf.WordStream, rank int) py.Object {
	return py.Object(wordStream{stream, rank})
}

func py_WordStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

func py_WordStream_Collect(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)
	words := stream.Collect()
	items := make([]py.Object, len(words))
	for i, w := range words {
		items[i] = py.Tuple(wordItems(w))
	}
	return py.NewListFromItems(items), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// WordStream.Print(label="", file="", letters=False, compress=False)
func py_WordStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(wordStream)
	opts := autf.DefaultPrintOpts
	opts.Rank = stream.rank

	if len(args) > 0 {
		if label, ok := args[0].(py.String); ok {
			opts.Label = string(label)
		}
	}
	if label, ok := kwargs["label"].(py.String); ok {
		opts.Label = string(label)
	}
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", atomic.AddInt32(&gOutCount, 1))
	}

	letters := false
	if err := kwBool(kwargs, "letters", &letters); err != nil {
		return nil, err
	}
	if letters {
		opts.Alphabet = &autf.DefaultAlphabet
	}
	if err := kwBool(kwargs, "compress", &opts.Compress); err != nil {
		return nil, err
	}

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if pathname, ok := kwargs["file"].(py.String); ok && len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(string(pathname)), 0700)

		file, err := os.OpenFile(string(pathname), os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapWordStream(next, stream.rank), nil
}

func py_WordStream_AddTo(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(wordStream)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() takes a Catalog, rank and length")
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", autf.ErrReadOnly)
	}
	spec, err := loadRunSpec(args[1:], kwargs)
	if err != nil {
		return nil, err
	}

	next := stream.AddTo(cat.Adder(spec), autf.AddWordOpts{AutoCloseAdder: true})
	return wrapWordStream(next, stream.rank), nil
}

func py_WordStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)

	// memory resident set that closes when the stream closes
	set := libautf.NewDropDupes(libautf.DropDupeOpts{})
	next := stream.AddTo(set, autf.AddWordOpts{AutoCloseAdder: true})
	return wrapWordStream(next, stream.rank), nil
}

func py_WordStream_Canonize(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(wordStream)
	opts := libautf.SearchOpts{
		Rank:        stream.rank,
		NoInversion: true,
	}
	if err := kwBool(kwargs, "noinversion", &opts.NoInversion); err != nil {
		return nil, err
	}
	next := libautf.CanonicalizeStream(stream.WordStream, opts)
	return wrapWordStream(next, stream.rank), nil
}

func init() {

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "streams the representatives stored for (rank, length)")
		pyCatalogType.Dict["NumReps"] = py.MustNewMethod("NumReps", py_Catalog_NumReps, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// WordStream
	{
		pyWordStreamType.Dict["Go"] = py.MustNewMethod("Go", py_WordStream_Go, 0, "counts the number of words output from the WordStream")
		pyWordStreamType.Dict["Collect"] = py.MustNewMethod("Collect", py_WordStream_Collect, 0, "returns the words output from the WordStream as a list of tuples")
		pyWordStreamType.Dict["Print"] = py.MustNewMethod("Print", py_WordStream_Print, 0, "prints each word from the WordStream")
		pyWordStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_WordStream_AddTo, 0, "")
		pyWordStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_WordStream_DropDupes, 0, "")
		pyWordStreamType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_WordStream_Canonize, 0, "maps each word to its canonical representative")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("canonical_rep", py_CanonicalRep, 0, "shortlex least word in the Aut(F) orbit of the given word"),
			py.MustNewMethod("is_canonical_rep", py_IsCanonicalRep, 0, "True if the given word is the shortlex least word in its Aut(F) orbit"),
			py.MustNewMethod("slpci_rep", py_SLPCIRep, 0, "least word under rotation, permutation and inversion"),
			py.MustNewMethod("reps", py_Reps, 0, "streams one representative per Aut(F) orbit of a given rank and length"),
			py.MustNewMethod("candidates", py_Candidates, 0, ""),
			py.MustNewMethod("encode", py_Encode, 0, ""),
			py.MustNewMethod("decode", py_Decode, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_RANK":    py.Int(autf.MaxRank),
			"READ_ONLY":   py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_autf",
				Doc:  "Aut(F) orbit representatives gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
