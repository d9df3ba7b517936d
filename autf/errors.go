package autf

import "errors"

// Errors
var (
	ErrInvalidWord      = errors.New("invalid word")
	ErrEmptyInput       = errors.New("empty input")
	ErrBadRank          = errors.New("bad free group rank")
	ErrBadWindow        = errors.New("bad enumeration window")
	ErrEncodingOverflow = errors.New("word encoding overflows uint64")
	ErrParse            = errors.New("word expression parse failed")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrCatalogVersion   = errors.New("catalog version is incompatible")
	ErrReadOnly         = errors.New("catalog is in read-only mode")
)
