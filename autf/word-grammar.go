package autf

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// WordExpr is either an integer tuple "(1, 2, -1)" / "[1, 2, -1]" or a run of generator powers "abAB", "a^3 B^-2".
type WordExpr struct {
	Ints    *IntSeq      `parser:"  @@"`
	Factors []*LetterPow `parser:"| @@*"`
}

type IntSeq struct {
	Letters []int `parser:"(\"[\" | \"(\") (@Int (\",\" @Int)*)? \",\"? (\"]\" | \")\")"`
}

type LetterPow struct {
	Name  string `parser:"@Gen"`
	Power *int   `parser:"(\"^\" @Int)?"`
}

var sWordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Gen", Pattern: `[A-Za-z]`},
	{Name: "Punct", Pattern: `[\[\](),^]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseWordExpr = participle.MustBuild[WordExpr](
	participle.Lexer(sWordLexer),
)

// Input is a caller supplied word normalized to Letters, remembering how it was written.
type Input struct {
	Word     Word
	Rank     int
	Alphabet *Alphabet // set when the input was written with letters
}

// ParseInput reads a word expression and infers the rank.
//
// Letter expressions use CompactAlphabet (the distinct letters present, in sorted order).
// Integer tuples use the smallest rank containing every letter.
func ParseInput(expr string) (Input, error) {
	Xexpr, err := parseExpr(expr)
	if err != nil {
		return Input{}, err
	}

	var in Input
	if Xexpr.Ints != nil {
		for i, li := range Xexpr.Ints.Letters {
			if li == 0 || li > MaxRank || li < -MaxRank {
				return Input{}, errors.Wrapf(ErrInvalidWord, "letter %d at position %d", li, i)
			}
		}
		in.Word = MustWord(MaxRank, Xexpr.Ints.Letters...)
		in.Rank = in.Word.MinRank()
	} else {
		names := strings.Builder{}
		for _, fi := range Xexpr.Factors {
			names.WriteString(fi.Name)
		}
		alpha := CompactAlphabet(names.String())
		in.Alphabet = &alpha
		in.Rank = alpha.Rank()
		in.Word, err = Xexpr.letterWord(alpha)
		if err != nil {
			return Input{}, err
		}
	}
	return in, nil
}

// ParseWordExpr reads a word expression in a free group of the given rank; letters are read using alpha.
func ParseWordExpr(rank int, alpha Alphabet, expr string) (Word, error) {
	Xexpr, err := parseExpr(expr)
	if err != nil {
		return nil, err
	}
	if Xexpr.Ints != nil {
		return NewWord(rank, Xexpr.Ints.Letters...)
	}
	w, err := Xexpr.letterWord(alpha)
	if err != nil {
		return nil, err
	}
	return w, w.Validate(rank)
}

// Format writes w the same way this Input was written.
func (in Input) Format(w Word) string {
	if in.Alphabet != nil {
		if str, err := in.Alphabet.Format(w); err == nil {
			return str
		}
	}
	return w.String()
}

func parseExpr(expr string) (*WordExpr, error) {
	if strings.TrimSpace(expr) == "" {
		return &WordExpr{}, nil
	}
	Xexpr, err := sParseWordExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%q: %v", expr, err)
	}
	return Xexpr, nil
}

func (Xexpr *WordExpr) letterWord(alpha Alphabet) (Word, error) {
	var w Word
	for _, fi := range Xexpr.Factors {
		li, ok := alpha.Letter(rune(fi.Name[0]))
		if !ok {
			return nil, errors.Wrapf(ErrInvalidWord, "generator %q is not in the alphabet", fi.Name)
		}
		power := 1
		if fi.Power != nil {
			power = *fi.Power
		}
		if power < 0 {
			li, power = -li, -power
		}
		if power > MaxExprLength-len(w) {
			return nil, errors.Wrapf(ErrInvalidWord, "expression expands beyond %d letters", MaxExprLength)
		}
		for i := 0; i < power; i++ {
			w = append(w, li)
		}
	}
	if w == nil {
		w = Word{}
	}
	return w, nil
}
