package autf

import (
	"fmt"
	"io"
	"strings"
)

type AddWordOpts struct {
	AutoCloseAdder bool
}

// WordStream is a pipeline stage whose Outlet closes when the stage completes.
type WordStream struct {
	Outlet chan Word
}

func NewWordStream() *WordStream {
	stream := &WordStream{
		Outlet: make(chan Word, 1),
	}
	return stream
}

// StreamWords emits copies of the given words and then closes.
func StreamWords(words ...Word) *WordStream {
	next := NewWordStream()

	go func() {
		for _, w := range words {
			next.Outlet <- w.Clone()
		}
		next.Close()
	}()

	return next
}

func (stream *WordStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *WordStream) PushWord(w Word) {
	stream.Outlet <- w.Clone()
}

func (stream *WordStream) PullWord() (Word, bool) {
	w, ok := <-stream.Outlet
	return w, ok
}

// PullAll drains the stream and returns the number of words seen.
func (stream *WordStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *WordStream) Collect() []Word {
	var words []Word
	for w := range stream.Outlet {
		words = append(words, w)
	}
	return words
}

func (stream *WordStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *WordStream {

	next := NewWordStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for w := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			buf.WriteString(opts.FormatWord(w))
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- w
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo forwards only the words that target reports as newly added.
func (stream *WordStream) AddTo(target WordAdder, opts AddWordOpts) *WordStream {
	next := NewWordStream()

	go func() {
		for w := range stream.Outlet {
			if target.TryAddWord(w) {
				next.Outlet <- w
			}
		}
		if opts.AutoCloseAdder {
			target.Close()
		}
		next.Close()
	}()

	return next
}

// Select forwards only the words for which keep returns true.
func (stream *WordStream) Select(keep func(w Word) bool) *WordStream {
	next := NewWordStream()

	go func() {
		for w := range stream.Outlet {
			if keep(w) {
				next.Outlet <- w
			}
		}
		next.Close()
	}()

	return next
}

// Map forwards the image of each word.
func (stream *WordStream) Map(fn func(w Word) Word) *WordStream {
	next := NewWordStream()

	go func() {
		for w := range stream.Outlet {
			next.Outlet <- fn(w)
		}
		next.Close()
	}()

	return next
}
