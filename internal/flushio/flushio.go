// Package flushio wraps io.Writer-s with explicit flushing, so that
// buffered output can be pushed out at interaction boundaries.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard is a WriteFlusher that drops all writes; it never needs
// flushing.
var Discard WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher adapts a writer: writers that already flush, or that
// are in-memory buffers, pass through with at most a noop Flush;
// anything else gets wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == io.Discard {
		return Discard
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlusher-s into one that
// writes into and flushes all of them.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	switch wfs := flatten(nil, wfs...); len(wfs) {
	case 0:
		return nil
	case 1:
		return wfs[0]
	default:
		return wfs
	}
}

type multiWriteFlusher []WriteFlusher

func (wfs multiWriteFlusher) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs multiWriteFlusher) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func flatten(all multiWriteFlusher, some ...WriteFlusher) multiWriteFlusher {
	for _, one := range some {
		if many, ok := one.(multiWriteFlusher); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}
