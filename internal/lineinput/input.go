// Package lineinput reads line-oriented input through a queue of named
// streams, tracking a name:line location for user feedback.
package lineinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in an input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input reads lines sequentially through a Queue of one or more input
// streams. Streams that implement a Name() string method keep that
// name in reported locations; streams that implement io.Closer are
// closed as they drain.
type Input struct {
	Queue []io.Reader

	sc  *bufio.Scanner
	cl  io.Closer
	loc Location
}

// ReadLine returns the next input line, without its terminator, along
// with its location; io.EOF once every queued stream is exhausted.
func (in *Input) ReadLine() (string, Location, error) {
	for {
		if in.sc == nil && !in.next() {
			return "", in.loc, io.EOF
		}
		if in.sc.Scan() {
			in.loc.Line++
			return in.sc.Text(), in.loc, nil
		}
		err := in.sc.Err()
		in.drop()
		if err != nil {
			return "", in.loc, err
		}
	}
}

func (in *Input) next() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.sc = bufio.NewScanner(r)
	in.cl, _ = r.(io.Closer)
	in.loc = Location{Name: nameOf(r)}
	return true
}

func (in *Input) drop() {
	in.sc = nil
	if in.cl != nil {
		in.cl.Close()
		in.cl = nil
	}
}

// Named wraps a reader with a name for location reporting, keeping any
// io.Closer implementation intact.
func Named(name string, r io.Reader) io.Reader {
	nr := named{Reader: r, name: name}
	if cl, ok := r.(io.Closer); ok {
		return namedCloser{named: nr, Closer: cl}
	}
	return nr
}

type named struct {
	io.Reader
	name string
}

func (nr named) Name() string { return nr.name }

type namedCloser struct {
	named
	io.Closer
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
