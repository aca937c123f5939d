package main

import (
	"context"
	"errors"
	"io"

	"gocat/internal/panicerr"
)

// New creates a pod with the given options applied over defaults. The
// embedded prelude, when requested, must load cleanly; failing to do so
// is a programming error and panics.
func New(opts ...PodOption) *Pod {
	var pod Pod
	pod.apply(opts...)
	pod.init()
	if pod.prelude {
		if err := pod.Load(defaultPrelude); err != nil {
			panic(err)
		}
	}
	return &pod
}

// Run evaluates queued session input line by line, echoing each
// result, until input is exhausted or the context expires. Bugs abort
// the session; any other evaluation error is reported inline and the
// session continues.
func (pod *Pod) Run(ctx context.Context) error {
	err := panicerr.Recover("pod", func() error {
		return pod.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func WithInput(r io.Reader) PodOption       { return withInput(r) }
func WithSource(name, src string) PodOption { return withSource(name, src) }
func WithOutput(w io.Writer) PodOption      { return withOutput(w) }
func WithTee(w io.Writer) PodOption         { return withTee(w) }
func WithSpaceQuota(capacity int) PodOption { return withSpaceQuota(capacity) }
func WithTimeQuota(fuel int) PodOption      { return withTimeQuota(fuel) }
func WithPrelude() PodOption                { return preludeOption{} }

func WithLogf(logfn func(mess string, args ...interface{})) PodOption { return withLogfn(logfn) }
