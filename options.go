package main

import (
	"io"
	"strings"

	"gocat/internal/flushio"
	"gocat/internal/lineinput"
)

type PodOption interface{ apply(pod *Pod) }

// PodOptions combines any number of options into one, skipping nils.
func PodOptions(opts ...PodOption) PodOption { return podOptions(opts) }

type podOptions []PodOption

func (opts podOptions) apply(pod *Pod) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(pod)
		}
	}
}

var defaults = []PodOption{
	withOutput(io.Discard),
}

func (pod *Pod) apply(opts ...PodOption) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(pod)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(pod)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(pod *Pod) {
	pod.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type spaceQuotaOption int
type timeQuotaOption int
type preludeOption struct{}

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withSpaceQuota(n int) spaceQuotaOption { return spaceQuotaOption(n) }
func withTimeQuota(n int) timeQuotaOption   { return timeQuotaOption(n) }

func withSource(name, src string) inputOption {
	return inputOption{lineinput.Named(name, strings.NewReader(src))}
}

func (i inputOption) apply(pod *Pod) {
	pod.in.Queue = append(pod.in.Queue, i.Reader)
	if cl, ok := i.Reader.(io.Closer); ok {
		pod.closers = append(pod.closers, cl)
	}
}

func (o outputOption) apply(pod *Pod) {
	if pod.out != nil {
		pod.out.Flush()
	}
	pod.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(pod *Pod) {
	pod.out = flushio.WriteFlushers(pod.out, flushio.NewWriteFlusher(o.Writer))
}

func (n spaceQuotaOption) apply(pod *Pod) { pod.spaceQuota = int(n) }
func (n timeQuotaOption) apply(pod *Pod)  { pod.timeQuota = int(n) }
func (preludeOption) apply(pod *Pod)      { pod.prelude = true }
