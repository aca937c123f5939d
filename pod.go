package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"gocat/internal/flushio"
	"gocat/internal/lineinput"
)

const wordPattern = `[a-z0-9-]+`

var (
	insertPattern = regexp.MustCompile(`^:(` + wordPattern + `)\s+(.*)$`)
	deletePattern = regexp.MustCompile(`^~(` + wordPattern + `)\s*$`)
)

const (
	defaultSpaceQuota = 4 * 1024
	defaultTimeQuota  = 1024
)

// Pod is a session: a heap, a dictionary of named bindings rooted in
// it, and the space/time quotas evaluation runs under. The dictionary
// entries are the only garbage collector roots; everything a pod
// evaluates that does not end up bound is collected after the
// evaluation that produced it.
type Pod struct {
	logging
	heap *heap
	tab  map[string]Pointer

	spaceQuota int
	timeQuota  int
	prelude    bool

	in      lineinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (pod *Pod) init() {
	if pod.spaceQuota == 0 {
		pod.spaceQuota = defaultSpaceQuota
	}
	if pod.timeQuota == 0 {
		pod.timeQuota = defaultTimeQuota
	}
	if pod.heap == nil {
		pod.heap = newHeap(pod.spaceQuota)
	}
	pod.heap.logfn = pod.logfn
	if pod.tab == nil {
		pod.tab = make(map[string]Pointer)
	}
	if pod.out == nil {
		pod.out = flushio.Discard
	}
}

// Close closes any owned input and output streams.
func (pod *Pod) Close() (err error) {
	for i := len(pod.closers) - 1; i >= 0; i-- {
		if cerr := pod.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Eval runs one line of session input: an insert command (":name
// value"), a delete command ("~name"), or a bare program. It returns
// the echo line, then marks every binding and sweeps, so that only the
// dictionary survives into the next evaluation.
func (pod *Pod) Eval(src string) (string, error) {
	pod.init()
	dst, err := pod.eval(src)
	// Collect even when evaluation failed, so that a program that
	// exhausted the heap does not poison every evaluation after it.
	if cerr := pod.collect(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return dst, nil
}

func (pod *Pod) eval(src string) (string, error) {
	var sb strings.Builder
	if m := insertPattern.FindStringSubmatch(src); m != nil {
		key, valueSrc := m[1], m[2]
		value, err := pod.heap.parse(valueSrc)
		if err != nil {
			return "", err
		}
		if value, err = pod.reduce(value); err != nil {
			return "", err
		}
		pod.tab[key] = value
		sb.WriteByte(':')
		sb.WriteString(key)
		sb.WriteByte(' ')
		if err := pod.heap.quote(value, &sb); err != nil {
			return "", err
		}
	} else if m := deletePattern.FindStringSubmatch(src); m != nil {
		delete(pod.tab, m[1])
		sb.WriteByte('~')
		sb.WriteString(m[1])
	} else {
		source, err := pod.heap.parse(src)
		if err != nil {
			return "", err
		}
		target, err := pod.reduce(source)
		if err != nil {
			return "", err
		}
		if err := pod.heap.quote(target, &sb); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (pod *Pod) reduce(root Pointer) (Pointer, error) {
	return reduce(pod.heap, root, pod.tab, pod.timeQuota, pod.logfn)
}

// collect marks every dictionary binding and sweeps the rest. Any
// pointer the session let go of is dead after this.
func (pod *Pod) collect() error {
	for _, p := range pod.tab {
		if err := pod.heap.mark(p); err != nil {
			return err
		}
	}
	pod.heap.sweep()
	return nil
}

// Load replays pod source -- previously written dictionary lines, or
// any program text -- discarding the echo output.
func (pod *Pod) Load(src string) error {
	for _, line := range strings.Split(src, "\n") {
		if _, err := pod.Eval(line); err != nil {
			return err
		}
	}
	return nil
}

func (pod *Pod) run(ctx context.Context) error {
	pod.init()
	if pod.logfn != nil {
		defer pod.withLogPrefix("	")()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, loc, err := pod.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				return pod.out.Flush()
			}
			return err
		}
		pod.logf("eval %v %q", loc, line)
		dst, err := pod.Eval(line)
		if err != nil {
			// Bugs mean the heap or machine state can no longer be
			// trusted; everything else is a complaint about this one
			// line.
			if errors.Is(err, errBug) {
				return fmt.Errorf("%v: %w", loc, err)
			}
			fmt.Fprintf(pod.out, "ERROR: %v: %v\n", loc, err)
		} else {
			fmt.Fprintln(pod.out, dst)
		}
		if err := pod.out.Flush(); err != nil {
			return err
		}
	}
}

// WriteTo renders the dictionary as ":name value" lines sorted by
// name; the same form Eval accepts, so a written pod replays with
// Load.
func (pod *Pod) WriteTo(w io.Writer) (n int64, err error) {
	pod.init()
	keys := make([]string, 0, len(pod.tab))
	for key := range pod.tab {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var sb strings.Builder
		sb.WriteByte(':')
		sb.WriteString(key)
		sb.WriteByte(' ')
		if err := pod.heap.quote(pod.tab[key], &sb); err != nil {
			return n, err
		}
		sb.WriteByte('\n')
		m, err := io.WriteString(w, sb.String())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(mess, args...)
	}
}
