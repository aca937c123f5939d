package main

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocat/internal/logio"
)

func TestPod_session(t *testing.T) {
	podTestCases{

		podTest("basis").
			withInput(lines(
				"[A] Apply",
				"[A] Box",
				"[A] [B] Concatenate",
				"[A] Copy",
				"[A] Drop",
				"[A] [B] Swap",
				"[A] Fix",
				"[A] [B] Box Concatenate",
			)).
			expectOutput(lines(
				"A",
				"[[A]]",
				"[A B]",
				"[A] [A]",
				"",
				"[B] [A]",
				"[[A] Fix A]",
				"[A [B]]",
			)),

		podTest("stuck terms echo back").
			withInput(lines(
				"Copy",
				"[A] Prop",
				"[A] [B] Forall",
				"undefined-word [B]",
			)).
			expectOutput(lines(
				"Copy",
				"[A] Prop",
				"[A] [B] Forall",
				"undefined-word [B]",
			)),

		podTest("dictionary").
			withInput(lines(
				":double Copy Concatenate",
				"[A] double Apply",
				"~double",
				"[A] double",
			)).
			expectOutput(lines(
				":double Copy Concatenate",
				"A A",
				"~double",
				"[A] double",
			)).
			expectNoBinding("double"),

		podTest("prelude").
			withPrelude().
			withInput(lines(
				"[A] dup",
				"[A] pop",
				"[A] [B] swap",
				"[A] unit",
				"[A] i",
				"[A] twice",
				"[X] thrice",
			)).
			expectOutput(lines(
				"[A] [A]",
				"",
				"[B] [A]",
				"[[A]]",
				"A",
				"A A",
				"X X X",
			)),

		podTest("fuel starvation leaves a resumable term").
			withTimeQuota(7).
			withInput(lines("[Copy Apply] Copy Apply")).
			expectOutput(lines("[Copy Apply] Copy Apply")),

		podTest("dictionary is the only gc root").
			withInput(lines(
				":a [A]",
				"[B] [C] Concatenate",
				"~a",
			)).
			expectOutput(lines(
				":a [A]",
				"[B C]",
				"~a",
			)).
			expectLive(0),

		podTest("errors report location and keep the session going").
			withNamedInput("in", lines("[A", "[B]")).
			expectOutput(lines(
				"ERROR: in:1: syntax error: unbalanced [",
				"[B]",
			)),

		podTest("space quota").
			withSpaceQuota(8).
			withNamedInput("in", lines("[a] [b] [c] [d] [e]", "[ok]")).
			expectOutput(lines(
				"ERROR: in:1: heap space exhausted",
				"[ok]",
			)),

		podTest("wrapped helpers").
			apply(
				withPodInput(lines("[A] Box")),
				expectPodOutput(lines("[[A]]")),
				expectPodLive(0),
			),
	}.run(t)
}

func TestPod_eval(t *testing.T) {
	pod := New()
	defer pod.Close()

	out, err := pod.Eval(":k [A] [B] Concatenate")
	require.NoError(t, err)
	assert.Equal(t, ":k [A B]", out)
	assert.Equal(t, "[A B]", pod.heap.render(pod.tab["k"]))

	out, err = pod.Eval("k Apply")
	require.NoError(t, err)
	assert.Equal(t, "A B", out)

	out, err = pod.Eval("~k")
	require.NoError(t, err)
	assert.Equal(t, "~k", out)
	_, bound := pod.tab["k"]
	assert.False(t, bound)
}

func TestPod_persistence(t *testing.T) {
	pod := New()
	defer pod.Close()
	for _, line := range []string{":b [B] Box", ":a [A]"} {
		_, err := pod.Eval(line)
		require.NoError(t, err)
	}

	var sb strings.Builder
	n, err := pod.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Equal(t, lines(":a [A]", ":b [[B]]"), sb.String())

	replica := New()
	defer replica.Close()
	require.NoError(t, replica.Load(sb.String()))
	var sb2 strings.Builder
	_, err = replica.WriteTo(&sb2)
	require.NoError(t, err)
	assert.Equal(t, sb.String(), sb2.String())
}

func TestPod_collect(t *testing.T) {
	pod := New(WithSpaceQuota(64))
	defer pod.Close()

	_, err := pod.Eval("[A] [B] Concatenate")
	require.NoError(t, err)
	assert.Equal(t, 0, pod.heap.live(), "bare program results should not survive")

	_, err = pod.Eval(":a [A]")
	require.NoError(t, err)
	assert.Equal(t, 2, pod.heap.live(), "expected a quotation and its symbol")

	_, err = pod.Eval(":a [B C]")
	require.NoError(t, err)
	assert.Equal(t, 4, pod.heap.live(), "rebinding should free the old value")
}

//// test harness

type podTestCases []podTestCase

func (pts podTestCases) run(t *testing.T) {
	{
		var exclusive []podTestCase
		for _, pt := range pts {
			if pt.exclusive {
				exclusive = append(exclusive, pt)
			}
		}
		if len(exclusive) > 0 {
			pts = exclusive
		}
	}
	for _, pt := range pts {
		if !t.Run(pt.name, pt.run) {
			return
		}
	}
}

func podTest(name string) (pt podTestCase) {
	pt.name = name
	return pt
}

type podTestCase struct {
	name    string
	opts    []interface{}
	expect  []func(t *testing.T, pod *Pod)
	timeout time.Duration
	wantErr error

	exclusive   bool
	nextInputID int
}

func (pt podTestCase) apply(wraps ...func(podTestCase) podTestCase) podTestCase {
	for _, wrap := range wraps {
		pt = wrap(pt)
	}
	return pt
}

func (pt podTestCase) exclusiveTest() podTestCase {
	pt.exclusive = true
	return pt
}

func (pt podTestCase) withOptions(opts ...PodOption) podTestCase {
	pt.opts = append(pt.opts, PodOptions(opts...))
	return pt
}

func (pt podTestCase) withInput(input string) podTestCase {
	pt.opts = append(pt.opts, func(pt *podTestCase, t *testing.T) PodOption {
		name := t.Name() + "/input"
		if id := pt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		pt.nextInputID++
		return WithSource(name, input)
	})
	return pt
}

func (pt podTestCase) withNamedInput(name string, input string) podTestCase {
	pt.opts = append(pt.opts, WithSource(name, input))
	return pt
}

func (pt podTestCase) withTimeout(timeout time.Duration) podTestCase {
	pt.timeout = timeout
	return pt
}

func (pt podTestCase) withSpaceQuota(capacity int) podTestCase {
	pt.opts = append(pt.opts, WithSpaceQuota(capacity))
	return pt
}

func (pt podTestCase) withTimeQuota(fuel int) podTestCase {
	pt.opts = append(pt.opts, WithTimeQuota(fuel))
	return pt
}

func (pt podTestCase) withPrelude() podTestCase {
	pt.opts = append(pt.opts, WithPrelude())
	return pt
}

func (pt podTestCase) expectError(err error) podTestCase {
	pt.wantErr = err
	return pt
}

func (pt podTestCase) expectOutput(output string) podTestCase {
	var out strings.Builder
	pt.opts = append(pt.opts, WithOutput(&out))
	pt.expect = append(pt.expect, func(t *testing.T, pod *Pod) {
		assert.Equal(t, output, out.String(), "expected session output")
	})
	return pt
}

func (pt podTestCase) expectBinding(key string, value string) podTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, pod *Pod) {
		p, bound := pod.tab[key]
		if assert.True(t, bound, "expected %q to be bound", key) {
			assert.Equal(t, value, pod.heap.render(p), "expected %q binding", key)
		}
	})
	return pt
}

func (pt podTestCase) expectNoBinding(key string) podTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, pod *Pod) {
		_, bound := pod.tab[key]
		assert.False(t, bound, "expected %q to be unbound", key)
	})
	return pt
}

func (pt podTestCase) expectLive(count int) podTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, pod *Pod) {
		assert.Equal(t, count, pod.heap.live(), "expected live heap nodes")
	})
	return pt
}

func (pt podTestCase) expectDump(dump string) podTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, pod *Pod) {
		var out strings.Builder
		podDumper{
			pod: pod,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return pt
}

func (pt podTestCase) withTestOutput() podTestCase {
	pt.opts = append(pt.opts, func(pt *podTestCase, t *testing.T) PodOption {
		lw := &logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}}
		return WithTee(lw)
	})
	return pt
}

func (pt podTestCase) withTestDump() podTestCase {
	pt.expect = append(pt.expect, pt.dumpToTest)
	return pt
}

func (pt podTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Now().Sub(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		pt.runPodTest(context.Background(), t, pt.buildPod(t))
	}) {
		pod := pt.buildPod(t)
		WithLogf(t.Logf).apply(pod)
		pod.init()
		pt.runPodTest(context.Background(), t, pod)
	}
}

func (pt podTestCase) runPodTest(ctx context.Context, t *testing.T, pod *Pod) {
	const defaultTimeout = time.Second
	timeout := pt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			pt.dumpToTest(t, pod)
		}
	}()

	if err := pt.runPod(ctx, pod); pt.wantErr != nil {
		assert.True(t, errors.Is(err, pt.wantErr), "expected error: %v\ngot: %+v", pt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected pod run error")
	}

	if !t.Failed() {
		for _, expect := range pt.expect {
			expect(t, pod)
		}
	}
}

func (pt podTestCase) runPod(ctx context.Context, pod *Pod) (rerr error) {
	defer func() {
		if cerr := pod.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	return pod.Run(ctx)
}

func (pt podTestCase) buildPod(t *testing.T) *Pod {
	opts := make([]PodOption, 0, len(pt.opts))
	for _, o := range pt.opts {
		switch impl := o.(type) {
		case func(pt *podTestCase, t *testing.T) PodOption:
			opts = append(opts, impl(&pt, t))
		case PodOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported podTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opts...)
}

func (pt podTestCase) dumpToTest(t *testing.T, pod *Pod) {
	lw := &logio.Writer{Logf: t.Logf}
	defer lw.Close()
	podDumper{pod: pod, out: lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
