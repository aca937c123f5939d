package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// podDumper renders a debugging view of a pod: its dictionary, then
// every occupied heap slot with its generation stamp and rendering.
type podDumper struct {
	pod *Pod
	out io.Writer

	slotWidth int
}

func (dump podDumper) dump() {
	pod := dump.pod
	pod.init()

	fmt.Fprintf(dump.out, "# Pod Dump\n")
	fmt.Fprintf(dump.out, "  generation: %v\n", pod.heap.gen)
	fmt.Fprintf(dump.out, "  live: %v/%v\n", pod.heap.live(), len(pod.heap.nodes))

	keys := make([]string, 0, len(pod.tab))
	for key := range pod.tab {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(dump.out, "  :%v %v\n", key, pod.heap.render(pod.tab[key]))
	}

	dump.dumpHeap()
}

func (dump *podDumper) dumpHeap() {
	h := dump.pod.heap
	if dump.slotWidth == 0 {
		dump.slotWidth = len(strconv.Itoa(len(h.nodes))) + 1
	}
	fmt.Fprintf(dump.out, "# Heap\n")
	for i := range h.nodes {
		n := &h.nodes[i]
		if n.kind == kindFree {
			continue
		}
		p := Pointer{slot: i, gen: n.gen}
		fmt.Fprintf(dump.out, "  @% *v#%v %v %v\n",
			dump.slotWidth, i, n.gen, n.kind, h.render(p))
	}
}
