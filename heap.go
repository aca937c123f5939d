package main

// Pointer names a heap slot along with the generation stamp it was
// allocated under. Two pointers are equal iff both fields are; a
// pointer is only usable while its slot still holds the node allocated
// under that same stamp.
type Pointer struct {
	slot int
	gen  uint64
}

type kind uint8

const (
	kindFree kind = iota // unoccupied slot, the node zero value
	kindEmpty
	kindLiteral
	kindSymbol
	kindPrimitive
	kindQuotation
	kindConcat
	kindHint
)

var kindNames = [...]string{
	kindFree:      "free",
	kindEmpty:     "empty",
	kindLiteral:   "literal",
	kindSymbol:    "symbol",
	kindPrimitive: "primitive",
	kindQuotation: "quotation",
	kindConcat:    "concatenation",
	kindHint:      "hint",
}

func (k kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// node is the single storage cell behind every term kind; which fields
// are meaningful depends on kind. Nodes are immutable once allocated,
// except for the transient GC visited flag.
type node struct {
	kind    kind
	num     float64 // literal value
	name    uint    // interned symbol / hint text
	op      opcode  // primitive instruction
	left    Pointer // quotation body; concatenation left
	right   Pointer // concatenation right
	gen     uint64
	visited bool
}

// heap is a fixed-capacity slot table with mark-sweep collection.
// Allocation is a first-fit scan; slots are reused only after a sweep,
// and every sweep bumps the generation stamp that subsequent
// allocations are issued under, so pointers issued before a slot's
// most recent allocation can never again compare valid.
type heap struct {
	symbols
	nodes []node
	gen   uint64

	logfn func(mess string, args ...interface{})
}

func newHeap(capacity int) *heap {
	return &heap{nodes: make([]node, capacity)}
}

func (h *heap) logf(mess string, args ...interface{}) {
	if h.logfn != nil {
		h.logfn(mess, args...)
	}
}

// live counts occupied slots.
func (h *heap) live() (n int) {
	for i := range h.nodes {
		if h.nodes[i].kind != kindFree {
			n++
		}
	}
	return n
}

func (h *heap) alloc(n node) (Pointer, error) {
	for i := range h.nodes {
		if h.nodes[i].kind != kindFree {
			continue
		}
		n.gen = h.gen
		n.visited = false
		h.nodes[i] = n
		return Pointer{slot: i, gen: h.gen}, nil
	}
	return Pointer{}, errSpace
}

func (h *heap) deref(p Pointer) (*node, error) {
	if p.slot < 0 || p.slot >= len(h.nodes) {
		return nil, nullError(p)
	}
	n := &h.nodes[p.slot]
	if n.kind == kindFree || n.gen != p.gen {
		return nil, nullError(p)
	}
	return n, nil
}

func (h *heap) kindOf(p Pointer) (kind, error) {
	n, err := h.deref(p)
	if err != nil {
		return kindFree, err
	}
	return n.kind, nil
}

//// constructors

func (h *heap) newEmpty() (Pointer, error) {
	return h.alloc(node{kind: kindEmpty})
}

func (h *heap) newLiteral(value float64) (Pointer, error) {
	return h.alloc(node{kind: kindLiteral, num: value})
}

func (h *heap) newSymbol(name string) (Pointer, error) {
	return h.alloc(node{kind: kindSymbol, name: h.intern(name)})
}

func (h *heap) newHint(name string) (Pointer, error) {
	return h.alloc(node{kind: kindHint, name: h.intern(name)})
}

func (h *heap) newPrimitive(op opcode) (Pointer, error) {
	return h.alloc(node{kind: kindPrimitive, op: op})
}

func (h *heap) newQuotation(body Pointer) (Pointer, error) {
	return h.alloc(node{kind: kindQuotation, left: body})
}

// newConcat builds the sequential composition of two fragments,
// normalized so that composition forms a monoid with empty as identity
// and so that concatenation spines always lean right: an empty operand
// yields the other operand unchanged, and a concatenation on the left
// is rotated into the right spine. Traversals may therefore assume a
// concatenation's left child is a leaf and that chains terminate in a
// non-concatenation tail.
func (h *heap) newConcat(left, right Pointer) (Pointer, error) {
	if empty, err := h.isEmpty(left); err != nil {
		return Pointer{}, err
	} else if empty {
		return right, nil
	}
	if empty, err := h.isEmpty(right); err != nil {
		return Pointer{}, err
	} else if empty {
		return left, nil
	}
	if cat, err := h.isConcat(left); err != nil {
		return Pointer{}, err
	} else if cat {
		head, err := h.concatLeft(left)
		if err != nil {
			return Pointer{}, err
		}
		rest, err := h.concatRight(left)
		if err != nil {
			return Pointer{}, err
		}
		tail, err := h.newConcat(rest, right)
		if err != nil {
			return Pointer{}, err
		}
		return h.newConcat(head, tail)
	}
	return h.alloc(node{kind: kindConcat, left: left, right: right})
}

//// predicates

func (h *heap) isEmpty(p Pointer) (bool, error)     { return h.hasKind(p, kindEmpty) }
func (h *heap) isLiteral(p Pointer) (bool, error)   { return h.hasKind(p, kindLiteral) }
func (h *heap) isSymbol(p Pointer) (bool, error)    { return h.hasKind(p, kindSymbol) }
func (h *heap) isPrimitive(p Pointer) (bool, error) { return h.hasKind(p, kindPrimitive) }
func (h *heap) isQuotation(p Pointer) (bool, error) { return h.hasKind(p, kindQuotation) }
func (h *heap) isConcat(p Pointer) (bool, error)    { return h.hasKind(p, kindConcat) }
func (h *heap) isHint(p Pointer) (bool, error)      { return h.hasKind(p, kindHint) }

func (h *heap) hasKind(p Pointer, k kind) (bool, error) {
	n, err := h.deref(p)
	if err != nil {
		return false, err
	}
	return n.kind == k, nil
}

//// accessors

func (h *heap) literalValue(p Pointer) (float64, error) {
	n, err := h.want(p, kindLiteral)
	if err != nil {
		return 0, err
	}
	return n.num, nil
}

func (h *heap) symbolName(p Pointer) (string, error) {
	n, err := h.want(p, kindSymbol)
	if err != nil {
		return "", err
	}
	return h.string(n.name), nil
}

func (h *heap) hintName(p Pointer) (string, error) {
	n, err := h.want(p, kindHint)
	if err != nil {
		return "", err
	}
	return h.string(n.name), nil
}

func (h *heap) primitiveOp(p Pointer) (opcode, error) {
	n, err := h.want(p, kindPrimitive)
	if err != nil {
		return 0, err
	}
	return n.op, nil
}

func (h *heap) quotationBody(p Pointer) (Pointer, error) {
	n, err := h.want(p, kindQuotation)
	if err != nil {
		return Pointer{}, err
	}
	return n.left, nil
}

func (h *heap) concatLeft(p Pointer) (Pointer, error) {
	n, err := h.want(p, kindConcat)
	if err != nil {
		return Pointer{}, err
	}
	return n.left, nil
}

func (h *heap) concatRight(p Pointer) (Pointer, error) {
	n, err := h.want(p, kindConcat)
	if err != nil {
		return Pointer{}, err
	}
	return n.right, nil
}

func (h *heap) want(p Pointer, k kind) (*node, error) {
	n, err := h.deref(p)
	if err != nil {
		return nil, err
	}
	if n.kind != k {
		return nil, tagError{want: k, got: n.kind, at: p}
	}
	return n, nil
}

//// collection

// mark flags root and everything reachable from it as live for the
// next sweep. Quotation bodies and both concatenation children are
// reachable; every other kind is a leaf. Call once per external root
// before each sweep. The walk uses an explicit worklist so that deep
// right-leaning chains cannot exhaust the call stack.
func (h *heap) mark(root Pointer) error {
	work := []Pointer{root}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		n, err := h.deref(p)
		if err != nil {
			return err
		}
		if n.visited {
			continue
		}
		n.visited = true
		switch n.kind {
		case kindQuotation:
			work = append(work, n.left)
		case kindConcat:
			work = append(work, n.left, n.right)
		}
	}
	return nil
}

// sweep frees every occupied slot not marked since the last sweep,
// clears the visited flags of the survivors, and bumps the generation
// stamp. Collection is entirely caller-driven; nothing triggers a
// sweep implicitly.
func (h *heap) sweep() (freed int) {
	for i := range h.nodes {
		n := &h.nodes[i]
		switch {
		case n.kind == kindFree:
		case n.visited:
			n.visited = false
		default:
			*n = node{}
			freed++
		}
	}
	h.gen++
	h.logf("[gc] freed: %v generation: %v", freed, h.gen)
	return freed
}
