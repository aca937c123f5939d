package main

type opcode uint8

const (
	opApply opcode = iota
	opBox
	opCat
	opCopy
	opDrop
	opSwap
	opFix

	// Reserved instruction names: never rewrite, always go stuck, no
	// matter how deep the environment is. They exist so an outer layer
	// (say, a static checker) can claim them without the machine ever
	// executing them by accident.
	opProp
	opForall

	opMax
)

var opcodeNames = [opMax]string{
	opApply:  "Apply",
	opBox:    "Box",
	opCat:    "Concatenate",
	opCopy:   "Copy",
	opDrop:   "Drop",
	opSwap:   "Swap",
	opFix:    "Fix",
	opProp:   "Prop",
	opForall: "Forall",
}

func (op opcode) String() string {
	if op < opMax {
		return opcodeNames[op]
	}
	return "INVALID"
}

func parseOpcode(token string) (opcode, bool) {
	for op, name := range opcodeNames {
		if token == name {
			return opcode(op), true
		}
	}
	return opMax, false
}

// thread is the reduction machine: a continuation of code still to
// execute, an environment stack of values produced so far, and a thunk
// list of instructions (with the environment that was in effect) that
// could not yet execute and are preserved verbatim for later
// resumption.
//
// The continuation is kept as a slice with its front at the end, so
// both the flattening pops and the splicing pushes work on the tail.
type thread struct {
	code   []Pointer
	env    []Pointer
	thunks []Pointer

	logfn func(mess string, args ...interface{})
}

func newThread(root Pointer) *thread {
	return &thread{code: []Pointer{root}}
}

func (t *thread) logf(mess string, args ...interface{}) {
	if t.logfn != nil {
		t.logfn(mess, args...)
	}
}

func (t *thread) hasCode() bool { return len(t.code) > 0 }

// pushCode splices a term onto the front of the continuation.
func (t *thread) pushCode(p Pointer) {
	t.code = append(t.code, p)
}

// popCode pops the next instruction off the continuation, unfolding
// any concatenations at the front until a leaf is reached. The
// continuation cannot legally empty mid-unfold.
func (t *thread) popCode(h *heap) (Pointer, error) {
	for {
		if len(t.code) == 0 {
			return Pointer{}, bugError("continuation emptied mid-flatten")
		}
		p := t.code[len(t.code)-1]
		t.code = t.code[:len(t.code)-1]
		n, err := h.deref(p)
		if err != nil {
			return Pointer{}, err
		}
		if n.kind != kindConcat {
			return p, nil
		}
		t.code = append(t.code, n.right, n.left)
	}
}

func (t *thread) monadic() bool { return len(t.env) >= 1 }
func (t *thread) dyadic() bool  { return len(t.env) >= 2 }

func (t *thread) pushValue(p Pointer) {
	t.env = append(t.env, p)
}

func (t *thread) popValue() (Pointer, error) {
	i := len(t.env) - 1
	if i < 0 {
		return Pointer{}, errUnderflow
	}
	p := t.env[i]
	t.env = t.env[:i]
	return p, nil
}

func (t *thread) peekValue() (Pointer, error) {
	if len(t.env) == 0 {
		return Pointer{}, errUnderflow
	}
	return t.env[len(t.env)-1], nil
}

// thunk freezes a stuck instruction: the entire current environment
// moves onto the thunk list, followed by the instruction itself.
// Discarding the environment here would lose operands the instruction
// may execute against once revived.
func (t *thread) thunk(code Pointer) {
	t.thunks = append(t.thunks, t.env...)
	t.env = t.env[:0]
	t.thunks = append(t.thunks, code)
}

// step executes one instruction: values move to the environment,
// primitives rewrite, words splice in their binding (or go stuck),
// empties and hints are skipped. Anything else in instruction position
// means the continuation is corrupt.
func (t *thread) step(h *heap, tab map[string]Pointer) error {
	code, err := t.popCode(h)
	if err != nil {
		return err
	}
	n, err := h.deref(code)
	if err != nil {
		return err
	}
	if t.logfn != nil {
		t.logf("step %v -- env:%v thunks:%v", h.render(code), len(t.env), len(t.thunks))
	}
	switch n.kind {
	case kindQuotation, kindLiteral:
		t.pushValue(code)
	case kindPrimitive:
		return t.execute(h, code, n.op)
	case kindSymbol:
		// Words resolve lazily, at execution time; an unbound word is
		// stuck, not an error.
		if binding, bound := tab[h.string(n.name)]; bound {
			t.pushCode(binding)
		} else {
			t.thunk(code)
		}
	case kindEmpty, kindHint:
	default:
		return bugError("unexecutable " + n.kind.String() + " in instruction position")
	}
	return nil
}

func (t *thread) execute(h *heap, code Pointer, op opcode) error {
	switch op {
	case opApply:
		// [A] Apply => A
		if !t.monadic() {
			t.thunk(code)
			return nil
		}
		source, err := t.popValue()
		if err != nil {
			return err
		}
		body, err := h.quotationBody(source)
		if err != nil {
			return err
		}
		t.pushCode(body)

	case opBox:
		// [A] Box => [[A]]
		if !t.monadic() {
			t.thunk(code)
			return nil
		}
		source, err := t.popValue()
		if err != nil {
			return err
		}
		target, err := h.newQuotation(source)
		if err != nil {
			return err
		}
		t.pushValue(target)

	case opCat:
		// [A] [B] Concatenate => [A B]
		if !t.dyadic() {
			t.thunk(code)
			return nil
		}
		rhs, err := t.popValue()
		if err != nil {
			return err
		}
		lhs, err := t.popValue()
		if err != nil {
			return err
		}
		rhsBody, err := h.quotationBody(rhs)
		if err != nil {
			return err
		}
		lhsBody, err := h.quotationBody(lhs)
		if err != nil {
			return err
		}
		body, err := h.newConcat(lhsBody, rhsBody)
		if err != nil {
			return err
		}
		target, err := h.newQuotation(body)
		if err != nil {
			return err
		}
		t.pushValue(target)

	case opCopy:
		// [A] Copy => [A] [A]
		if !t.monadic() {
			t.thunk(code)
			return nil
		}
		source, err := t.peekValue()
		if err != nil {
			return err
		}
		t.pushValue(source)

	case opDrop:
		// [A] Drop =>
		if !t.monadic() {
			t.thunk(code)
			return nil
		}
		if _, err := t.popValue(); err != nil {
			return err
		}

	case opSwap:
		// [A] [B] Swap => [B] [A]
		if !t.dyadic() {
			t.thunk(code)
			return nil
		}
		fst, err := t.popValue()
		if err != nil {
			return err
		}
		snd, err := t.popValue()
		if err != nil {
			return err
		}
		t.pushValue(fst)
		t.pushValue(snd)

	case opFix:
		// [A] Fix => [[A] Fix A] -- each unfolding re-supplies its own
		// quotation next to its body.
		if !t.monadic() {
			t.thunk(code)
			return nil
		}
		q, err := t.popValue()
		if err != nil {
			return err
		}
		body, err := h.quotationBody(q)
		if err != nil {
			return err
		}
		lhs, err := h.newConcat(q, code)
		if err != nil {
			return err
		}
		full, err := h.newConcat(lhs, body)
		if err != nil {
			return err
		}
		target, err := h.newQuotation(full)
		if err != nil {
			return err
		}
		t.pushValue(target)

	case opProp, opForall:
		t.thunk(code)

	default:
		return bugError("unknown primitive " + op.String())
	}
	return nil
}

// flush reassembles thread state into a single well-formed term: the
// thunk list in original program order, then the environment deepest
// value first, then whatever continuation remains in execution order.
// Feeding the result back into reduce with more fuel resumes the same
// computation.
func (t *thread) flush(h *heap) (Pointer, error) {
	xs, err := h.newEmpty()
	if err != nil {
		return Pointer{}, err
	}
	for i := 0; i < len(t.code); i++ {
		if xs, err = h.newConcat(t.code[i], xs); err != nil {
			return Pointer{}, err
		}
	}
	for i := len(t.env) - 1; i >= 0; i-- {
		if xs, err = h.newConcat(t.env[i], xs); err != nil {
			return Pointer{}, err
		}
	}
	for i := len(t.thunks) - 1; i >= 0; i-- {
		if xs, err = h.newConcat(t.thunks[i], xs); err != nil {
			return Pointer{}, err
		}
	}
	t.code, t.env, t.thunks = nil, nil, nil
	return xs, nil
}

// reduce rewrites root until it reaches normal form, every remaining
// instruction is stuck, or fuel runs out; fuel is spent one unit per
// step no matter the outcome, so reduce always terminates. The result
// is always a well-formed term: reduce with more fuel to continue, and
// a term that cannot rewrite any further reduces to itself.
func reduce(h *heap, root Pointer, tab map[string]Pointer, fuel int,
	logfn func(mess string, args ...interface{})) (Pointer, error) {
	t := newThread(root)
	t.logfn = logfn
	for fuel > 0 && t.hasCode() {
		fuel--
		if err := t.step(h, tab); err != nil {
			return Pointer{}, err
		}
	}
	return t.flush(h)
}
