package main

import (
	"strconv"
	"strings"
)

// quote renders a term back to source text: quotations bracketed,
// hints parenthesized, primitives as their canonical token, and a
// trailing empty tail omitted. Composition chains are walked
// iteratively down the right spine; recursion only follows bracket
// nesting.
func (h *heap) quote(p Pointer, sb *strings.Builder) error {
	for {
		n, err := h.deref(p)
		if err != nil {
			return err
		}
		switch n.kind {
		case kindEmpty:
			return nil
		case kindLiteral:
			sb.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
			return nil
		case kindSymbol:
			sb.WriteString(h.string(n.name))
			return nil
		case kindHint:
			sb.WriteByte('(')
			sb.WriteString(h.string(n.name))
			sb.WriteByte(')')
			return nil
		case kindPrimitive:
			sb.WriteString(n.op.String())
			return nil
		case kindQuotation:
			sb.WriteByte('[')
			if err := h.quote(n.left, sb); err != nil {
				return err
			}
			sb.WriteByte(']')
			return nil
		case kindConcat:
			left, right := n.left, n.right
			if err := h.quote(left, sb); err != nil {
				return err
			}
			if empty, err := h.isEmpty(right); err != nil {
				return err
			} else if empty {
				return nil
			}
			sb.WriteByte(' ')
			p = right
		default:
			return bugError("render of " + n.kind.String() + " slot")
		}
	}
}

// render is quote with errors flattened into the output, for logs and
// dumps.
func (h *heap) render(p Pointer) string {
	var sb strings.Builder
	if err := h.quote(p, &sb); err != nil {
		return "<" + err.Error() + ">"
	}
	return sb.String()
}
