package main

import (
	"regexp"
	"strconv"
	"strings"
)

var hintPattern = regexp.MustCompile(`^\((` + wordPattern + `)\)$`)

// parse turns whitespace-separated concatenative source into a
// heap-resident term: brackets delimit quotations and must balance,
// primitive names become primitives, numeric tokens become literals,
// parenthesized words become hints, and everything else becomes a
// symbol. Empty input parses to the empty term.
func (h *heap) parse(src string) (Pointer, error) {
	var build []Pointer
	var stack [][]Pointer
	// pad both sides so adjacent brackets like "][" split apart
	src = strings.ReplaceAll(src, "[", " [ ")
	src = strings.ReplaceAll(src, "]", " ] ")
	for _, token := range strings.Fields(src) {
		switch token {
		case "[":
			stack = append(stack, build)
			build = nil
		case "]":
			if len(stack) == 0 {
				return Pointer{}, syntaxError("unbalanced ]")
			}
			body, err := h.chain(build)
			if err != nil {
				return Pointer{}, err
			}
			q, err := h.newQuotation(body)
			if err != nil {
				return Pointer{}, err
			}
			build = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			build = append(build, q)
		default:
			p, err := h.parseToken(token)
			if err != nil {
				return Pointer{}, err
			}
			build = append(build, p)
		}
	}
	if len(stack) > 0 {
		return Pointer{}, syntaxError("unbalanced [")
	}
	return h.chain(build)
}

func (h *heap) parseToken(token string) (Pointer, error) {
	if op, ok := parseOpcode(token); ok {
		return h.newPrimitive(op)
	}
	if value, err := strconv.ParseFloat(token, 64); err == nil {
		return h.newLiteral(value)
	}
	if m := hintPattern.FindStringSubmatch(token); m != nil {
		return h.newHint(m[1])
	}
	return h.newSymbol(token)
}

// chain folds parsed parts into a right-leaning composition chain
// terminated by the empty term.
func (h *heap) chain(parts []Pointer) (Pointer, error) {
	xs, err := h.newEmpty()
	if err != nil {
		return Pointer{}, err
	}
	for i := len(parts) - 1; i >= 0; i-- {
		if xs, err = h.newConcat(parts[i], xs); err != nil {
			return Pointer{}, err
		}
	}
	return xs, nil
}
