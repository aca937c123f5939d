package main

// symbols is an append-only intern table for symbol and hint text.
// Nodes store interned ids rather than strings, so collecting a node
// never invalidates text shared with other nodes; the table itself is
// never swept.
type symbols struct {
	strings []string
	ids     map[string]uint
}

func (sym symbols) string(id uint) string {
	if i := int(id) - 1; i >= 0 && i < len(sym.strings) {
		return sym.strings[i]
	}
	return ""
}

func (sym *symbols) intern(s string) (id uint) {
	id, defined := sym.ids[s]
	if !defined {
		if sym.ids == nil {
			sym.ids = make(map[string]uint)
		}
		id = uint(len(sym.strings)) + 1
		sym.strings = append(sym.strings, s)
		sym.ids[s] = id
	}
	return id
}
