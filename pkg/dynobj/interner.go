package dynobj

import "unsafe"

// interner is the bidirectional name<->Identifier table owned by a Factory.
// Access is serialized by the Factory's guard (see lock_mt.go/lock_st.go);
// interner itself holds no lock.
type interner struct {
	names []string
	ids   map[string]Identifier
}

func newInterner() *interner {
	return &interner{ids: make(map[string]Identifier)}
}

// intern returns the identifier for name, assigning a new dense one on
// first sight. Repeated interning of an equal string returns the same
// identifier.
func (in *interner) intern(name string) Identifier {
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := Identifier(len(in.names))
	in.names = append(in.names, name)
	in.ids[name] = id
	return id
}

// internBytes interns a borrowed byte slice. The lookup against already-seen
// names is done via a zero-copy string view over the slice (unsafe.String),
// so a repeated name never allocates; an owned copy is made only when the
// name is genuinely new.
func (in *interner) internBytes(name []byte) Identifier {
	if len(name) == 0 {
		return in.intern("")
	}
	probe := unsafe.String(unsafe.SliceData(name), len(name))
	if id, ok := in.ids[probe]; ok {
		return id
	}
	return in.intern(string(name))
}

// lookup returns the name for id, or ("", false) if id is out of range.
// Never aborts on an unknown identifier.
func (in *interner) lookup(id Identifier) (string, bool) {
	if id < 0 || int(id) >= len(in.names) {
		return "", false
	}
	return in.names[id], true
}

func (in *interner) count() int {
	return len(in.names)
}
