package dynobj

import (
	"weak"

	"github.com/google/uuid"
)

// Factory owns an identifier interner and the root of a shape DAG. It is the
// unit of sharing: every Object created from one Factory shares its interner
// and structurally shares its shape nodes: two objects that follow the same
// sequence of property additions always end at the same Shape instance.
type Factory struct {
	id     uuid.UUID
	guard  factoryGuard
	intern *interner
	root   *Shape
}

// NewFactory creates a factory with an empty interner and a fresh root
// shape (no properties, no parent).
func NewFactory() *Factory {
	return &Factory{
		id:     uuid.New(),
		intern: newInterner(),
		root:   newRootShape(),
	}
}

// ID returns a stable diagnostic identity for this factory, useful for
// tagging log output when a host runs more than one factory at once. It
// plays no part in equality or lookup semantics.
func (f *Factory) ID() string {
	return f.id.String()
}

// Intern returns the dense Identifier for name, assigning a new one on first
// sight. Idempotent: repeated interning of equal strings returns the same
// identifier.
func (f *Factory) Intern(name string) Identifier {
	f.guard.lock()
	defer f.guard.unlock()
	return f.intern.intern(name)
}

// InternBytes interns a borrowed byte slice without forcing the caller to
// allocate an owned copy for a mere repeat lookup.
func (f *Factory) InternBytes(name []byte) Identifier {
	f.guard.lock()
	defer f.guard.unlock()
	return f.intern.internBytes(name)
}

// Lookup returns the name registered for id, for diagnostics. It never
// aborts on an unknown identifier; it reports (\"\", false) instead.
func (f *Factory) Lookup(id Identifier) (string, bool) {
	f.guard.lock()
	defer f.guard.unlock()
	return f.intern.lookup(id)
}

// InternedCount returns the number of identifiers issued so far, i.e. the
// exclusive upper bound of the dense range of live identifiers.
func (f *Factory) InternedCount() int {
	f.guard.lock()
	defer f.guard.unlock()
	return f.intern.count()
}

// CreateObject returns a new, empty Object: shape = root, no properties, no
// prototype.
func (f *Factory) CreateObject() *Object {
	return &Object{shape: f.root}
}

// transition returns the unique child of shape obtained by appending key,
// creating it if necessary. This is the factory's one critical section: the
// transitions cache is checked and, if necessary, populated while holding
// the factory guard, so two goroutines racing to add the same key to the
// same shape always observe the same resulting child.
func (f *Factory) transition(shape *Shape, key Identifier) *Shape {
	f.guard.lock()
	defer f.guard.unlock()

	if wp, ok := shape.transitions[key]; ok {
		if child := wp.Value(); child != nil {
			return child
		}
	}

	child := &Shape{
		parent:      shape,
		propertyKey: key,
		offset:      shape.propertyCount(),
		transitions: make(map[Identifier]weak.Pointer[Shape]),
	}
	shape.transitions[key] = weak.Make(child)
	debugf("dynobj: transition key=%d offset=%d propertyCount=%d\n", key, child.offset, child.propertyCount())
	return child
}
