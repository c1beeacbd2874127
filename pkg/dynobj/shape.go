package dynobj

import "weak"

// noOffset is the sentinel offset carried by the root shape.
const noOffset = -1

// Shape is an immutable hidden-class node. It describes, for every object
// that currently points at it, the set of properties assigned so far and
// the offset in the object's value slice at which each one lives.
//
// Parent links are strong (a shape keeps its whole ancestry alive); child
// links in transitions are non-owning weak.Pointer hints, so the shape DAG
// can shrink again once no live object still uses a given descendant (see
// Factory.transition).
type Shape struct {
	parent      *Shape
	propertyKey Identifier
	offset      int
	transitions map[Identifier]weak.Pointer[Shape]
}

func newRootShape() *Shape {
	return &Shape{
		propertyKey: invalidIdentifier,
		offset:      noOffset,
		transitions: make(map[Identifier]weak.Pointer[Shape]),
	}
}

func (s *Shape) isRoot() bool {
	return s.parent == nil
}

// propertyCount is the number of properties reachable by walking parent
// links from s, inclusive of s itself.
func (s *Shape) propertyCount() int {
	if s.offset == noOffset {
		return 0
	}
	return s.offset + 1
}

// getOffset walks the parent chain from s toward the root looking for key,
// returning the offset recorded at the first (i.e. most recent) node whose
// propertyKey matches. No key appears twice on a single root-to-shape path,
// so this match is unique whenever it exists.
func (s *Shape) getOffset(key Identifier) (int, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.propertyKey == key {
			return cur.offset, true
		}
	}
	return 0, false
}
