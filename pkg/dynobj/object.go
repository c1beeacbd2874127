package dynobj

import (
	"fmt"

	dynerrors "dynobj/pkg/errors"
)

// Object is a dynamic, per-instance property bag: a shape handle plus a
// value array indexed by the offsets that shape assigns, an optional
// prototype link, and a concurrency guard.
type Object struct {
	guard     objectGuard
	shape     *Shape
	values    []Value
	prototype *Object
}

// Set assigns value to key. If key is new to this object, the object
// transitions to a new shape (via the factory's shared shape DAG); if key is
// already present, the value is overwritten in place and the shape does not
// change. Total and infallible at the API level.
func (o *Object) Set(f *Factory, key Identifier, value Value) {
	o.guard.lock()
	defer o.guard.unlock()

	if offset, ok := o.shape.getOffset(key); ok {
		o.values[offset] = value
		return
	}

	next := f.transition(o.shape, key)
	// next.offset == o.shape.propertyCount() (shape invariant), so the
	// value slice is already exactly one short of the size the new shape
	// expects: appending lands value at next.offset.
	o.values = append(o.values, value)
	o.shape = next
}

// Get resolves key to its untyped value cell, first on this object and then,
// if unresolved, by recursing into the prototype chain. The object's shared
// guard is released before any such recursion: a buggy prototype cycle is
// the host's responsibility to avoid, but it must not deadlock this object
// against itself in addition to failing to terminate.
func (o *Object) Get(key Identifier) (Value, error) {
	o.guard.rlock()
	if offset, ok := o.shape.getOffset(key); ok {
		v := o.values[offset]
		o.guard.runlock()
		return v, nil
	}
	proto := o.prototype
	o.guard.runlock()

	if proto != nil {
		return proto.Get(key)
	}
	return Value{}, &dynerrors.NoSuchPropertyError{ID: int32(key)}
}

// GetAs resolves key and extracts it as T, failing with a TypeMismatchError
// if the stored cell's type does not match T exactly.
func GetAs[T any](o *Object, key Identifier) (T, error) {
	var zero T
	v, err := o.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := As[T](v)
	if !ok {
		return zero, &dynerrors.TypeMismatchError{
			ID:     int32(key),
			Wanted: fmt.Sprintf("%T", zero),
			Got:    fmt.Sprintf("%T", v.payload),
		}
	}
	return t, nil
}

// Call resolves key as a callable and invokes it with (self, args), holding
// no object guard while the callable runs. The invoked Method is free to
// re-enter Get/Set/Call on self, including the common "method mutates self"
// pattern, without deadlocking.
func (o *Object) Call(key Identifier, args Args) (Value, error) {
	v, err := o.Get(key)
	if err != nil {
		return Value{}, err
	}
	method, ok := v.AsCallable()
	if !ok {
		return Value{}, &dynerrors.NotCallableError{ID: int32(key)}
	}
	return method(o, args)
}

// CallAs resolves key, invokes it, and extracts the untyped result as R,
// failing with a MethodReturnTypeMismatchError on a type mismatch.
func CallAs[R any](o *Object, key Identifier, args Args) (R, error) {
	var zero R
	v, err := o.Call(key, args)
	if err != nil {
		return zero, err
	}
	r, ok := As[R](v)
	if !ok {
		return zero, &dynerrors.MethodReturnTypeMismatchError{
			ID:     int32(key),
			Wanted: fmt.Sprintf("%T", zero),
			Got:    fmt.Sprintf("%T", v.payload),
		}
	}
	return r, nil
}

// SetPrototype links o to proto, replacing any previous prototype. Setting
// an object as its own prototype is a programmer error, not something valid
// API use can trigger accidentally, and panics rather than silently
// building a one-object cycle; prototype chains beyond that are not
// cycle-checked, so a lookup given a cyclic chain by a misbehaving host
// simply never terminates.
func (o *Object) SetPrototype(proto *Object) {
	if proto == o {
		panic("dynobj: object cannot be its own prototype")
	}
	o.guard.lock()
	defer o.guard.unlock()
	o.prototype = proto
}

// Prototype returns the object's current prototype, or nil if none is set.
func (o *Object) Prototype() *Object {
	o.guard.rlock()
	defer o.guard.runlock()
	return o.prototype
}
