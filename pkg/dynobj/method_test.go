package dynobj

import "testing"

// TestMethodReentrantSetOnSelf verifies a method that reads, increments, and
// writes back a counter on self, called in a tight loop, leaves the counter
// at the expected total with no lost or duplicated updates.
func TestMethodReentrantSetOnSelf(t *testing.T) {
	f := NewFactory()
	counterID := f.Intern("counter")
	incID := f.Intern("inc")

	o := f.CreateObject()
	o.Set(f, counterID, NewValue(0))
	o.Set(f, incID, NewMethod(func(self *Object, args Args) (Value, error) {
		val, err := GetAs[int](self, counterID)
		if err != nil {
			return Value{}, err
		}
		val++
		self.Set(f, counterID, NewValue(val))
		return NewValue(val), nil
	}))

	const n = 1_000_000
	for i := 1; i <= n; i++ {
		got, err := CallAs[int](o, incID, nil)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if got != i {
			t.Fatalf("call %d: expected return value %d, got %d", i, i, got)
		}
	}

	final, err := GetAs[int](o, counterID)
	if err != nil || final != n {
		t.Fatalf("expected final counter %d, got %d (err=%v)", n, final, err)
	}
}

func TestMethodNotCallable(t *testing.T) {
	f := NewFactory()
	o := f.CreateObject()
	name := f.Intern("name")
	o.Set(f, name, NewValue("not a method"))

	if _, err := o.Call(name, nil); err == nil {
		t.Errorf("expected calling a non-callable property to fail")
	}
}

func TestMethodCallAsReturnTypeMismatch(t *testing.T) {
	f := NewFactory()
	o := f.CreateObject()
	greet := f.Intern("greet")
	o.Set(f, greet, NewMethod(func(self *Object, args Args) (Value, error) {
		return NewValue("hello"), nil
	}))

	if _, err := CallAs[int](o, greet, nil); err == nil {
		t.Errorf("expected a method-return-type-mismatch error")
	}
}

// TestMethodReceivesArgsInOrder checks that Args preserve call order: the
// method folds its arguments into decimal digits, so any reordering changes
// the result.
func TestMethodReceivesArgsInOrder(t *testing.T) {
	f := NewFactory()
	o := f.CreateObject()
	digits := f.Intern("digits")
	o.Set(f, digits, NewMethod(func(self *Object, args Args) (Value, error) {
		total := 0
		for _, a := range args {
			n, ok := As[int](a)
			if !ok {
				return Value{}, nil
			}
			total = total*10 + n
		}
		return NewValue(total), nil
	}))

	got, err := CallAs[int](o, digits, Args{NewValue(1), NewValue(2), NewValue(3)})
	if err != nil || got != 123 {
		t.Errorf("expected 123, got %d (err=%v)", got, err)
	}
}
