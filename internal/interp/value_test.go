package interp

import "testing"

func TestNumberValue_StringFormatsSpecialValues(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{-7, "-7"},
		{3.5, "3.5"},
	}
	for _, c := range cases {
		got := (&NumberValue{Value: c.v}).String()
		if got != c.want {
			t.Errorf("String(%v) = %q, want %q", c.v, got, c.want)
		}
	}
	if (&NumberValue{Value: NaN.Value}).String() != "NaN" {
		t.Error("NaN should stringify to \"NaN\"")
	}
}

func TestBool_ReturnsCanonicalSingletons(t *testing.T) {
	if Bool(true) != True {
		t.Error("Bool(true) should be the True singleton")
	}
	if Bool(false) != False {
		t.Error("Bool(false) should be the False singleton")
	}
}

func TestObject_SetOwnPreservesInsertionOrderAndOverwrites(t *testing.T) {
	o := NewObject("Object", nil)
	o.SetOwn("b", &NumberValue{Value: 1})
	o.SetOwn("a", &NumberValue{Value: 2})
	o.SetOwn("b", &NumberValue{Value: 3})

	keys := o.OwnKeys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("keys = %v, want [b a] (overwrite keeps original position)", keys)
	}
	p, _ := o.GetOwnProperty("b")
	if p.Val.String() != "3" {
		t.Errorf("b = %v, want 3 (overwritten)", p.Val)
	}
}

func TestObject_DeleteRemovesKeyAndMaintainsOrder(t *testing.T) {
	o := NewObject("Object", nil)
	o.SetOwn("a", &NumberValue{Value: 1})
	o.SetOwn("b", &NumberValue{Value: 2})
	o.SetOwn("c", &NumberValue{Value: 3})

	if !o.Delete("b") {
		t.Fatal("Delete(b) should report true")
	}
	if o.Delete("b") {
		t.Error("second Delete(b) should report false")
	}
	keys := o.OwnKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("keys after delete = %v, want [a c]", keys)
	}
}

func TestObject_DefineAccessorMergesGetterAndSetterHalves(t *testing.T) {
	o := NewObject("Object", nil)
	getter := &FunctionValue{Name: "get x"}
	o.DefineAccessor("x", getter, nil)
	setter := &FunctionValue{Name: "set x"}
	o.DefineAccessor("x", nil, setter)

	p, ok := o.GetOwnProperty("x")
	if !ok || p.Kind != AccessorProperty {
		t.Fatalf("x should be a single accessor property, got %v ok=%v", p, ok)
	}
	if p.Getter != getter || p.Setter != setter {
		t.Error("both getter and setter halves should be merged onto the same property")
	}
	if len(o.OwnKeys()) != 1 {
		t.Error("defining getter then setter should not duplicate the key")
	}
}

func TestObject_ProtoWeakRefResolvesAndClearsOnNil(t *testing.T) {
	proto := NewObject("Object", nil)
	child := NewObject("Object", proto)

	got, ok := child.Proto()
	if !ok || got != proto {
		t.Fatalf("Proto() = %v, %v; want %v, true", got, ok, proto)
	}

	child.SetProto(nil)
	_, ok = child.Proto()
	if ok {
		t.Error("Proto() after SetProto(nil) should report ok=false")
	}
}

func TestObject_SlotRoundTrip(t *testing.T) {
	o := NewObject("Object", nil)
	if _, ok := o.Slot("[[Missing]]"); ok {
		t.Error("unset slot should report ok=false")
	}
	o.SetSlot("[[Tag]]", "value")
	v, ok := o.Slot("[[Tag]]")
	if !ok || v.(string) != "value" {
		t.Errorf("Slot([[Tag]]) = %v, %v; want value, true", v, ok)
	}
}

func TestNewArray_StringJoinsElementsTreatingNilAndNullishAsEmpty(t *testing.T) {
	arr := NewArray(nil, []Value{&NumberValue{Value: 1}, Null, Undefined, &StringValue{Value: "x"}})
	got := arr.String()
	want := "1,,,x"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRefValue_ResolveReturnsLiveTarget(t *testing.T) {
	target := NewObject("Object", nil)
	ref := NewRefValue(target)
	got, ok := ref.Resolve()
	if !ok || got != target {
		t.Fatalf("Resolve() = %v, %v; want %v, true", got, ok, target)
	}
}

func TestScopeValue_ResolveRoundTrips(t *testing.T) {
	env := NewEnvironment()
	scope := NewScopeValue(env)
	got, ok := scope.Resolve()
	if !ok || got != env {
		t.Fatalf("Resolve() = %v, %v; want %v, true", got, ok, env)
	}
}
