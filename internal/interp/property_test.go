package interp

import "testing"

func TestGetProperty_OwnThenPrototypeChain(t *testing.T) {
	interp := New(nil)
	proto := NewObject("Object", nil)
	proto.SetOwn("inherited", &StringValue{Value: "from-proto"})
	child := NewObject("Object", proto)
	child.SetOwn("own", &StringValue{Value: "from-child"})

	v, ok := interp.getProperty(child, "own")
	if !ok || v.String() != "from-child" {
		t.Errorf("own property = %v, ok=%v", v, ok)
	}
	v, ok = interp.getProperty(child, "inherited")
	if !ok || v.String() != "from-proto" {
		t.Errorf("inherited property = %v, ok=%v", v, ok)
	}
	_, ok = interp.getProperty(child, "missing")
	if ok {
		t.Error("missing property should report ok=false")
	}
}

func TestSetProperty_AlwaysWritesOwnNotPrototype(t *testing.T) {
	interp := New(nil)
	proto := NewObject("Object", nil)
	proto.SetOwn("x", &NumberValue{Value: 1})
	child := NewObject("Object", proto)

	if thrown := interp.setProperty(child, "x", &NumberValue{Value: 2}); thrown != nil {
		t.Fatalf("setProperty threw: %v", thrown.Value)
	}
	if _, ok := child.GetOwnProperty("x"); !ok {
		t.Error("assignment should have created an own property on child")
	}
	protoVal, _ := proto.GetOwnProperty("x")
	if protoVal.Val.String() != "1" {
		t.Error("prototype's own x should be unaffected by a write through child")
	}
}

func TestSetProperty_GetterOnlyAccessorIsSilentNoOp(t *testing.T) {
	interp := New(nil)
	proto := NewObject("Object", nil)
	proto.DefineAccessor("x", nil, nil)
	child := NewObject("Object", proto)

	if thrown := interp.setProperty(child, "x", &NumberValue{Value: 5}); thrown != nil {
		t.Fatalf("setProperty threw: %v", thrown.Value)
	}
	if _, ok := child.GetOwnProperty("x"); ok {
		t.Error("assigning to a getter-only accessor should not create an own property")
	}
}

func TestArrayVirtualGetSet_LengthAndIndices(t *testing.T) {
	interp := New(nil)
	arr := NewArray(nil, []Value{&NumberValue{Value: 1}, &NumberValue{Value: 2}})

	v, ok := arrayVirtualGet(arr, "length")
	if !ok || v.String() != "2" {
		t.Errorf("length = %v, want 2", v)
	}
	handled, thrown := interp.arrayVirtualSet(arr, "length", &NumberValue{Value: 5})
	if !handled || thrown != nil {
		t.Fatalf("length set not handled or threw")
	}
	if len(arr.Elements) != 5 {
		t.Errorf("len(Elements) = %d, want 5", len(arr.Elements))
	}

	handled, thrown = interp.arrayVirtualSet(arr, "0", &StringValue{Value: "zero"})
	if !handled || thrown != nil {
		t.Fatalf("index set not handled or threw")
	}
	v, ok = arrayVirtualGet(arr, "0")
	if !ok || v.String() != "zero" {
		t.Errorf("Elements[0] = %v, want zero", v)
	}
}

func TestArrayVirtualSet_InvalidLengthThrowsRangeError(t *testing.T) {
	interp := New(nil)

	arr := NewArray(nil, []Value{&NumberValue{Value: 1}})
	handled, thrown := interp.arrayVirtualSet(arr, "length", &NumberValue{Value: -1})
	if !handled || thrown == nil {
		t.Fatalf("expected a RangeError for a negative length")
	}
	if name, _ := interp.getProperty(thrown.Value.(*Object), "name"); name.String() != "RangeError" {
		t.Errorf("thrown name = %v, want RangeError", name)
	}

	arr2 := NewArray(nil, []Value{&NumberValue{Value: 1}})
	handled, thrown = interp.arrayVirtualSet(arr2, "length", &NumberValue{Value: 1.5})
	if !handled || thrown == nil {
		t.Fatalf("expected a RangeError for a non-integer length")
	}
}

func TestOwnEnumerableKeys_ArrayIncludesIndicesThenOwnKeys(t *testing.T) {
	arr := NewArray(nil, []Value{&NumberValue{Value: 1}, &NumberValue{Value: 2}})
	arr.SetOwn("tag", &StringValue{Value: "x"})

	keys := ownEnumerableKeys(arr)
	want := []string{"0", "1", "tag"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for idx, k := range want {
		if keys[idx] != k {
			t.Errorf("keys[%d] = %q, want %q", idx, keys[idx], k)
		}
	}
}
