package interp

import (
	"testing"

	"github.com/echosoar/jsi-sub000/internal/ast"
)

func TestCallFunction_ClosureOverDefiningScope(t *testing.T) {
	i := New(nil)
	outer := NewEnclosedEnvironment(i.global)
	outer.Define("captured", &NumberValue{Value: 7}, bindingLet)

	fn := &FunctionValue{
		Name:     "f",
		ExprBody: &ast.Identifier{Name: "captured"},
		Closure:  NewScopeValue(outer),
	}

	got, thrown := i.callFunction(fn, Undefined, nil, nil)
	if thrown != nil {
		t.Fatalf("callFunction threw: %v", thrown.Value)
	}
	if got.String() != "7" {
		t.Errorf("got %q, want %q", got.String(), "7")
	}
}

func TestBindParameters_DefaultsReferenceEarlierParams(t *testing.T) {
	i := New(nil)
	env := NewEnclosedEnvironment(i.global)
	params := []*ast.Parameter{
		{Name: &ast.Identifier{Name: "a"}},
		{Name: &ast.Identifier{Name: "b"}, Default: &ast.Identifier{Name: "a"}},
	}

	if thrown := i.bindParameters(env, params, []Value{&NumberValue{Value: 3}}); thrown != nil {
		t.Fatalf("bindParameters threw: %v", thrown.Value)
	}
	b, _, found, _ := env.Get("b")
	if !found || b.String() != "3" {
		t.Errorf("b = %v, found=%v, want 3", b, found)
	}
}

func TestBindParameters_RestCollectsTrailingArgsIntoArray(t *testing.T) {
	i := New(nil)
	env := NewEnclosedEnvironment(i.global)
	params := []*ast.Parameter{
		{Name: &ast.Identifier{Name: "first"}},
		{Name: &ast.Identifier{Name: "rest"}, Rest: true},
	}
	args := []Value{&NumberValue{Value: 1}, &NumberValue{Value: 2}, &NumberValue{Value: 3}}

	if thrown := i.bindParameters(env, params, args); thrown != nil {
		t.Fatalf("bindParameters threw: %v", thrown.Value)
	}
	restVal, _, found, _ := env.Get("rest")
	if !found {
		t.Fatal("rest not bound")
	}
	arr, ok := restVal.(*Object)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("rest = %v, want a 2-element array", restVal)
	}
	if arr.Elements[0].String() != "2" || arr.Elements[1].String() != "3" {
		t.Errorf("rest elements = %v, want [2 3]", arr.Elements)
	}
}

func TestCallFunction_BoundTargetPrependsBoundArgsAndThis(t *testing.T) {
	i := New(nil)
	receiver := NewObject("Object", nil)
	receiver.SetOwn("tag", &StringValue{Value: "recv"})

	target := &FunctionValue{
		Name: "target",
		Params: []*ast.Parameter{
			{Name: &ast.Identifier{Name: "a"}},
			{Name: &ast.Identifier{Name: "b"}},
		},
		ExprBody: &ast.BinaryExpression{
			Operator: "+",
			Left:     &ast.Identifier{Name: "a"},
			Right:    &ast.Identifier{Name: "b"},
		},
	}
	bound := &FunctionValue{
		Name:        "bound target",
		BoundTarget: target,
		BoundThis:   receiver,
		BoundArgs:   []Value{&NumberValue{Value: 1}},
	}

	got, thrown := i.callFunction(bound, Undefined, []Value{&NumberValue{Value: 2}}, nil)
	if thrown != nil {
		t.Fatalf("callFunction threw: %v", thrown.Value)
	}
	if got.String() != "3" {
		t.Errorf("got %q, want %q", got.String(), "3")
	}
}

func TestConstruct_LinksPrototypeAndRunsFieldInitializersSuperFirst(t *testing.T) {
	got := runSource(t, `
		class Base {
			baseField = "base";
		}
		class Derived extends Base {
			derivedField = "derived";
			constructor() { super(); }
		}
		let d = new Derived();
		d.baseField + ":" + d.derivedField;
	`)
	want := "base:derived"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestConstruct_ReturnsInstanceWhenConstructorReturnsNonObject(t *testing.T) {
	got := runSource(t, `
		function C() { this.x = 1; return 42; }
		new C().x;
	`)
	if got.String() != "1" {
		t.Errorf("got %q, want %q", got.String(), "1")
	}
}

func TestConstruct_UsesConstructorReturnedObjectInstead(t *testing.T) {
	got := runSource(t, `
		function C() { this.x = 1; return {x: 2}; }
		new C().x;
	`)
	if got.String() != "2" {
		t.Errorf("got %q, want %q", got.String(), "2")
	}
}
