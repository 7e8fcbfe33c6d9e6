package interp

import "github.com/echosoar/jsi-sub000/internal/ast"

// NativeFunc is the callback signature for built-in functions: the teacher's
// "native `instantiate_object_method` slot" pattern (spec.md §4.6) made
// concrete as a typed Go func instead of an untyped callback handle.
// CallContext carries the interpreter, the this-binding, and constructor
// flag; args is the evaluated argument vector. A non-nil returned Throw
// short-circuits the call.
type NativeFunc func(ctx *CallContext, args []Value) (Value, *ThrowSignal)

// CallContext is passed to every native function invocation (spec.md §4.5
// step 5's "CallContext { evaluator, this (weak) }").
type CallContext struct {
	Interp      *Interpreter
	This        Value
	NewTarget   *Object // non-nil when invoked via `new`
	CalleeFn    *FunctionValue
}

// FunctionValue is the callable payload backing a Function-class Object
// (spec.md §3's "value: optional AST fragment ... for functions this is the
// FunctionDeclaration node; for built-in functions this is a native
// callback handle").
type FunctionValue struct {
	Name   string
	Params []*ast.Parameter

	// Body/ExprBody hold the AST for a user-defined function; nil for
	// natives. Exactly one of Body/ExprBody is set for a user function with
	// a block/expression body respectively.
	Body     *ast.BlockStatement
	ExprBody ast.Expression

	IsArrow bool
	IsAsync bool

	// Closure is the weakly-captured defining scope (spec.md §9 "closure
	// over defining scope"); nil for natives, which close over Go state
	// instead.
	Closure *ScopeValue

	// LexicalThis is the `this` value arrow functions capture from their
	// enclosing scope at creation time, since arrows never rebind `this`.
	LexicalThis Value
	HasLexicalThis bool

	// Native holds the callback for built-in functions/methods.
	Native NativeFunc

	// BoundThis/BoundArgs/BoundTarget implement Function.prototype.bind:
	// a bound function is a thin wrapper that always invokes BoundTarget
	// with BoundThis and BoundArgs prepended to whatever is passed at call
	// time.
	BoundTarget *FunctionValue
	BoundThis   Value
	BoundArgs   []Value

	// HomeObject is the object a method literal was defined on, used to
	// resolve `super.foo()` inside method bodies.
	HomeObject *Object

	// ConstructorOf is set for a class's constructor function, letting
	// `new` know which prototype object to link new instances to and
	// which field initializers to run.
	ConstructorOf *ClassInfo
}

// ClassInfo records the declaration-time shape of a class: its field
// initializers (run at construction, before the constructor body) and a
// pointer to its superclass (for `super(...)` and `super.method()`).
type ClassInfo struct {
	Name        string
	Fields      []*ast.ClassMember // non-static field declarations with Kind == ast.PropertyInit
	Super       *FunctionValue
	Constructor *FunctionValue
}

// ThrowSignal carries a thrown value out of a native call (mirroring the
// evaluator's Throw completion for non-native code, spec.md §4.5/§9).
type ThrowSignal struct {
	Value Value
}

func Throw(v Value) *ThrowSignal { return &ThrowSignal{Value: v} }

// Length reports the function's declared arity (the ECMAScript `.length`
// property): the count of parameters before the first default or rest
// parameter.
func (f *FunctionValue) Length() int {
	n := 0
	for _, p := range f.Params {
		if p.Rest || p.Default != nil {
			break
		}
		n++
	}
	return n
}
