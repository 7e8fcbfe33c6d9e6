// Package interp provides the evaluator and runtime value model for the
// ECMAScript subset: a tree-walking evaluator over the AST produced by
// internal/parser, operating on a small tagged-union Value type.
package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/echosoar/jsi-sub000/internal/interp/refs"
)

// Value represents a runtime value. All concrete value types implement this
// interface; the evaluator never uses interface{} for a language value.
type Value interface {
	// Type returns the ECMAScript typeof-style type tag.
	Type() string
	// String returns the value's ToString() representation.
	String() string
}

// NumberValue is an IEEE-754 double, the sole numeric type.
type NumberValue struct {
	Value float64
}

func (n *NumberValue) Type() string { return "number" }
func (n *NumberValue) String() string {
	if math.IsNaN(n.Value) {
		return "NaN"
	}
	if math.IsInf(n.Value, 1) {
		return "Infinity"
	}
	if math.IsInf(n.Value, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringValue is a UTF-8 Go string standing in for a UTF-16 ECMAScript string.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string   { return "string" }
func (s *StringValue) String() string { return s.Value }

// BooleanValue is `true` or `false`.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return "boolean" }
func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NullValue is the `null` literal — explicit absence of an object value.
type NullValue struct{}

func (n *NullValue) Type() string   { return "object" } // typeof null === "object", matching spec.md §3
func (n *NullValue) String() string { return "null" }

// UndefinedValue is the `undefined` value — an unset binding or missing value.
type UndefinedValue struct{}

func (u *UndefinedValue) Type() string   { return "undefined" }
func (u *UndefinedValue) String() string { return "undefined" }

var (
	Null      = &NullValue{}
	Undefined = &UndefinedValue{}
	True      = &BooleanValue{Value: true}
	False     = &BooleanValue{Value: false}
	NaN       = &NumberValue{Value: math.NaN()}
)

// Bool returns the canonical True/False singleton for b.
func Bool(b bool) *BooleanValue {
	if b {
		return True
	}
	return False
}

// PropertyKind distinguishes a plain data property from an accessor pair.
type PropertyKind int

const (
	DataProperty PropertyKind = iota
	AccessorProperty
)

// Property is one named slot on an Object: either a plain value, or a
// getter/setter pair (either half may be nil).
type Property struct {
	Kind PropertyKind
	Val  Value

	Getter *FunctionValue
	Setter *FunctionValue
}

// Object is the shared representation backing plain objects, arrays,
// functions, errors, and boxed primitives. property_keys is kept alongside
// the properties map to preserve insertion order, per spec.md §3's ordered
// enumeration invariant.
type Object struct {
	Class      string // "Object", "Array", "Function", "Error", "Promise", ...
	properties map[string]*Property
	keys       []string

	// OwnPrototype is the strong handle held by a constructor Function
	// object to its own `.prototype` object (spec.md §3: "optional strong
	// handle ... when this object is itself a constructor"). nil for
	// ordinary instances.
	OwnPrototype *Object

	// Internal slots (spec.md §4.3's "[[Property]]" style hidden fields),
	// keyed by bracketed name for readability in debuggers. The prototype
	// chain link ("[[Property]]", a.k.a. __proto__) is stored here as a
	// *RefValue so it is weak, per spec.md §3 invariant 2.
	internalSlots map[string]any

	// Elements backs Array objects directly for O(1) indexed access;
	// "length" is not stored but computed from (and written through to)
	// Elements by arrayVirtualGet/arrayVirtualSet.
	Elements []Value

	// Fn is set for Function objects: the callable backing this object.
	Fn *FunctionValue
}

const slotProto = "[[Property]]"

// NewObject creates an empty object of the given class whose prototype
// chain link (the weak "[[Property]]" slot) points at proto.
func NewObject(class string, proto *Object) *Object {
	o := &Object{
		Class:         class,
		properties:    make(map[string]*Property),
		internalSlots: make(map[string]any),
	}
	o.SetProto(proto)
	return o
}

// SetProto (re)points o's weak prototype-chain link at proto (nil clears
// it, giving o a null prototype).
func (o *Object) SetProto(proto *Object) {
	if proto == nil {
		delete(o.internalSlots, slotProto)
		return
	}
	o.internalSlots[slotProto] = NewRefValue(proto)
}

// Proto resolves o's weak prototype-chain link, promoting it to a strong
// pointer. Returns (nil, false) if o has a null prototype or the target has
// been collected (spec.md §9: a failed promotion yields Undefined at the
// property-read layer).
func (o *Object) Proto() (*Object, bool) {
	slot, ok := o.internalSlots[slotProto]
	if !ok {
		return nil, false
	}
	return slot.(*RefValue).Resolve()
}

func (o *Object) Type() string { return "object" }

// String is a best-effort Go-level stringification used for debugging and
// %v formatting; it does not invoke user-defined toString/valueOf methods
// since it has no Interpreter to call through. Host-visible ToString
// semantics (spec.md §4.3), including user overrides, live in
// Interpreter.ToStringValue in conversions.go.
func (o *Object) String() string {
	if o.Class == "Array" {
		parts := make([]string, len(o.Elements))
		for i, e := range o.Elements {
			if e == nil || e == Undefined || e == Null {
				parts[i] = ""
				continue
			}
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	}
	return "[object " + o.Class + "]"
}

// SetOwn defines or overwrites a data property directly on o, appending to
// the insertion-order key list only if the key is new.
func (o *Object) SetOwn(key string, val Value) {
	if p, ok := o.properties[key]; ok {
		p.Kind = DataProperty
		p.Val = val
		p.Getter, p.Setter = nil, nil
		return
	}
	o.properties[key] = &Property{Kind: DataProperty, Val: val}
	o.keys = append(o.keys, key)
}

// DefineAccessor installs a getter/setter pair for key, merging with an
// existing accessor property if one is already defined there (`{get a(){}}`
// followed later by `{set a(v){}}` in the same literal yields one property).
func (o *Object) DefineAccessor(key string, getter, setter *FunctionValue) {
	p, ok := o.properties[key]
	if !ok {
		p = &Property{Kind: AccessorProperty}
		o.properties[key] = p
		o.keys = append(o.keys, key)
	}
	p.Kind = AccessorProperty
	if getter != nil {
		p.Getter = getter
	}
	if setter != nil {
		p.Setter = setter
	}
}

// GetOwnProperty returns the property descriptor defined directly on o
// (not walking the prototype chain).
func (o *Object) GetOwnProperty(key string) (*Property, bool) {
	p, ok := o.properties[key]
	return p, ok
}

// Delete removes an own property, returning whether it existed.
func (o *Object) Delete(key string) bool {
	if _, ok := o.properties[key]; !ok {
		return false
	}
	delete(o.properties, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns this object's own property keys in insertion order.
func (o *Object) OwnKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// SetSlot stores an internal ([[Name]]-style) slot, invisible to ordinary
// property access.
func (o *Object) SetSlot(name string, v any) { o.internalSlots[name] = v }

// Slot retrieves an internal slot.
func (o *Object) Slot(name string) (any, bool) {
	v, ok := o.internalSlots[name]
	return v, ok
}

// NewArray creates an Array object with the given elements.
func NewArray(proto *Object, elements []Value) *Object {
	arr := NewObject("Array", proto)
	arr.Elements = elements
	return arr
}

// RefValue is a non-owning back-reference to an Object, used for
// `prototype.constructor`, `__proto__`, and any other cycle-forming edge
// (spec.md §3's `RefObject(weak<Object>)` variant). It satisfies Value so it
// can sit in a Property slot or internal slot like any other value, but
// resolving it never extends the target's lifetime.
type RefValue struct {
	ref refs.Weak[Object]
}

// NewRefValue captures a weak reference to target.
func NewRefValue(target *Object) *RefValue {
	return &RefValue{ref: refs.NewWeak(target)}
}

func (r *RefValue) Type() string { return "object" }
func (r *RefValue) String() string {
	if o, ok := r.ref.Get(); ok {
		return o.String()
	}
	return "null"
}

// Resolve promotes the weak reference to a strong *Object, or (nil, false)
// if the target has already been collected.
func (r *RefValue) Resolve() (*Object, bool) { return r.ref.Get() }

// ScopeValue is the captured defining environment for a closure
// (spec.md §3's `Scope(weak<Scope>)` variant, §9's "closure over defining
// scope"). Weak capture means a function value stored back onto an object
// reachable from its own defining scope does not keep that scope alive.
type ScopeValue struct {
	ref refs.Weak[Environment]
}

// NewScopeValue captures a weak reference to env.
func NewScopeValue(env *Environment) *ScopeValue {
	return &ScopeValue{ref: refs.NewWeak(env)}
}

func (s *ScopeValue) Type() string   { return "scope" }
func (s *ScopeValue) String() string { return "[scope]" }

// Resolve promotes the weak reference to a strong *Environment, or
// (nil, false) if the target environment has already been collected.
func (s *ScopeValue) Resolve() (*Environment, bool) { return s.ref.Get() }
