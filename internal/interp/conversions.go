package interp

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean implements spec.md §4.3's ToBoolean table: +0, -0, NaN, "",
// null, undefined are falsy; everything else, including every object, is
// truthy.
func ToBoolean(v Value) bool {
	switch val := v.(type) {
	case *UndefinedValue:
		return false
	case *NullValue:
		return false
	case *BooleanValue:
		return val.Value
	case *NumberValue:
		return val.Value != 0 && !math.IsNaN(val.Value)
	case *StringValue:
		return val.Value != ""
	default:
		return true
	}
}

// ToNumber implements spec.md §4.3's ToNumber table for primitives.
// Object values must go through Interpreter.ToNumberValue, which resolves
// ToPrimitive (possibly invoking a user valueOf/toString) before falling
// back to this function.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case *UndefinedValue:
		return math.NaN()
	case *NullValue:
		return 0
	case *BooleanValue:
		if val.Value {
			return 1
		}
		return 0
	case *NumberValue:
		return val.Value
	case *StringValue:
		return stringToNumber(val.Value)
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		n, err := strconv.ParseInt(t[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToString implements spec.md §4.3's ToString table for primitives; Object
// values fall back to the Go-level Object.String() ("[object Class]" /
// array join), not invoking user overrides — use Interpreter.ToStringValue
// for the fully spec-compliant version that does.
func ToString(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}

// ToPrimitive implements spec.md §4.3: primitives return themselves;
// objects call valueOf then toString (or the reverse for hint=="string");
// if neither returns a primitive, a TypeError is raised.
func (i *Interpreter) ToPrimitive(v Value, hint string) (Value, *ThrowSignal) {
	obj, ok := v.(*Object)
	if !ok {
		return v, nil
	}
	order := []string{"valueOf", "toString"}
	if hint == "string" {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		method, found := i.getProperty(obj, name)
		if !found {
			continue
		}
		fnObj, ok := method.(*Object)
		if !ok || fnObj.Fn == nil {
			continue
		}
		result, thrown := i.callFunction(fnObj.Fn, obj, nil, nil)
		if thrown != nil {
			return nil, thrown
		}
		if _, isObj := result.(*Object); !isObj {
			return result, nil
		}
	}
	return nil, Throw(i.newTypeError("Cannot convert object to primitive value"))
}

// ToNumberValue is the fully spec-compliant ToNumber (spec.md §4.3),
// resolving objects via ToPrimitive(number) before delegating to ToNumber.
func (i *Interpreter) ToNumberValue(v Value) (float64, *ThrowSignal) {
	if _, ok := v.(*Object); !ok {
		return ToNumber(v), nil
	}
	prim, thrown := i.ToPrimitive(v, "number")
	if thrown != nil {
		return math.NaN(), thrown
	}
	return ToNumber(prim), nil
}

// ToStringValue is the fully spec-compliant ToString (spec.md §4.3),
// resolving objects via ToPrimitive(string) before delegating to ToString.
func (i *Interpreter) ToStringValue(v Value) (string, *ThrowSignal) {
	if _, ok := v.(*Object); !ok {
		return ToString(v), nil
	}
	prim, thrown := i.ToPrimitive(v, "string")
	if thrown != nil {
		return "", thrown
	}
	return ToString(prim), nil
}

// displayString is console.log's argument stringification: like
// ToStringValue, but never throws — a failed coercion prints a placeholder
// instead of aborting the whole call, matching how Node's console.log is
// forgiving about exotic arguments.
func (i *Interpreter) displayString(v Value) string {
	s, thrown := i.ToStringValue(v)
	if thrown != nil {
		return "[object]"
	}
	return s
}

// StrictEquals implements spec.md §4.3's `===`: same tag required,
// NaN !== NaN, +0 === -0, object handles equal iff same identity.
func StrictEquals(a, b Value) bool {
	switch av := a.(type) {
	case *UndefinedValue:
		_, ok := b.(*UndefinedValue)
		return ok
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *BooleanValue:
		bv, ok := b.(*BooleanValue)
		return ok && av.Value == bv.Value
	case *NumberValue:
		bv, ok := b.(*NumberValue)
		if !ok {
			return false
		}
		if math.IsNaN(av.Value) || math.IsNaN(bv.Value) {
			return false
		}
		return av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	default:
		return false
	}
}

// AbstractEquals implements spec.md §4.3's `==`: same-tag falls back to
// strict equality; otherwise coerces per the table (Null<->Undefined;
// Number<->String; Boolean<->anything; Object<->primitive via ToPrimitive).
func (i *Interpreter) AbstractEquals(a, b Value) (bool, *ThrowSignal) {
	if sameTag(a, b) {
		return StrictEquals(a, b), nil
	}
	_, aNull := a.(*NullValue)
	_, aUndef := a.(*UndefinedValue)
	_, bNull := b.(*NullValue)
	_, bUndef := b.(*UndefinedValue)
	if (aNull || aUndef) && (bNull || bUndef) {
		return true, nil
	}
	if aNull || aUndef || bNull || bUndef {
		return false, nil
	}

	if av, ok := a.(*BooleanValue); ok {
		n := 0.0
		if av.Value {
			n = 1
		}
		return i.AbstractEquals(&NumberValue{Value: n}, b)
	}
	if bv, ok := b.(*BooleanValue); ok {
		n := 0.0
		if bv.Value {
			n = 1
		}
		return i.AbstractEquals(a, &NumberValue{Value: n})
	}

	_, aNum := a.(*NumberValue)
	_, bStr := b.(*StringValue)
	if aNum && bStr {
		bn, thrown := i.ToNumberValue(b)
		if thrown != nil {
			return false, thrown
		}
		return ToNumber(a) == bn, nil
	}
	_, aStr := a.(*StringValue)
	_, bNum := b.(*NumberValue)
	if aStr && bNum {
		an, thrown := i.ToNumberValue(a)
		if thrown != nil {
			return false, thrown
		}
		return an == ToNumber(b), nil
	}

	if aObj, ok := a.(*Object); ok {
		if _, bIsObj := b.(*Object); !bIsObj {
			prim, thrown := i.ToPrimitive(aObj, "default")
			if thrown != nil {
				return false, thrown
			}
			return i.AbstractEquals(prim, b)
		}
	}
	if bObj, ok := b.(*Object); ok {
		if _, aIsObj := a.(*Object); !aIsObj {
			prim, thrown := i.ToPrimitive(bObj, "default")
			if thrown != nil {
				return false, thrown
			}
			return i.AbstractEquals(a, prim)
		}
	}
	return false, nil
}

func sameTag(a, b Value) bool {
	return typeTag(a) == typeTag(b)
}

func typeTag(v Value) string {
	switch v.(type) {
	case *UndefinedValue:
		return "undefined"
	case *NullValue:
		return "null"
	case *BooleanValue:
		return "boolean"
	case *NumberValue:
		return "number"
	case *StringValue:
		return "string"
	case *Object:
		return "object"
	default:
		return "unknown"
	}
}

// typeofString implements the `typeof` operator (spec.md §4.5): never
// raises on undeclared identifiers (the caller handles that separately by
// checking Has before evaluating), and returns one of the fixed strings.
func typeofString(v Value) string {
	switch val := v.(type) {
	case *UndefinedValue:
		return "undefined"
	case *NullValue:
		return "object"
	case *BooleanValue:
		return "boolean"
	case *NumberValue:
		return "number"
	case *StringValue:
		return "string"
	case *Object:
		if val.Class == "Function" {
			return "function"
		}
		return "object"
	default:
		return "object"
	}
}
