package interp

import "math"

// installArrayBuiltins wires the Array constructor and Array.prototype
// (spec.md §4.6), grounded on the teacher's per-type builtins file layout.
func (i *Interpreter) installArrayBuiltins(g *Globals) {
	p := g.ArrayProto
	i.method(p, "push", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		arr.Elements = append(arr.Elements, args...)
		return &NumberValue{Value: float64(len(arr.Elements))}, nil
	})
	i.method(p, "pop", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		n := len(arr.Elements)
		if n == 0 {
			return Undefined, nil
		}
		last := arr.Elements[n-1]
		arr.Elements = arr.Elements[:n-1]
		if last == nil {
			return Undefined, nil
		}
		return last, nil
	})
	i.method(p, "shift", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		if len(arr.Elements) == 0 {
			return Undefined, nil
		}
		first := arr.Elements[0]
		arr.Elements = arr.Elements[1:]
		if first == nil {
			return Undefined, nil
		}
		return first, nil
	})
	i.method(p, "unshift", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		arr.Elements = append(append([]Value{}, args...), arr.Elements...)
		return &NumberValue{Value: float64(len(arr.Elements))}, nil
	})
	i.method(p, "slice", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		start, end := sliceBounds(args, len(arr.Elements))
		out := append([]Value{}, arr.Elements[start:end]...)
		return NewArray(g.ArrayProto, out), nil
	})
	i.method(p, "splice", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		n := len(arr.Elements)
		start := clampIndex(ToNumber(arg(args, 0)), n)
		deleteCount := n - start
		if len(args) > 1 {
			dc := int(ToNumber(arg(args, 1)))
			if dc < 0 {
				dc = 0
			}
			if dc > n-start {
				dc = n - start
			}
			deleteCount = dc
		}
		removed := append([]Value{}, arr.Elements[start:start+deleteCount]...)
		var inserted []Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		tail := append([]Value{}, arr.Elements[start+deleteCount:]...)
		arr.Elements = append(arr.Elements[:start], append(inserted, tail...)...)
		return NewArray(g.ArrayProto, removed), nil
	})
	i.method(p, "concat", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		out := append([]Value{}, arr.Elements...)
		for _, a := range args {
			if other, ok := a.(*Object); ok && other.Class == "Array" {
				out = append(out, other.Elements...)
			} else {
				out = append(out, a)
			}
		}
		return NewArray(g.ArrayProto, out), nil
	})
	i.method(p, "join", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		sep := ","
		if len(args) > 0 {
			s, thrown := ctx.Interp.ToStringValue(args[0])
			if thrown != nil {
				return nil, thrown
			}
			sep = s
		}
		out := ""
		for idx, e := range arr.Elements {
			if idx > 0 {
				out += sep
			}
			if e == nil || isNullish(e) {
				continue
			}
			s, thrown := ctx.Interp.ToStringValue(e)
			if thrown != nil {
				return nil, thrown
			}
			out += s
		}
		return &StringValue{Value: out}, nil
	})
	i.method(p, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		return &StringValue{Value: arr.String()}, nil
	})
	i.method(p, "indexOf", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		target := arg(args, 0)
		for idx, e := range arr.Elements {
			if e != nil && StrictEquals(e, target) {
				return &NumberValue{Value: float64(idx)}, nil
			}
		}
		return &NumberValue{Value: -1}, nil
	})
	i.method(p, "includes", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		target := arg(args, 0)
		for _, e := range arr.Elements {
			if e != nil && StrictEquals(e, target) {
				return True, nil
			}
		}
		return False, nil
	})
	i.method(p, "reverse", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		for l, r := 0, len(arr.Elements)-1; l < r; l, r = l+1, r-1 {
			arr.Elements[l], arr.Elements[r] = arr.Elements[r], arr.Elements[l]
		}
		return arr, nil
	})
	i.method(p, "forEach", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, ok := arg(args, 0).(*Object)
		if !ok || cb.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("callback is not a function"))
		}
		for idx, e := range arr.Elements {
			if e == nil {
				e = Undefined
			}
			if _, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{e, &NumberValue{Value: float64(idx)}, arr}, nil); thrown != nil {
				return nil, thrown
			}
		}
		return Undefined, nil
	})
	i.method(p, "map", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, ok := arg(args, 0).(*Object)
		if !ok || cb.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("callback is not a function"))
		}
		out := make([]Value, len(arr.Elements))
		for idx, e := range arr.Elements {
			if e == nil {
				e = Undefined
			}
			v, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{e, &NumberValue{Value: float64(idx)}, arr}, nil)
			if thrown != nil {
				return nil, thrown
			}
			out[idx] = v
		}
		return NewArray(g.ArrayProto, out), nil
	})
	i.method(p, "filter", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, ok := arg(args, 0).(*Object)
		if !ok || cb.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("callback is not a function"))
		}
		var out []Value
		for idx, e := range arr.Elements {
			if e == nil {
				e = Undefined
			}
			v, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{e, &NumberValue{Value: float64(idx)}, arr}, nil)
			if thrown != nil {
				return nil, thrown
			}
			if ToBoolean(v) {
				out = append(out, e)
			}
		}
		return NewArray(g.ArrayProto, out), nil
	})
	i.method(p, "reduce", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, ok := arg(args, 0).(*Object)
		if !ok || cb.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("callback is not a function"))
		}
		start := 0
		var acc Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(arr.Elements) == 0 {
				return nil, Throw(ctx.Interp.newTypeError("Reduce of empty array with no initial value"))
			}
			acc = arr.Elements[0]
			start = 1
		}
		for idx := start; idx < len(arr.Elements); idx++ {
			e := arr.Elements[idx]
			if e == nil {
				e = Undefined
			}
			v, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{acc, e, &NumberValue{Value: float64(idx)}, arr}, nil)
			if thrown != nil {
				return nil, thrown
			}
			acc = v
		}
		return acc, nil
	})
	i.method(p, "find", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, ok := arg(args, 0).(*Object)
		if !ok || cb.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("callback is not a function"))
		}
		for idx, e := range arr.Elements {
			if e == nil {
				e = Undefined
			}
			v, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{e, &NumberValue{Value: float64(idx)}, arr}, nil)
			if thrown != nil {
				return nil, thrown
			}
			if ToBoolean(v) {
				return e, nil
			}
		}
		return Undefined, nil
	})
	i.method(p, "sort", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr := ctx.This.(*Object)
		cb, _ := arg(args, 0).(*Object)
		var sortErr *ThrowSignal
		elements := arr.Elements
		for idx := 1; idx < len(elements); idx++ {
			j := idx
			for j > 0 {
				less, thrown := arrayLess(ctx.Interp, cb, elements[j], elements[j-1])
				if thrown != nil {
					sortErr = thrown
					break
				}
				if !less {
					break
				}
				elements[j], elements[j-1] = elements[j-1], elements[j]
				j--
			}
			if sortErr != nil {
				break
			}
		}
		if sortErr != nil {
			return nil, sortErr
		}
		return arr, nil
	})

	ctor := i.nativeFn("Array", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if len(args) == 1 {
			if n, ok := args[0].(*NumberValue); ok {
				return NewArray(g.ArrayProto, make([]Value, int(n.Value))), nil
			}
		}
		return NewArray(g.ArrayProto, append([]Value{}, args...)), nil
	})
	ctor.OwnPrototype = g.ArrayProto
	g.ArrayProto.SetOwn("constructor", ctor)
	i.method(ctor, "isArray", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		return Bool(ok && obj.Class == "Array"), nil
	})
	i.method(ctor, "from", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		src, ok := arg(args, 0).(*Object)
		if !ok {
			return NewArray(g.ArrayProto, nil), nil
		}
		var elements []Value
		if src.Class == "Array" {
			elements = append([]Value{}, src.Elements...)
		} else {
			for _, k := range ownEnumerableKeys(src) {
				v, _ := ctx.Interp.getProperty(src, k)
				elements = append(elements, v)
			}
		}
		if cb, ok := arg(args, 1).(*Object); ok && cb.Fn != nil {
			for idx, e := range elements {
				v, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, []Value{e, &NumberValue{Value: float64(idx)}}, nil)
				if thrown != nil {
					return nil, thrown
				}
				elements[idx] = v
			}
		}
		return NewArray(g.ArrayProto, elements), nil
	})
	i.method(ctor, "of", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return NewArray(g.ArrayProto, append([]Value{}, args...)), nil
	})

	g.ArrayCtor = ctor
}

func arrayLess(i *Interpreter, cb *Object, a, b Value) (bool, *ThrowSignal) {
	if a == nil {
		a = Undefined
	}
	if b == nil {
		b = Undefined
	}
	if cb != nil && cb.Fn != nil {
		v, thrown := i.callFunction(cb.Fn, Undefined, []Value{a, b}, nil)
		if thrown != nil {
			return false, thrown
		}
		return ToNumber(v) < 0, nil
	}
	as, thrown := i.ToStringValue(a)
	if thrown != nil {
		return false, thrown
	}
	bs, thrown := i.ToStringValue(b)
	if thrown != nil {
		return false, thrown
	}
	return as < bs, nil
}

func sliceBounds(args []Value, length int) (int, int) {
	start := 0
	end := length
	if len(args) > 0 {
		start = clampIndex(ToNumber(args[0]), length)
	}
	if len(args) > 1 && !isNullish(args[1]) {
		end = clampIndex(ToNumber(args[1]), length)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(n float64, length int) int {
	if math.IsNaN(n) {
		return 0
	}
	idx := int(n)
	if n < 0 {
		idx = length + int(n)
	}
	if idx < 0 {
		idx = 0
	}
	if idx > length {
		idx = length
	}
	return idx
}
