package interp

import (
	"math"
	"strconv"
	"strings"
)

// installNumberBuiltins wires the Number constructor and Number.prototype
// (spec.md §4.6).
func (i *Interpreter) installNumberBuiltins(g *Globals) {
	p := g.NumberProto
	thisNumber := func(ctx *CallContext) (float64, *ThrowSignal) {
		return ctx.Interp.ToNumberValue(ctx.This)
	}
	i.method(p, "toString", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, thrown := thisNumber(ctx)
		if thrown != nil {
			return nil, thrown
		}
		radix := 10
		if len(args) > 0 && !isNullish(args[0]) {
			radix = int(ToNumber(args[0]))
		}
		if radix == 10 {
			return &StringValue{Value: (&NumberValue{Value: n}).String()}, nil
		}
		return &StringValue{Value: strconv.FormatInt(int64(n), radix)}, nil
	})
	i.method(p, "valueOf", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, thrown := thisNumber(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: n}, nil
	})
	i.method(p, "toFixed", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, thrown := thisNumber(ctx)
		if thrown != nil {
			return nil, thrown
		}
		digits := 0
		if len(args) > 0 {
			digits = int(ToNumber(args[0]))
		}
		return &StringValue{Value: strconv.FormatFloat(n, 'f', digits, 64)}, nil
	})

	ctor := i.nativeFn("Number", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if len(args) == 0 {
			return &NumberValue{Value: 0}, nil
		}
		n, thrown := ctx.Interp.ToNumberValue(args[0])
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: n}, nil
	})
	ctor.OwnPrototype = g.NumberProto
	g.NumberProto.SetOwn("constructor", ctor)
	ctor.SetOwn("MAX_SAFE_INTEGER", &NumberValue{Value: float64(1<<53 - 1)})
	ctor.SetOwn("MIN_SAFE_INTEGER", &NumberValue{Value: -float64(1<<53 - 1)})
	ctor.SetOwn("EPSILON", &NumberValue{Value: 2.220446049250313e-16})
	ctor.SetOwn("POSITIVE_INFINITY", &NumberValue{Value: math.Inf(1)})
	ctor.SetOwn("NEGATIVE_INFINITY", &NumberValue{Value: math.Inf(-1)})
	ctor.SetOwn("NaN", NaN)
	i.method(ctor, "isInteger", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, ok := arg(args, 0).(*NumberValue)
		if !ok {
			return False, nil
		}
		return Bool(!math.IsNaN(n.Value) && !math.IsInf(n.Value, 0) && n.Value == math.Trunc(n.Value)), nil
	})
	i.method(ctor, "isFinite", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, ok := arg(args, 0).(*NumberValue)
		if !ok {
			return False, nil
		}
		return Bool(!math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)), nil
	})
	i.method(ctor, "isNaN", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, ok := arg(args, 0).(*NumberValue)
		return Bool(ok && math.IsNaN(n.Value)), nil
	})
	i.method(ctor, "parseFloat", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: stringToNumber(s)}, nil
	})
	i.method(ctor, "parseInt", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		radix := 10
		if len(args) > 1 && ToNumber(args[1]) != 0 {
			radix = int(ToNumber(args[1]))
		}
		n, err := strconv.ParseInt(s, radix, 64)
		if err != nil {
			return NaN, nil
		}
		return &NumberValue{Value: float64(n)}, nil
	})

	g.NumberCtor = ctor

	i.global.Define("Math", i.buildMathObject(), bindingVar)
	i.global.Define("Infinity", &NumberValue{Value: math.Inf(1)}, bindingVar)
	i.global.Define("isNaN", i.nativeFn("isNaN", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		n, thrown := ctx.Interp.ToNumberValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return Bool(math.IsNaN(n)), nil
	}), bindingVar)
	i.global.Define("parseInt", i.nativeFn("parseInt", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		radix := 10
		if len(args) > 1 && ToNumber(args[1]) != 0 {
			radix = int(ToNumber(args[1]))
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), radix, 64)
		if err != nil {
			return NaN, nil
		}
		return &NumberValue{Value: float64(n)}, nil
	}), bindingVar)
	i.global.Define("parseFloat", i.nativeFn("parseFloat", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: stringToNumber(s)}, nil
	}), bindingVar)
}

// buildMathObject wires the Math global (spec.md §4.6 enrichment, grounded
// on the teacher's builtins_math_basic.go layout).
func (i *Interpreter) buildMathObject() *Object {
	m := NewObject("Object", i.globals.ObjectProto)
	m.SetOwn("PI", &NumberValue{Value: math.Pi})
	m.SetOwn("E", &NumberValue{Value: math.E})
	unary := func(name string, fn func(float64) float64) {
		i.method(m, name, 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
			n, thrown := ctx.Interp.ToNumberValue(arg(args, 0))
			if thrown != nil {
				return nil, thrown
			}
			return &NumberValue{Value: fn(n)}, nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("sign", func(n float64) float64 {
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return n
		}
	})
	i.method(m, "pow", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		base, thrown := ctx.Interp.ToNumberValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		exp, thrown := ctx.Interp.ToNumberValue(arg(args, 1))
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: math.Pow(base, exp)}, nil
	})
	i.method(m, "max", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if len(args) == 0 {
			return &NumberValue{Value: math.Inf(-1)}, nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n, thrown := ctx.Interp.ToNumberValue(a)
			if thrown != nil {
				return nil, thrown
			}
			if math.IsNaN(n) {
				return NaN, nil
			}
			if n > best {
				best = n
			}
		}
		return &NumberValue{Value: best}, nil
	})
	i.method(m, "min", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if len(args) == 0 {
			return &NumberValue{Value: math.Inf(1)}, nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n, thrown := ctx.Interp.ToNumberValue(a)
			if thrown != nil {
				return nil, thrown
			}
			if math.IsNaN(n) {
				return NaN, nil
			}
			if n < best {
				best = n
			}
		}
		return &NumberValue{Value: best}, nil
	})
	i.method(m, "random", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return &NumberValue{Value: 0.5}, nil
	})
	return m
}

func (i *Interpreter) installBooleanBuiltins(g *Globals) {
	p := g.BooleanProto
	i.method(p, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if ToBoolean(ctx.This) {
			return &StringValue{Value: "true"}, nil
		}
		return &StringValue{Value: "false"}, nil
	})
	i.method(p, "valueOf", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return Bool(ToBoolean(ctx.This)), nil
	})
	ctor := i.nativeFn("Boolean", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return Bool(ToBoolean(arg(args, 0))), nil
	})
	ctor.OwnPrototype = g.BooleanProto
	g.BooleanProto.SetOwn("constructor", ctor)
	g.BooleanCtor = ctor
}
