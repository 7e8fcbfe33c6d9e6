package interp

// installBuiltins wires up every required intrinsic (spec.md §4.6, §9's
// "create empty intrinsic objects -> link their prototypes to each other ->
// install methods"), grounded on the teacher's per-type builtins_*.go file
// layout and constructor-intrinsic wiring pattern. i.globals is assigned
// before the prototypes are fully populated so helper methods that close
// over it (wrapFunction, nativeFn) can run while this executes.
func (i *Interpreter) installBuiltins() *Globals {
	g := &Globals{}
	i.globals = g

	g.ObjectProto = NewObject("Object", nil)
	g.FunctionProto = NewObject("Function", g.ObjectProto)
	g.ArrayProto = NewObject("Object", g.ObjectProto)
	g.NumberProto = NewObject("Object", g.ObjectProto)
	g.StringProto = NewObject("Object", g.ObjectProto)
	g.BooleanProto = NewObject("Object", g.ObjectProto)
	g.ErrorProto = NewObject("Object", g.ObjectProto)
	g.PromiseProto = NewObject("Object", g.ObjectProto)

	i.installObjectBuiltins(g)
	i.installFunctionBuiltins(g)
	i.installArrayBuiltins(g)
	i.installNumberBuiltins(g)
	i.installStringBuiltins(g)
	i.installBooleanBuiltins(g)
	i.installErrorBuiltins(g)
	i.installPromiseBuiltins(g)
	i.installConsole(g)
	i.installEncodingBuiltins(g)

	i.global.Define("Object", g.ObjectCtor, bindingVar)
	i.global.Define("Array", g.ArrayCtor, bindingVar)
	i.global.Define("Function", g.FunctionCtor, bindingVar)
	i.global.Define("Number", g.NumberCtor, bindingVar)
	i.global.Define("String", g.StringCtor, bindingVar)
	i.global.Define("Boolean", g.BooleanCtor, bindingVar)
	i.global.Define("Error", g.ErrorCtor, bindingVar)
	i.global.Define("TypeError", g.TypeErrorCtor, bindingVar)
	i.global.Define("RangeError", g.RangeErrorCtor, bindingVar)
	i.global.Define("ReferenceError", g.ReferenceErrorCtor, bindingVar)
	i.global.Define("SyntaxError", g.SyntaxErrorCtor, bindingVar)
	i.global.Define("Promise", g.PromiseCtor, bindingVar)
	i.global.Define("console", g.Console, bindingVar)
	i.global.Define("NaN", NaN, bindingVar)
	i.global.Define("undefined", Undefined, bindingConst)
	i.global.Define("globalThis", NewObject("Object", g.ObjectProto), bindingVar)
	i.global.BindThis(Undefined)

	return g
}

// nativeFn builds a callable Function object around a Go callback, the
// native-function analogue of wrapFunction for user-defined functions.
func (i *Interpreter) nativeFn(name string, length int, fn NativeFunc) *Object {
	fv := &FunctionValue{Name: name, Native: fn}
	obj := NewObject("Function", i.globals.FunctionProto)
	obj.Fn = fv
	obj.SetOwn("name", &StringValue{Value: name})
	obj.SetOwn("length", &NumberValue{Value: float64(length)})
	return obj
}

// method installs a native method directly onto target under name.
func (i *Interpreter) method(target *Object, name string, length int, fn NativeFunc) {
	target.SetOwn(name, i.nativeFn(name, length, fn))
}

func arg(args []Value, idx int) Value {
	if idx < len(args) {
		if args[idx] == nil {
			return Undefined
		}
		return args[idx]
	}
	return Undefined
}

// installObjectBuiltins wires the Object constructor and Object.prototype
// (spec.md §4.6), grounded on the teacher's internal/interp/builtins_core.go
// intrinsic-installation pattern.
func (i *Interpreter) installObjectBuiltins(g *Globals) {
	i.method(g.ObjectProto, "hasOwnProperty", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := ctx.This.(*Object)
		if !ok {
			return False, nil
		}
		key, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		_, found := obj.GetOwnProperty(key)
		return Bool(found), nil
	})
	i.method(g.ObjectProto, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if obj, ok := ctx.This.(*Object); ok {
			return &StringValue{Value: "[object " + obj.Class + "]"}, nil
		}
		return &StringValue{Value: "[object Object]"}, nil
	})
	i.method(g.ObjectProto, "isPrototypeOf", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		self, ok := ctx.This.(*Object)
		target, ok2 := arg(args, 0).(*Object)
		if !ok || !ok2 {
			return False, nil
		}
		current, has := target.Proto()
		for has {
			if current == self {
				return True, nil
			}
			current, has = current.Proto()
		}
		return False, nil
	})

	ctor := i.nativeFn("Object", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if v, ok := arg(args, 0).(*Object); ok {
			return v, nil
		}
		return NewObject("Object", g.ObjectProto), nil
	})
	ctor.OwnPrototype = g.ObjectProto
	g.ObjectProto.SetOwn("constructor", ctor)

	i.method(ctor, "keys", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return NewArray(g.ArrayProto, nil), nil
		}
		keys := ownEnumerableKeys(obj)
		vals := make([]Value, len(keys))
		for idx, k := range keys {
			vals[idx] = &StringValue{Value: k}
		}
		return NewArray(g.ArrayProto, vals), nil
	})
	i.method(ctor, "values", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return NewArray(g.ArrayProto, nil), nil
		}
		keys := ownEnumerableKeys(obj)
		vals := make([]Value, len(keys))
		for idx, k := range keys {
			v, _ := ctx.Interp.getProperty(obj, k)
			vals[idx] = v
		}
		return NewArray(g.ArrayProto, vals), nil
	})
	i.method(ctor, "entries", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return NewArray(g.ArrayProto, nil), nil
		}
		keys := ownEnumerableKeys(obj)
		vals := make([]Value, len(keys))
		for idx, k := range keys {
			v, _ := ctx.Interp.getProperty(obj, k)
			vals[idx] = NewArray(g.ArrayProto, []Value{&StringValue{Value: k}, v})
		}
		return NewArray(g.ArrayProto, vals), nil
	})
	i.method(ctor, "assign", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		target, ok := arg(args, 0).(*Object)
		if !ok {
			return arg(args, 0), nil
		}
		for _, src := range args[1:] {
			srcObj, ok := src.(*Object)
			if !ok {
				continue
			}
			for _, k := range ownEnumerableKeys(srcObj) {
				v, _ := ctx.Interp.getProperty(srcObj, k)
				if thrown := ctx.Interp.setProperty(target, k, v); thrown != nil {
					return nil, thrown
				}
			}
		}
		return target, nil
	})
	i.method(ctor, "create", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		var proto *Object
		if p, ok := arg(args, 0).(*Object); ok {
			proto = p
		}
		return NewObject("Object", proto), nil
	})
	i.method(ctor, "getPrototypeOf", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return Null, nil
		}
		proto, has := obj.Proto()
		if !has {
			return Null, nil
		}
		return proto, nil
	})
	i.method(ctor, "setPrototypeOf", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return arg(args, 0), nil
		}
		if p, ok := arg(args, 1).(*Object); ok {
			obj.SetProto(p)
		} else {
			obj.SetProto(nil)
		}
		return obj, nil
	})
	i.method(ctor, "getOwnPropertyNames", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return NewArray(g.ArrayProto, nil), nil
		}
		keys := ownEnumerableKeys(obj)
		vals := make([]Value, len(keys))
		for idx, k := range keys {
			vals[idx] = &StringValue{Value: k}
		}
		return NewArray(g.ArrayProto, vals), nil
	})
	i.method(ctor, "defineProperty", 3, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return nil, Throw(ctx.Interp.newTypeError("Object.defineProperty called on non-object"))
		}
		key, thrown := ctx.Interp.ToStringValue(arg(args, 1))
		if thrown != nil {
			return nil, thrown
		}
		desc, ok := arg(args, 2).(*Object)
		if !ok {
			return obj, nil
		}
		getV, hasGet := desc.GetOwnProperty("get")
		setV, hasSet := desc.GetOwnProperty("set")
		if hasGet || hasSet {
			var getter, setter *FunctionValue
			if hasGet {
				if fo, ok := getV.Val.(*Object); ok {
					getter = fo.Fn
				}
			}
			if hasSet {
				if fo, ok := setV.Val.(*Object); ok {
					setter = fo.Fn
				}
			}
			obj.DefineAccessor(key, getter, setter)
			return obj, nil
		}
		if v, ok := desc.GetOwnProperty("value"); ok {
			obj.SetOwn(key, v.Val)
		}
		return obj, nil
	})

	g.ObjectCtor = ctor
}

func (i *Interpreter) installFunctionBuiltins(g *Globals) {
	i.method(g.FunctionProto, "call", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		fnObj, ok := ctx.This.(*Object)
		if !ok || fnObj.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("Function.prototype.call called on non-function"))
		}
		var rest []Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return ctx.Interp.callFunction(fnObj.Fn, arg(args, 0), rest, nil)
	})
	i.method(g.FunctionProto, "apply", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		fnObj, ok := ctx.This.(*Object)
		if !ok || fnObj.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("Function.prototype.apply called on non-function"))
		}
		var rest []Value
		if arr, ok := arg(args, 1).(*Object); ok && arr.Class == "Array" {
			rest = arr.Elements
		}
		return ctx.Interp.callFunction(fnObj.Fn, arg(args, 0), rest, nil)
	})
	i.method(g.FunctionProto, "bind", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		fnObj, ok := ctx.This.(*Object)
		if !ok || fnObj.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("Function.prototype.bind called on non-function"))
		}
		var boundArgs []Value
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}
		bound := &FunctionValue{
			Name:        "bound " + fnObj.Fn.Name,
			BoundTarget: fnObj.Fn,
			BoundThis:   arg(args, 0),
			BoundArgs:   boundArgs,
		}
		return ctx.Interp.wrapFunction(bound), nil
	})
	i.method(g.FunctionProto, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if fnObj, ok := ctx.This.(*Object); ok && fnObj.Fn != nil {
			return &StringValue{Value: "function " + fnObj.Fn.Name + "() { [native code] }"}, nil
		}
		return &StringValue{Value: "function () {}"}, nil
	})

	ctor := i.nativeFn("Function", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return nil, Throw(ctx.Interp.newTypeError("Function constructor is not supported"))
	})
	ctor.OwnPrototype = g.FunctionProto
	g.FunctionProto.SetOwn("constructor", ctor)
	g.FunctionCtor = ctor
}
