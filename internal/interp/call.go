package interp

import (
	"github.com/echosoar/jsi-sub000/internal/ast"
	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// callFunction implements spec.md §4.5's function invocation steps:
// 1. build a new scope whose parent is the function's captured define_scope
// 2. bind parameters (unset parameters become Undefined)
// 3. hoist declarations in the body
// 4. evaluate body; translate Return(v) to v; missing return -> Undefined
// 5. for built-ins, call the native callback with a CallContext.
func (i *Interpreter) callFunction(fn *FunctionValue, this Value, args []Value, newTarget *Object) (Value, *ThrowSignal) {
	if fn.BoundTarget != nil {
		combined := make([]Value, 0, len(fn.BoundArgs)+len(args))
		combined = append(combined, fn.BoundArgs...)
		combined = append(combined, args...)
		return i.callFunction(fn.BoundTarget, fn.BoundThis, combined, newTarget)
	}

	if fn.Native != nil {
		ctx := &CallContext{Interp: i, This: this, NewTarget: newTarget, CalleeFn: fn}
		return fn.Native(ctx, args)
	}

	closureEnv := i.global
	if fn.Closure != nil {
		if env, ok := fn.Closure.Resolve(); ok {
			closureEnv = env
		}
	}

	callEnv := NewCallEnvironment(closureEnv, nil)
	if fn.IsArrow {
		// arrow functions never bind their own `this`; ResolveThis walks up
		// to the enclosing non-arrow binding.
	} else if fn.HasLexicalThis {
		callEnv.BindThis(fn.LexicalThis)
	} else {
		callEnv.BindThis(this)
	}

	if fn.HomeObject != nil {
		// lets `super.method()`/`super(...)` inside this body locate the home
		// object's own prototype link without threading it through every
		// evaluator call (memberchain.go's resolveSuperProto/
		// callSuperConstructor read it back out).
		callEnv.Define("__home__", fn.HomeObject, bindingConst)
	}

	if thrown := i.bindParameters(callEnv, fn.Params, args); thrown != nil {
		return nil, thrown
	}

	name := fn.Name
	if name == "" {
		name = "<anonymous>"
	}
	i.pushFrame(name, lexer.Position{})
	defer i.popFrame()

	if fn.ExprBody != nil {
		v, thrown := i.evalExpression(callEnv, fn.ExprBody)
		if thrown != nil {
			return nil, thrown
		}
		return v, nil
	}

	hoistVarAndFunctionDecls(i, callEnv, fn.Body.Statements, false)
	for _, stmt := range fn.Body.Statements {
		c := i.evalStatement(callEnv, stmt)
		switch c.Type {
		case Return:
			if c.Value == nil {
				return Undefined, nil
			}
			return c.Value, nil
		case ThrowCompletion:
			return nil, Throw(c.Value)
		}
	}
	return Undefined, nil
}

// bindParameters assigns args to fn's formal parameters per spec.md §4.5
// step 2, evaluating default-value expressions (which may reference earlier
// parameters) in callEnv, and collecting a trailing rest parameter into an
// Array.
func (i *Interpreter) bindParameters(callEnv *Environment, params []*ast.Parameter, args []Value) *ThrowSignal {
	for idx, p := range params {
		if p.Rest {
			rest := []Value{}
			if idx < len(args) {
				rest = append(rest, args[idx:]...)
			}
			arr := NewArray(i.globals.ArrayProto, rest)
			callEnv.Define(p.Name.Name, arr, bindingLet)
			return nil
		}
		var v Value = Undefined
		if idx < len(args) && args[idx] != nil {
			v = args[idx]
		}
		if _, isUndef := v.(*UndefinedValue); isUndef && p.Default != nil {
			dv, thrown := i.evalExpression(callEnv, p.Default)
			if thrown != nil {
				return thrown
			}
			v = dv
		}
		callEnv.Define(p.Name.Name, v, bindingLet)
	}
	return nil
}

// construct implements spec.md §4.5's `new C(args)`: create a new object
// whose weak prototype-chain link points at C.prototype; invoke C with
// `this` bound to the new object; if the call returns an object, use it,
// otherwise use the new object.
func (i *Interpreter) construct(ctor *Object, args []Value) (Value, *ThrowSignal) {
	if ctor.Fn == nil {
		return nil, Throw(i.newTypeError(ctor.String() + " is not a constructor"))
	}
	proto := i.globals.ObjectProto
	if ctor.OwnPrototype != nil {
		proto = ctor.OwnPrototype
	}
	instance := NewObject("Object", proto)
	instance.SetSlot("[[Constructor]]", NewRefValue(ctor))

	if info := ctor.Fn.ConstructorOf; info != nil {
		if thrown := i.initializeFields(instance, info); thrown != nil {
			return nil, thrown
		}
	}

	result, thrown := i.callFunction(ctor.Fn, instance, args, ctor)
	if thrown != nil {
		return nil, thrown
	}
	if obj, ok := result.(*Object); ok {
		return obj, nil
	}
	return instance, nil
}

// initializeFields runs a class's non-static field initializers against a
// freshly constructed instance, in declaration order, before the
// constructor body executes.
func (i *Interpreter) initializeFields(instance *Object, info *ClassInfo) *ThrowSignal {
	if info.Super != nil && info.Super.ConstructorOf != nil {
		if thrown := i.initializeFields(instance, info.Super.ConstructorOf); thrown != nil {
			return thrown
		}
	}
	for _, field := range info.Fields {
		key, thrown := i.classMemberKey(instance, field)
		if thrown != nil {
			return thrown
		}
		var v Value = Undefined
		if field.FieldInit != nil {
			env := NewEnclosedEnvironment(i.global)
			env.BindThis(instance)
			ev, thrownInit := i.evalExpression(env, field.FieldInit)
			if thrownInit != nil {
				return thrownInit
			}
			v = ev
		}
		instance.SetOwn(key, v)
	}
	return nil
}
