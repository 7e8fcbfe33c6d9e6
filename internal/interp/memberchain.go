package interp

import "github.com/echosoar/jsi-sub000/internal/ast"

// evalMemberChain evaluates a MemberExpression, threading `?.`
// short-circuit state up from its Object sub-expression (spec.md §4.5
// optional chaining: a short-circuited base makes the whole chain
// Undefined without evaluating further property lookups).
func (i *Interpreter) evalMemberChain(env *Environment, node *ast.MemberExpression) (Value, bool, *ThrowSignal) {
	if _, ok := node.Object.(*ast.SuperExpression); ok {
		key, thrown := i.propertyKeyOf(env, node)
		if thrown != nil {
			return nil, false, thrown
		}
		superProto, thrown := i.resolveSuperProto(env)
		if thrown != nil {
			return nil, false, thrown
		}
		v, _ := i.getPropertyWithReceiver(superProto, key, env.ResolveThis())
		return v, false, nil
	}

	objVal, sc, thrown := i.evalChainable(env, node.Object)
	if thrown != nil {
		return nil, false, thrown
	}
	if sc {
		return Undefined, true, nil
	}
	if node.Optional && isNullish(objVal) {
		return Undefined, true, nil
	}
	key, thrown := i.propertyKeyOf(env, node)
	if thrown != nil {
		return nil, false, thrown
	}
	v, thrown := i.readProperty(objVal, key)
	if thrown != nil {
		return nil, false, thrown
	}
	return v, false, nil
}

// readProperty reads `key` off any Value, boxing primitive receivers onto
// their intrinsic prototype (spec.md §4.6 Number/String/Boolean.prototype)
// without allocating an actual wrapper object: the method is looked up on
// the prototype but invoked with the original primitive as `this`.
func (i *Interpreter) readProperty(v Value, key string) (Value, *ThrowSignal) {
	switch val := v.(type) {
	case *Object:
		r, _ := i.getProperty(val, key)
		return r, nil
	case *StringValue:
		if key == "length" {
			return &NumberValue{Value: float64(len([]rune(val.Value)))}, nil
		}
		if idx, ok := arrayIndex(key); ok {
			runes := []rune(val.Value)
			if idx >= 0 && idx < len(runes) {
				return &StringValue{Value: string(runes[idx])}, nil
			}
			return Undefined, nil
		}
		r, _ := i.getProperty(i.globals.StringProto, key)
		return r, nil
	case *NumberValue:
		r, _ := i.getProperty(i.globals.NumberProto, key)
		return r, nil
	case *BooleanValue:
		r, _ := i.getProperty(i.globals.BooleanProto, key)
		return r, nil
	default:
		return nil, Throw(i.newTypeError("Cannot read properties of " + ToString(v) + " (reading '" + key + "')"))
	}
}

// resolveSuperProto finds the prototype object `super` refers to inside the
// currently executing method: the HomeObject's own prototype link.
func (i *Interpreter) resolveSuperProto(env *Environment) (*Object, *ThrowSignal) {
	home, _, found, _ := env.Get("__home__")
	if homeObj, ok := home.(*Object); found && ok {
		if proto, ok := homeObj.Proto(); ok {
			return proto, nil
		}
	}
	return nil, Throw(i.newTypeError("'super' keyword is only valid inside a method"))
}

// evalCallChain evaluates a CallExpression, resolving method-call `this`
// binding when the callee is a MemberExpression and threading `?.`
// short-circuiting for both the callee chain and the call itself.
func (i *Interpreter) evalCallChain(env *Environment, node *ast.CallExpression) (Value, bool, *ThrowSignal) {
	thisVal, calleeVal, sc, isSuperCall, thrown := i.evalCallee(env, node.Callee)
	if thrown != nil {
		return nil, false, thrown
	}
	if sc {
		return Undefined, true, nil
	}
	if node.Optional && isNullish(calleeVal) {
		return Undefined, true, nil
	}

	args, thrown := i.evalArguments(env, node.Arguments)
	if thrown != nil {
		return nil, false, thrown
	}

	if isSuperCall {
		v, thrown := i.callSuperConstructor(env, args)
		return v, false, thrown
	}

	fnObj, ok := calleeVal.(*Object)
	if !ok || fnObj.Fn == nil {
		return nil, false, Throw(i.newTypeError(calleeDescription(node.Callee) + " is not a function"))
	}
	v, thrown := i.callFunction(fnObj.Fn, thisVal, args, nil)
	return v, false, thrown
}

func calleeDescription(expr ast.Expression) string {
	if m, ok := expr.(*ast.MemberExpression); ok && !m.Computed {
		if id, ok := m.Property.(*ast.Identifier); ok {
			return id.Name
		}
	}
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return "value"
}

// evalCallee resolves a call's callee expression into (this, function) per
// spec.md §4.5: a MemberExpression callee binds `this` to the evaluated
// object; a plain identifier/other expression calls with `this`=Undefined
// (sloppy-mode default, matching the rest of this subset's casual handling
// of `this`).
func (i *Interpreter) evalCallee(env *Environment, calleeExpr ast.Expression) (thisVal Value, calleeVal Value, shortCircuited bool, isSuperCall bool, thrown *ThrowSignal) {
	if _, ok := calleeExpr.(*ast.SuperExpression); ok {
		return Undefined, Undefined, false, true, nil
	}
	member, ok := calleeExpr.(*ast.MemberExpression)
	if !ok {
		v, sc, thrown := i.evalChainable(env, calleeExpr)
		return Undefined, v, sc, false, thrown
	}
	if _, ok := member.Object.(*ast.SuperExpression); ok {
		key, thrown := i.propertyKeyOf(env, member)
		if thrown != nil {
			return nil, nil, false, false, thrown
		}
		superProto, thrown := i.resolveSuperProto(env)
		if thrown != nil {
			return nil, nil, false, false, thrown
		}
		this := env.ResolveThis()
		v, _ := i.getPropertyWithReceiver(superProto, key, this)
		return this, v, false, false, nil
	}
	objVal, sc, thrown := i.evalChainable(env, member.Object)
	if thrown != nil {
		return nil, nil, false, false, thrown
	}
	if sc {
		return nil, nil, true, false, nil
	}
	if member.Optional && isNullish(objVal) {
		return nil, nil, true, false, nil
	}
	key, thrown := i.propertyKeyOf(env, member)
	if thrown != nil {
		return nil, nil, false, false, thrown
	}
	v, thrown := i.readProperty(objVal, key)
	if thrown != nil {
		return nil, nil, false, false, thrown
	}
	return objVal, v, false, false, nil
}

func (i *Interpreter) evalArguments(env *Environment, argExprs []ast.Expression) ([]Value, *ThrowSignal) {
	args := make([]Value, 0, len(argExprs))
	for _, a := range argExprs {
		if spread, ok := a.(*ast.SpreadElement); ok {
			v, thrown := i.evalExpression(env, spread.Arg)
			if thrown != nil {
				return nil, thrown
			}
			arr, ok := v.(*Object)
			if !ok || arr.Class != "Array" {
				return nil, Throw(i.newTypeError("Spread syntax requires an iterable"))
			}
			args = append(args, arr.Elements...)
			continue
		}
		v, thrown := i.evalExpression(env, a)
		if thrown != nil {
			return nil, thrown
		}
		args = append(args, v)
	}
	return args, nil
}

// evalNew implements `new Callee(args)` (spec.md §4.5).
func (i *Interpreter) evalNew(env *Environment, node *ast.NewExpression) (Value, *ThrowSignal) {
	calleeVal, thrown := i.evalExpression(env, node.Callee)
	if thrown != nil {
		return nil, thrown
	}
	ctor, ok := calleeVal.(*Object)
	if !ok || ctor.Fn == nil {
		return nil, Throw(i.newTypeError(calleeDescription(node.Callee) + " is not a constructor"))
	}
	args, thrown := i.evalArguments(env, node.Arguments)
	if thrown != nil {
		return nil, thrown
	}
	return i.construct(ctor, args)
}

// callSuperConstructor implements `super(args)` inside a derived class's
// constructor: invokes the superclass constructor with the current `this`.
// It runs no field initializers: construct() has already run the fields of
// the whole class chain, superclass first, before any constructor body, so
// the subclass's fields are set before the superclass constructor runs.
func (i *Interpreter) callSuperConstructor(env *Environment, args []Value) (Value, *ThrowSignal) {
	home, _, found, _ := env.Get("__home__")
	homeObj, ok := home.(*Object)
	if !found || !ok {
		return nil, Throw(i.newTypeError("'super' keyword is only valid inside a derived class constructor"))
	}
	proto, ok := homeObj.Proto()
	if !ok {
		return nil, Throw(i.newTypeError("'super' call is only valid in a derived class constructor"))
	}
	superCtorVal, ok := i.getProperty(proto, "constructor")
	if !ok {
		return Undefined, nil
	}
	superCtor, ok := superCtorVal.(*Object)
	if !ok || superCtor.Fn == nil {
		return Undefined, nil
	}
	// Field initializers for both this class and its superclass already ran
	// eagerly in construct() before the constructor body started, so
	// super(...) here only needs to run the superclass constructor body's
	// own logic with the shared `this`.
	this := env.ResolveThis()
	return i.callFunction(superCtor.Fn, this, args, nil)
}
