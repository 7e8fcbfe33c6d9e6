package interp

import (
	"math"
	"strings"

	"github.com/echosoar/jsi-sub000/internal/ast"
)

// evalExpression dispatches a single expression to a Value, or a thrown
// signal (spec.md §4.5). Optional-chaining short-circuits are resolved to
// Undefined here; evalChainable (memberchain.go) is what actually threads
// the short-circuit state through nested member/call expressions.
func (i *Interpreter) evalExpression(env *Environment, expr ast.Expression) (Value, *ThrowSignal) {
	v, _, thrown := i.evalChainable(env, expr)
	return v, thrown
}

// evalChainable is the general expression evaluator; MemberExpression and
// CallExpression override it in memberchain.go to implement `?.`
// short-circuiting. Every other node type terminates a chain, so it always
// returns shortCircuited==false here.
func (i *Interpreter) evalChainable(env *Environment, expr ast.Expression) (Value, bool, *ThrowSignal) {
	switch node := expr.(type) {
	case *ast.MemberExpression:
		return i.evalMemberChain(env, node)
	case *ast.CallExpression:
		return i.evalCallChain(env, node)
	default:
		v, thrown := i.evalSimple(env, expr)
		return v, false, thrown
	}
}

func (i *Interpreter) evalSimple(env *Environment, expr ast.Expression) (Value, *ThrowSignal) {
	switch node := expr.(type) {
	case *ast.Identifier:
		val, _, found, inTDZ := env.Get(node.Name)
		if inTDZ {
			return nil, Throw(i.newReferenceError("Cannot access '" + node.Name + "' before initialization"))
		}
		if !found {
			return nil, Throw(i.newReferenceError(node.Name + " is not defined"))
		}
		return val, nil
	case *ast.NumberLiteral:
		return &NumberValue{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: node.Value}, nil
	case *ast.BooleanLiteral:
		return Bool(node.Value), nil
	case *ast.NullLiteral:
		return Null, nil
	case *ast.UndefinedLiteral:
		return Undefined, nil
	case *ast.ThisExpression:
		return env.ResolveThis(), nil
	case *ast.GroupedExpression:
		return i.evalExpression(env, node.Inner)
	case *ast.TemplateLiteral:
		return i.evalTemplateLiteral(env, node)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(env, node)
	case *ast.ObjectLiteral:
		return i.evalObjectLiteral(env, node)
	case *ast.FunctionLiteral:
		fn := i.makeFunctionValue(env, node)
		if node.IsArrow {
			fn.LexicalThis = env.ResolveThis()
			fn.HasLexicalThis = true
		}
		return i.wrapFunction(fn), nil
	case *ast.ClassLiteral:
		return i.evalClassLiteral(env, node)
	case *ast.SequenceExpression:
		return i.evalSequence(env, node)
	case *ast.ConditionalExpression:
		return i.evalConditional(env, node)
	case *ast.LogicalExpression:
		return i.evalLogical(env, node)
	case *ast.BinaryExpression:
		return i.evalBinary(env, node)
	case *ast.UnaryExpression:
		return i.evalUnary(env, node)
	case *ast.UpdateExpression:
		return i.evalUpdate(env, node)
	case *ast.AssignmentExpression:
		return i.evalAssignment(env, node)
	case *ast.NewExpression:
		return i.evalNew(env, node)
	case *ast.SuperExpression:
		// bare `super` only makes sense as a MemberExpression/CallExpression
		// base, both handled in memberchain.go; reaching here is a misuse the
		// parser should have already ruled out for this subset.
		return Undefined, nil
	default:
		return Undefined, nil
	}
}

func (i *Interpreter) evalSequence(env *Environment, node *ast.SequenceExpression) (Value, *ThrowSignal) {
	var last Value = Undefined
	for _, e := range node.Expressions {
		v, thrown := i.evalExpression(env, e)
		if thrown != nil {
			return nil, thrown
		}
		last = v
	}
	return last, nil
}

func (i *Interpreter) evalConditional(env *Environment, node *ast.ConditionalExpression) (Value, *ThrowSignal) {
	test, thrown := i.evalExpression(env, node.Test)
	if thrown != nil {
		return nil, thrown
	}
	if ToBoolean(test) {
		return i.evalExpression(env, node.Consequent)
	}
	return i.evalExpression(env, node.Alternate)
}

func (i *Interpreter) evalLogical(env *Environment, node *ast.LogicalExpression) (Value, *ThrowSignal) {
	left, thrown := i.evalExpression(env, node.Left)
	if thrown != nil {
		return nil, thrown
	}
	switch node.Operator {
	case "&&":
		if !ToBoolean(left) {
			return left, nil
		}
	case "||":
		if ToBoolean(left) {
			return left, nil
		}
	case "??":
		if !isNullish(left) {
			return left, nil
		}
	}
	return i.evalExpression(env, node.Right)
}

func isNullish(v Value) bool {
	switch v.(type) {
	case *NullValue, *UndefinedValue:
		return true
	default:
		return false
	}
}

func (i *Interpreter) evalBinary(env *Environment, node *ast.BinaryExpression) (Value, *ThrowSignal) {
	left, thrown := i.evalExpression(env, node.Left)
	if thrown != nil {
		return nil, thrown
	}
	if node.Operator == "instanceof" {
		right, thrown := i.evalExpression(env, node.Right)
		if thrown != nil {
			return nil, thrown
		}
		return i.evalInstanceof(left, right)
	}
	if node.Operator == "in" {
		right, thrown := i.evalExpression(env, node.Right)
		if thrown != nil {
			return nil, thrown
		}
		obj, ok := right.(*Object)
		if !ok {
			return nil, Throw(i.newTypeError("Cannot use 'in' operator on a non-object"))
		}
		key, thrown := i.ToStringValue(left)
		if thrown != nil {
			return nil, thrown
		}
		_, found := i.getProperty(obj, key)
		return Bool(found), nil
	}
	right, thrown := i.evalExpression(env, node.Right)
	if thrown != nil {
		return nil, thrown
	}
	return i.applyBinaryOp(node.Operator, left, right)
}

func (i *Interpreter) applyBinaryOp(op string, left, right Value) (Value, *ThrowSignal) {
	switch op {
	case "+":
		lp, thrown := i.ToPrimitive(left, "default")
		if thrown != nil {
			return nil, thrown
		}
		rp, thrown := i.ToPrimitive(right, "default")
		if thrown != nil {
			return nil, thrown
		}
		_, lStr := lp.(*StringValue)
		_, rStr := rp.(*StringValue)
		if lStr || rStr {
			ls, thrown := i.ToStringValue(lp)
			if thrown != nil {
				return nil, thrown
			}
			rs, thrown := i.ToStringValue(rp)
			if thrown != nil {
				return nil, thrown
			}
			return &StringValue{Value: ls + rs}, nil
		}
		ln, thrown := i.ToNumberValue(lp)
		if thrown != nil {
			return nil, thrown
		}
		rn, thrown := i.ToNumberValue(rp)
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: ln + rn}, nil
	case "===":
		return Bool(StrictEquals(left, right)), nil
	case "!==":
		return Bool(!StrictEquals(left, right)), nil
	case "==":
		eq, thrown := i.AbstractEquals(left, right)
		if thrown != nil {
			return nil, thrown
		}
		return Bool(eq), nil
	case "!=":
		eq, thrown := i.AbstractEquals(left, right)
		if thrown != nil {
			return nil, thrown
		}
		return Bool(!eq), nil
	}

	ln, thrown := i.ToNumberValue(left)
	if thrown != nil {
		return nil, thrown
	}
	rn, thrown := i.ToNumberValue(right)
	if thrown != nil {
		return nil, thrown
	}
	switch op {
	case "-":
		return &NumberValue{Value: ln - rn}, nil
	case "*":
		return &NumberValue{Value: ln * rn}, nil
	case "/":
		return &NumberValue{Value: ln / rn}, nil
	case "%":
		return &NumberValue{Value: math.Mod(ln, rn)}, nil
	case "**":
		return &NumberValue{Value: math.Pow(ln, rn)}, nil
	case "<":
		return compareNumbers(ln, rn, func(a, b float64) bool { return a < b }), nil
	case "<=":
		return compareNumbers(ln, rn, func(a, b float64) bool { return a <= b }), nil
	case ">":
		return compareNumbers(ln, rn, func(a, b float64) bool { return a > b }), nil
	case ">=":
		return compareNumbers(ln, rn, func(a, b float64) bool { return a >= b }), nil
	case "&":
		return &NumberValue{Value: float64(toInt32(ln) & toInt32(rn))}, nil
	case "|":
		return &NumberValue{Value: float64(toInt32(ln) | toInt32(rn))}, nil
	case "^":
		return &NumberValue{Value: float64(toInt32(ln) ^ toInt32(rn))}, nil
	case "<<":
		return &NumberValue{Value: float64(toInt32(ln) << (uint32(toInt32(rn)) & 31))}, nil
	case ">>":
		return &NumberValue{Value: float64(toInt32(ln) >> (uint32(toInt32(rn)) & 31))}, nil
	case ">>>":
		return &NumberValue{Value: float64(uint32(toInt32(ln)) >> (uint32(toInt32(rn)) & 31))}, nil
	}
	return Undefined, nil
}

func compareNumbers(a, b float64, cmp func(float64, float64) bool) Value {
	if math.IsNaN(a) || math.IsNaN(b) {
		return False
	}
	return Bool(cmp(a, b))
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(int64(f))
}

func (i *Interpreter) evalInstanceof(left, right Value) (Value, *ThrowSignal) {
	ctor, ok := right.(*Object)
	if !ok || ctor.Fn == nil {
		return nil, Throw(i.newTypeError("Right-hand side of 'instanceof' is not callable"))
	}
	obj, ok := left.(*Object)
	if !ok {
		return False, nil
	}
	proto := ctor.OwnPrototype
	current, hasProto := obj.Proto()
	for hasProto {
		if current == proto {
			return True, nil
		}
		current, hasProto = current.Proto()
	}
	return False, nil
}

func (i *Interpreter) evalUnary(env *Environment, node *ast.UnaryExpression) (Value, *ThrowSignal) {
	if node.Operator == "typeof" {
		if ident, ok := node.Operand.(*ast.Identifier); ok {
			val, _, found, inTDZ := env.Get(ident.Name)
			if inTDZ {
				return nil, Throw(i.newReferenceError("Cannot access '" + ident.Name + "' before initialization"))
			}
			if !found {
				return &StringValue{Value: "undefined"}, nil
			}
			return &StringValue{Value: typeofString(val)}, nil
		}
	}
	if node.Operator == "delete" {
		if member, ok := node.Operand.(*ast.MemberExpression); ok {
			objVal, thrown := i.evalExpression(env, member.Object)
			if thrown != nil {
				return nil, thrown
			}
			obj, ok := objVal.(*Object)
			if !ok {
				return True, nil
			}
			key, thrown := i.propertyKeyOf(env, member)
			if thrown != nil {
				return nil, thrown
			}
			if obj.Class == "Array" {
				if idx, ok := arrayIndex(key); ok && idx >= 0 && idx < len(obj.Elements) {
					obj.Elements[idx] = Undefined
					return True, nil
				}
			}
			return Bool(obj.Delete(key)), nil
		}
		return True, nil
	}

	val, thrown := i.evalExpression(env, node.Operand)
	if thrown != nil {
		return nil, thrown
	}
	switch node.Operator {
	case "void":
		return Undefined, nil
	case "!":
		return Bool(!ToBoolean(val)), nil
	case "-":
		n, thrown := i.ToNumberValue(val)
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: -n}, nil
	case "+":
		n, thrown := i.ToNumberValue(val)
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: n}, nil
	case "~":
		n, thrown := i.ToNumberValue(val)
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: float64(^toInt32(n))}, nil
	}
	return Undefined, nil
}

func (i *Interpreter) evalUpdate(env *Environment, node *ast.UpdateExpression) (Value, *ThrowSignal) {
	old, thrown := i.evalExpression(env, node.Operand)
	if thrown != nil {
		return nil, thrown
	}
	n, thrown := i.ToNumberValue(old)
	if thrown != nil {
		return nil, thrown
	}
	delta := 1.0
	if node.Operator == "--" {
		delta = -1.0
	}
	updated := &NumberValue{Value: n + delta}
	if thrown := i.assignTo(env, node.Operand, updated); thrown != nil {
		return nil, thrown
	}
	if node.Prefix {
		return updated, nil
	}
	return &NumberValue{Value: n}, nil
}

func (i *Interpreter) evalAssignment(env *Environment, node *ast.AssignmentExpression) (Value, *ThrowSignal) {
	if node.Operator == "=" {
		val, thrown := i.evalExpression(env, node.Value)
		if thrown != nil {
			return nil, thrown
		}
		if fnVal, ok := val.(*Object); ok && fnVal.Fn != nil && fnVal.Fn.Name == "" {
			if ident, ok := node.Target.(*ast.Identifier); ok {
				fnVal.Fn.Name = ident.Name
			}
		}
		if thrown := i.assignTo(env, node.Target, val); thrown != nil {
			return nil, thrown
		}
		return val, nil
	}

	op := strings.TrimSuffix(node.Operator, "=")
	if op == "&&" || op == "||" || op == "??" {
		current, thrown := i.evalExpression(env, node.Target)
		if thrown != nil {
			return nil, thrown
		}
		shouldAssign := false
		switch op {
		case "&&":
			shouldAssign = ToBoolean(current)
		case "||":
			shouldAssign = !ToBoolean(current)
		case "??":
			shouldAssign = isNullish(current)
		}
		if !shouldAssign {
			return current, nil
		}
		val, thrown := i.evalExpression(env, node.Value)
		if thrown != nil {
			return nil, thrown
		}
		if thrown := i.assignTo(env, node.Target, val); thrown != nil {
			return nil, thrown
		}
		return val, nil
	}

	current, thrown := i.evalExpression(env, node.Target)
	if thrown != nil {
		return nil, thrown
	}
	rhs, thrown := i.evalExpression(env, node.Value)
	if thrown != nil {
		return nil, thrown
	}
	result, thrown := i.applyBinaryOp(op, current, rhs)
	if thrown != nil {
		return nil, thrown
	}
	if thrown := i.assignTo(env, node.Target, result); thrown != nil {
		return nil, thrown
	}
	return result, nil
}

// assignTo resolves target as an LHS Reference {base, name} and writes
// through it (spec.md §4.5 "resolve LHS as a Reference {base, name}; write
// through"). Identifiers write to the first enclosing scope that declares
// them, falling back to an implicit global for sloppy-mode assignment to an
// undeclared name.
func (i *Interpreter) assignTo(env *Environment, target ast.Expression, val Value) *ThrowSignal {
	switch t := target.(type) {
	case *ast.Identifier:
		ok, constViolation := env.Set(t.Name, val)
		if constViolation {
			return Throw(i.newTypeError("Assignment to constant variable."))
		}
		if !ok {
			root := env
			for root.parent != nil {
				root = root.parent
			}
			root.SetGlobalImplicit(t.Name, val)
		}
		return nil
	case *ast.MemberExpression:
		objVal, thrown := i.evalExpression(env, t.Object)
		if thrown != nil {
			return thrown
		}
		obj, ok := objVal.(*Object)
		if !ok {
			return Throw(i.newTypeError("Cannot set properties of " + ToString(objVal)))
		}
		key, thrown := i.propertyKeyOf(env, t)
		if thrown != nil {
			return thrown
		}
		return i.setProperty(obj, key, val)
	default:
		return Throw(i.newReferenceError("Invalid assignment target"))
	}
}

func (i *Interpreter) propertyKeyOf(env *Environment, m *ast.MemberExpression) (string, *ThrowSignal) {
	if !m.Computed {
		return m.Property.(*ast.Identifier).Name, nil
	}
	v, thrown := i.evalExpression(env, m.Property)
	if thrown != nil {
		return "", thrown
	}
	return i.ToStringValue(v)
}

func (i *Interpreter) evalTemplateLiteral(env *Environment, node *ast.TemplateLiteral) (Value, *ThrowSignal) {
	var sb strings.Builder
	for _, part := range node.Parts {
		if !part.IsExpr {
			sb.WriteString(part.Cooked)
			continue
		}
		v, thrown := i.evalExpression(env, part.Expr)
		if thrown != nil {
			return nil, thrown
		}
		s, thrown := i.ToStringValue(v)
		if thrown != nil {
			return nil, thrown
		}
		sb.WriteString(s)
	}
	return &StringValue{Value: sb.String()}, nil
}

func (i *Interpreter) evalArrayLiteral(env *Environment, node *ast.ArrayLiteral) (Value, *ThrowSignal) {
	elements := make([]Value, 0, len(node.Elements))
	for _, e := range node.Elements {
		if e == nil {
			elements = append(elements, Undefined)
			continue
		}
		if spread, ok := e.(*ast.SpreadElement); ok {
			v, thrown := i.evalExpression(env, spread.Arg)
			if thrown != nil {
				return nil, thrown
			}
			arr, ok := v.(*Object)
			if !ok || arr.Class != "Array" {
				return nil, Throw(i.newTypeError("Spread syntax requires an iterable"))
			}
			elements = append(elements, arr.Elements...)
			continue
		}
		v, thrown := i.evalExpression(env, e)
		if thrown != nil {
			return nil, thrown
		}
		elements = append(elements, v)
	}
	return NewArray(i.globals.ArrayProto, elements), nil
}

func (i *Interpreter) evalObjectLiteral(env *Environment, node *ast.ObjectLiteral) (Value, *ThrowSignal) {
	obj := NewObject("Object", i.globals.ObjectProto)
	for _, prop := range node.Properties {
		if prop.IsSpread {
			v, thrown := i.evalExpression(env, prop.Value)
			if thrown != nil {
				return nil, thrown
			}
			if src, ok := v.(*Object); ok {
				for _, k := range ownEnumerableKeys(src) {
					pv, _ := i.getProperty(src, k)
					obj.SetOwn(k, pv)
				}
			}
			continue
		}
		key, thrown := i.evalPropertyKey(env, prop)
		if thrown != nil {
			return nil, thrown
		}
		if key == "__proto__" && prop.Kind == ast.PropertyInit && !prop.Computed {
			v, thrown := i.evalExpression(env, prop.Value)
			if thrown != nil {
				return nil, thrown
			}
			if protoObj, ok := v.(*Object); ok {
				obj.SetProto(protoObj)
			} else if _, ok := v.(*NullValue); ok {
				obj.SetProto(nil)
			}
			continue
		}
		switch prop.Kind {
		case ast.PropertyGet:
			fn := i.makeFunctionValue(env, prop.Value.(*ast.FunctionLiteral))
			fn.HomeObject = obj
			obj.DefineAccessor(key, fn, nil)
		case ast.PropertySet:
			fn := i.makeFunctionValue(env, prop.Value.(*ast.FunctionLiteral))
			fn.HomeObject = obj
			obj.DefineAccessor(key, nil, fn)
		case ast.PropertyMethod:
			fn := i.makeFunctionValue(env, prop.Value.(*ast.FunctionLiteral))
			fn.Name = key
			fn.HomeObject = obj
			obj.SetOwn(key, i.wrapFunction(fn))
		default:
			var v Value
			var thrown *ThrowSignal
			if prop.Shorthand {
				v, thrown = i.evalExpression(env, prop.Key)
			} else {
				v, thrown = i.evalExpression(env, prop.Value)
			}
			if thrown != nil {
				return nil, thrown
			}
			obj.SetOwn(key, v)
		}
	}
	return obj, nil
}

func (i *Interpreter) evalPropertyKey(env *Environment, prop *ast.ObjectProperty) (string, *ThrowSignal) {
	if prop.Computed {
		v, thrown := i.evalExpression(env, prop.Key)
		if thrown != nil {
			return "", thrown
		}
		return i.ToStringValue(v)
	}
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.StringLiteral:
		return k.Value, nil
	case *ast.NumberLiteral:
		return ToString(&NumberValue{Value: k.Value}), nil
	}
	return "", nil
}
