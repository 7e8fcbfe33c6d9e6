package interp

import "github.com/echosoar/jsi-sub000/internal/ast"

// makeFunctionValue captures env as fn's weak closure scope (spec.md §9
// "closure over defining scope") along with its param/body shape. Callers
// that need arrow-specific lexical-this capture set LexicalThis/
// HasLexicalThis afterward, since that depends on whether the literal is an
// arrow (expressions.go) or a method (this file).
func (i *Interpreter) makeFunctionValue(env *Environment, lit *ast.FunctionLiteral) *FunctionValue {
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	return &FunctionValue{
		Name:     name,
		Params:   lit.Params,
		Body:     lit.Body,
		ExprBody: lit.ExprBody,
		IsArrow:  lit.IsArrow,
		IsAsync:  lit.IsAsync,
		Closure:  NewScopeValue(env),
	}
}

// wrapFunction wraps fn in a callable Function-class Object, giving
// non-arrow/non-method functions a fresh `.prototype` object per spec.md
// §3/§4.5 so `new Fn()` has something to link new instances to.
func (i *Interpreter) wrapFunction(fn *FunctionValue) *Object {
	obj := NewObject("Function", i.globals.FunctionProto)
	obj.Fn = fn
	// `.name` is deliberately left as a virtual property (functionVirtualGet)
	// rather than baked in here, since name-inference (`const f = function(){}`)
	// mutates fn.Name after this object already exists.
	if !fn.IsArrow && fn.ConstructorOf == nil && fn.HomeObject == nil {
		proto := NewObject("Object", i.globals.ObjectProto)
		proto.SetOwn("constructor", obj)
		obj.OwnPrototype = proto
	}
	return obj
}

// evalClassDeclaration builds a class's constructor Function object and
// binds it into env under its name (spec.md §4.2's class desugaring).
func (i *Interpreter) evalClassDeclaration(env *Environment, node *ast.ClassDeclaration) Completion {
	ctor, thrown := i.buildClass(env, node.Class)
	if thrown != nil {
		return ThrowCompletionValue(thrown.Value)
	}
	env.Define(node.Class.Name.Name, ctor, bindingLet)
	return NormalCompletion(Undefined)
}

func (i *Interpreter) evalClassLiteral(env *Environment, node *ast.ClassLiteral) (Value, *ThrowSignal) {
	return i.buildClass(env, node)
}

// buildClass is the shared class-desugaring routine (spec.md §4.2): a
// prototype object carrying instance methods/accessors, a constructor
// Function object carrying static members and ConstructorOf metadata, and
// -- for `extends` -- a prototype chain link from child.prototype to
// parent.prototype plus a default constructor that forwards to super when
// the class declares none of its own.
func (i *Interpreter) buildClass(env *Environment, node *ast.ClassLiteral) (*Object, *ThrowSignal) {
	var superCtor *Object
	var superFn *FunctionValue
	if node.SuperClass != nil {
		superVal, thrown := i.evalExpression(env, node.SuperClass)
		if thrown != nil {
			return nil, thrown
		}
		obj, ok := superVal.(*Object)
		if !ok || obj.Fn == nil {
			return nil, Throw(i.newTypeError("Class extends value is not a constructor"))
		}
		superCtor = obj
		superFn = obj.Fn
	}

	protoParent := i.globals.ObjectProto
	if superCtor != nil {
		protoParent = superCtor.OwnPrototype
	}
	proto := NewObject("Object", protoParent)

	className := ""
	if node.Name != nil {
		className = node.Name.Name
	}

	info := &ClassInfo{Name: className, Super: superFn}

	var ctorMember *ast.ClassMember
	for _, m := range node.Members {
		if m.IsCtor {
			ctorMember = m
			continue
		}
		if m.Kind == ast.PropertyInit {
			if !m.Modifiers.Has(ast.ModStatic) {
				info.Fields = append(info.Fields, m)
			}
			continue
		}
	}

	var ctorFn *FunctionValue
	if ctorMember != nil {
		ctorFn = i.makeFunctionValue(env, ctorMember.Method)
		ctorFn.Name = className
	} else {
		ctorFn = i.defaultConstructor(env, className, superFn)
	}
	ctorFn.ConstructorOf = info
	ctorFn.HomeObject = proto
	info.Constructor = ctorFn

	ctorObj := NewObject("Function", i.globals.FunctionProto)
	ctorObj.Fn = ctorFn
	ctorObj.SetOwn("name", &StringValue{Value: className})
	ctorObj.OwnPrototype = proto
	if superCtor != nil {
		ctorObj.SetProto(superCtor)
	}
	proto.SetOwn("constructor", ctorObj)

	for _, m := range node.Members {
		if m.IsCtor || m.Kind == ast.PropertyInit {
			continue
		}
		target := proto
		if m.Modifiers.Has(ast.ModStatic) {
			target = ctorObj
		}
		key, thrown := i.classMemberKeyStatic(env, m)
		if thrown != nil {
			return nil, thrown
		}
		methodFn := i.makeFunctionValue(env, m.Method)
		methodFn.Name = key
		methodFn.HomeObject = target
		switch m.Kind {
		case ast.PropertyGet:
			target.DefineAccessor(key, methodFn, nil)
		case ast.PropertySet:
			target.DefineAccessor(key, nil, methodFn)
		default:
			target.SetOwn(key, i.wrapFunction(methodFn))
		}
	}

	for _, m := range node.Members {
		if !m.Modifiers.Has(ast.ModStatic) || m.Kind != ast.PropertyInit {
			continue
		}
		key, thrown := i.classMemberKeyStatic(env, m)
		if thrown != nil {
			return nil, thrown
		}
		var v Value = Undefined
		if m.FieldInit != nil {
			fieldEnv := NewEnclosedEnvironment(env)
			fieldEnv.BindThis(ctorObj)
			ev, thrown := i.evalExpression(fieldEnv, m.FieldInit)
			if thrown != nil {
				return nil, thrown
			}
			v = ev
		}
		ctorObj.SetOwn(key, v)
	}

	return ctorObj, nil
}

// defaultConstructor synthesizes the implicit constructor a class gets when
// it declares none: `constructor(...args) { super(...args) }` for a derived
// class, or an empty body otherwise.
func (i *Interpreter) defaultConstructor(env *Environment, name string, superFn *FunctionValue) *FunctionValue {
	fn := &FunctionValue{Name: name, Closure: NewScopeValue(env)}
	if superFn == nil {
		fn.Body = &ast.BlockStatement{}
		return fn
	}
	restParam := &ast.Parameter{Name: &ast.Identifier{Name: "args"}, Rest: true}
	fn.Params = []*ast.Parameter{restParam}
	fn.Body = &ast.BlockStatement{
		Statements: []ast.Statement{
			&ast.ExpressionStatement{
				Expr: &ast.CallExpression{
					Callee:    &ast.SuperExpression{},
					Arguments: []ast.Expression{&ast.SpreadElement{Arg: &ast.Identifier{Name: "args"}}},
				},
			},
		},
	}
	return fn
}

// classMemberKey resolves a field's property key against instance (used
// when evaluating a computed key so `this` inside the key expression, if
// any, makes sense during construction).
func (i *Interpreter) classMemberKey(instance *Object, field *ast.ClassMember) (string, *ThrowSignal) {
	if !field.Computed {
		return staticMemberName(field.Key), nil
	}
	env := NewEnclosedEnvironment(i.global)
	env.BindThis(instance)
	v, thrown := i.evalExpression(env, field.Key)
	if thrown != nil {
		return "", thrown
	}
	return i.ToStringValue(v)
}

func (i *Interpreter) classMemberKeyStatic(env *Environment, m *ast.ClassMember) (string, *ThrowSignal) {
	if !m.Computed {
		return staticMemberName(m.Key), nil
	}
	v, thrown := i.evalExpression(env, m.Key)
	if thrown != nil {
		return "", thrown
	}
	return i.ToStringValue(v)
}

func staticMemberName(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.StringLiteral:
		return k.Value
	case *ast.NumberLiteral:
		return ToString(&NumberValue{Value: k.Value})
	}
	return ""
}
