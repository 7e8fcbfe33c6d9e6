package interp

import "github.com/echosoar/jsi-sub000/internal/ast"

// evalForIn implements `for (decl in obj) body`, iterating obj's own
// enumerable property keys in insertion order (spec.md §4.4/§4.5).
func (i *Interpreter) evalForIn(env *Environment, node *ast.ForInStatement, label string) Completion {
	rightVal, thrown := i.evalExpression(env, node.Right)
	if thrown != nil {
		return ThrowCompletionValue(thrown.Value)
	}
	obj, ok := rightVal.(*Object)
	if !ok {
		return NormalCompletion(Undefined)
	}
	for _, key := range ownEnumerableKeys(obj) {
		iterEnv := NewEnclosedEnvironment(env)
		if thrown := i.bindForTarget(iterEnv, node.Left, &StringValue{Value: key}); thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		c := i.evalStatement(iterEnv, node.Body)
		if stop, out := handleLoopCompletion(c, label); stop {
			return out
		}
	}
	return NormalCompletion(Undefined)
}

// evalForOf implements `for (decl of iterable) body`, iterating Array
// elements — the only iterable this subset supports (spec.md §4.5).
func (i *Interpreter) evalForOf(env *Environment, node *ast.ForOfStatement, label string) Completion {
	rightVal, thrown := i.evalExpression(env, node.Right)
	if thrown != nil {
		return ThrowCompletionValue(thrown.Value)
	}
	obj, ok := rightVal.(*Object)
	if !ok || obj.Class != "Array" {
		return ThrowCompletionValue(i.newTypeError("value is not iterable"))
	}
	elements := append([]Value(nil), obj.Elements...)
	for _, elem := range elements {
		if elem == nil {
			elem = Undefined
		}
		iterEnv := NewEnclosedEnvironment(env)
		if thrown := i.bindForTarget(iterEnv, node.Left, elem); thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		c := i.evalStatement(iterEnv, node.Body)
		if stop, out := handleLoopCompletion(c, label); stop {
			return out
		}
	}
	return NormalCompletion(Undefined)
}

// handleLoopCompletion centralizes the break/continue/return/throw
// dispatch shared by for-in and for-of bodies: (stop, completion-to-return)
// where stop==false means keep iterating.
func handleLoopCompletion(c Completion, label string) (bool, Completion) {
	switch c.Type {
	case Break:
		if matchesLabel(c, label) {
			return true, NormalCompletion(Undefined)
		}
		return true, c
	case Continue:
		if matchesLabel(c, label) {
			return false, Completion{}
		}
		return true, c
	case Return, ThrowCompletion:
		return true, c
	default:
		return false, Completion{}
	}
}

func (i *Interpreter) bindForTarget(env *Environment, left ast.Node, v Value) *ThrowSignal {
	switch target := left.(type) {
	case *ast.VariableDeclaration:
		if len(target.Declarators) != 1 {
			return nil
		}
		ident, ok := target.Declarators[0].Name.(*ast.Identifier)
		if !ok {
			return nil
		}
		kind := bindingVar
		switch target.Kind {
		case ast.VarLet:
			kind = bindingLet
		case ast.VarConst:
			kind = bindingConst
		}
		env.Define(ident.Name, v, kind)
	case ast.Expression:
		return i.assignTo(env, target, v)
	}
	return nil
}
