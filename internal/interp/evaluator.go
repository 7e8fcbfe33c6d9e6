package interp

import (
	"github.com/echosoar/jsi-sub000/internal/ast"
)

// evalStatement dispatches a single statement, returning its Completion
// (spec.md §4.5/§9). This is the generalization of the teacher's single big
// `Eval(node ast.Node) Value` switch (internal/interp/interpreter.go) into a
// Completion-returning dispatcher so labeled break/continue and
// finally-overrides-everything can be expressed without global flags.
func (i *Interpreter) evalStatement(env *Environment, stmt ast.Statement) Completion {
	switch node := stmt.(type) {
	case *ast.VariableDeclaration:
		return i.evalVariableDeclaration(env, node)
	case *ast.ExpressionStatement:
		if node.Expr == nil {
			return NormalCompletion(Undefined)
		}
		v, thrown := i.evalExpression(env, node.Expr)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		return NormalCompletion(v)
	case *ast.BlockStatement:
		return i.evalBlock(env, node.Statements)
	case *ast.IfStatement:
		return i.evalIf(env, node)
	case *ast.ForStatement:
		return i.evalFor(env, node, "")
	case *ast.ForInStatement:
		return i.evalForIn(env, node, "")
	case *ast.ForOfStatement:
		return i.evalForOf(env, node, "")
	case *ast.WhileStatement:
		return i.evalWhile(env, node, "")
	case *ast.DoWhileStatement:
		return i.evalDoWhile(env, node, "")
	case *ast.BreakStatement:
		return BreakCompletion(node.Label)
	case *ast.ContinueStatement:
		return ContinueCompletion(node.Label)
	case *ast.ReturnStatement:
		if node.Value == nil {
			return ReturnCompletion(Undefined)
		}
		v, thrown := i.evalExpression(env, node.Value)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		return ReturnCompletion(v)
	case *ast.ThrowStatement:
		v, thrown := i.evalExpression(env, node.Value)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		return ThrowCompletionValue(v)
	case *ast.TryStatement:
		return i.evalTry(env, node)
	case *ast.SwitchStatement:
		return i.evalSwitch(env, node, "")
	case *ast.LabeledStatement:
		return i.evalLabeled(env, node)
	case *ast.FunctionDeclaration:
		// already hoisted; re-executing is a no-op at statement position.
		return NormalCompletion(Undefined)
	case *ast.ClassDeclaration:
		return i.evalClassDeclaration(env, node)
	case *ast.EmptyStatement:
		return NormalCompletion(Undefined)
	default:
		return NormalCompletion(Undefined)
	}
}

func (i *Interpreter) evalVariableDeclaration(env *Environment, decl *ast.VariableDeclaration) Completion {
	kind := bindingVar
	switch decl.Kind {
	case ast.VarLet:
		kind = bindingLet
	case ast.VarConst:
		kind = bindingConst
	}
	for _, d := range decl.Declarators {
		ident, ok := d.Name.(*ast.Identifier)
		if !ok {
			continue
		}
		var v Value = Undefined
		if d.Init != nil {
			val, thrown := i.evalExpression(env, d.Init)
			if thrown != nil {
				return ThrowCompletionValue(thrown.Value)
			}
			v = val
			if fnVal, ok := val.(*Object); ok && fnVal.Fn != nil && fnVal.Fn.Name == "" {
				fnVal.Fn.Name = ident.Name
			}
		}
		if decl.Kind == ast.VarVar {
			// already hoisted to Undefined; now assign the initializer (or
			// leave it as-is if there is none, since re-running var x; after
			// hoisting must not clobber a prior assignment).
			if d.Init != nil {
				env.Set(ident.Name, v)
			} else if !env.Has(ident.Name) {
				env.Define(ident.Name, Undefined, bindingVar)
			}
		} else {
			env.Define(ident.Name, v, kind)
		}
	}
	return NormalCompletion(Undefined)
}

// evalBlock pushes a new lexical scope, hoists this block's own let/const
// TDZ markers into it, and runs its statements in order (spec.md §4.4/§4.5).
func (i *Interpreter) evalBlock(env *Environment, stmts []ast.Statement) Completion {
	blockEnv := NewEnclosedEnvironment(env)
	hoistBlockLetConst(blockEnv, stmts)
	// function declarations nested directly in a block are also callable
	// before their textual position, matching common sloppy-mode hoisting.
	for _, s := range stmts {
		if fd, ok := s.(*ast.FunctionDeclaration); ok {
			fn := i.makeFunctionValue(blockEnv, fd.Fn)
			blockEnv.Define(fd.Fn.Name.Name, i.wrapFunction(fn), bindingVar)
		}
	}
	return i.evalStatements(blockEnv, stmts)
}

func (i *Interpreter) evalStatements(env *Environment, stmts []ast.Statement) Completion {
	result := NormalCompletion(Undefined)
	for _, s := range stmts {
		c := i.evalStatement(env, s)
		if c.IsAbrupt() {
			return c
		}
		if c.Value != nil {
			result = c
		}
	}
	return result
}

func (i *Interpreter) evalIf(env *Environment, node *ast.IfStatement) Completion {
	test, thrown := i.evalExpression(env, node.Test)
	if thrown != nil {
		return ThrowCompletionValue(thrown.Value)
	}
	if ToBoolean(test) {
		return i.evalStatement(env, node.Consequent)
	}
	if node.Alternate != nil {
		return i.evalStatement(env, node.Alternate)
	}
	return NormalCompletion(Undefined)
}

// matchesLabel reports whether an unlabeled (label=="") or matching-labeled
// break/continue completion targets the construct carrying ownLabel.
func matchesLabel(c Completion, ownLabel string) bool {
	return c.Label == "" || c.Label == ownLabel
}

func (i *Interpreter) evalFor(env *Environment, node *ast.ForStatement, label string) Completion {
	loopEnv := NewEnclosedEnvironment(env)
	if node.Init != nil {
		switch init := node.Init.(type) {
		case *ast.VariableDeclaration:
			if c := i.evalVariableDeclaration(loopEnv, init); c.Type == ThrowCompletion {
				return c
			}
		case ast.Expression:
			if _, thrown := i.evalExpression(loopEnv, init); thrown != nil {
				return ThrowCompletionValue(thrown.Value)
			}
		}
	}
	for {
		if node.Test != nil {
			test, thrown := i.evalExpression(loopEnv, node.Test)
			if thrown != nil {
				return ThrowCompletionValue(thrown.Value)
			}
			if !ToBoolean(test) {
				break
			}
		}
		iterEnv := NewEnclosedEnvironment(loopEnv)
		c := i.evalStatement(iterEnv, node.Body)
		if c.Type == Break {
			if matchesLabel(c, label) {
				break
			}
			return c
		}
		if c.Type == Continue && !matchesLabel(c, label) {
			return c
		}
		if c.Type == Return || c.Type == ThrowCompletion {
			return c
		}
		if node.Update != nil {
			if _, thrown := i.evalExpression(loopEnv, node.Update); thrown != nil {
				return ThrowCompletionValue(thrown.Value)
			}
		}
	}
	return NormalCompletion(Undefined)
}

func (i *Interpreter) evalWhile(env *Environment, node *ast.WhileStatement, label string) Completion {
	for {
		test, thrown := i.evalExpression(env, node.Test)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		if !ToBoolean(test) {
			break
		}
		c := i.evalStatement(NewEnclosedEnvironment(env), node.Body)
		if c.Type == Break {
			if matchesLabel(c, label) {
				break
			}
			return c
		}
		if c.Type == Continue {
			if matchesLabel(c, label) {
				continue
			}
			return c
		}
		if c.IsAbrupt() {
			return c
		}
	}
	return NormalCompletion(Undefined)
}

func (i *Interpreter) evalDoWhile(env *Environment, node *ast.DoWhileStatement, label string) Completion {
	for {
		c := i.evalStatement(NewEnclosedEnvironment(env), node.Body)
		if c.Type == Break {
			if matchesLabel(c, label) {
				break
			}
			return c
		}
		if c.Type == Continue && !matchesLabel(c, label) {
			return c
		}
		if c.Type == Return || c.Type == ThrowCompletion {
			return c
		}
		test, thrown := i.evalExpression(env, node.Test)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		if !ToBoolean(test) {
			break
		}
	}
	return NormalCompletion(Undefined)
}

func (i *Interpreter) evalLabeled(env *Environment, node *ast.LabeledStatement) Completion {
	var c Completion
	switch body := node.Body.(type) {
	case *ast.ForStatement:
		c = i.evalFor(env, body, node.Label)
	case *ast.ForInStatement:
		c = i.evalForIn(env, body, node.Label)
	case *ast.ForOfStatement:
		c = i.evalForOf(env, body, node.Label)
	case *ast.WhileStatement:
		c = i.evalWhile(env, body, node.Label)
	case *ast.DoWhileStatement:
		c = i.evalDoWhile(env, body, node.Label)
	case *ast.SwitchStatement:
		c = i.evalSwitch(env, body, node.Label)
	default:
		c = i.evalStatement(env, node.Body)
	}
	if c.Type == Break && c.Label == node.Label {
		return NormalCompletion(Undefined)
	}
	return c
}

func (i *Interpreter) evalTry(env *Environment, node *ast.TryStatement) Completion {
	c := i.evalBlock(env, node.Block.Statements)
	if c.Type == ThrowCompletion && node.Catch != nil {
		catchEnv := NewEnclosedEnvironment(env)
		if node.Catch.Param != nil {
			catchEnv.Define(node.Catch.Param.Name, c.Value, bindingLet)
		}
		c = i.evalStatements(catchEnv, node.Catch.Body.Statements)
	}
	if node.Finally != nil {
		fc := i.evalBlock(env, node.Finally.Statements)
		if fc.IsAbrupt() {
			// finally's completion overrides try/catch's, per spec.md §4.5.
			return fc
		}
	}
	return c
}

func (i *Interpreter) evalSwitch(env *Environment, node *ast.SwitchStatement, label string) Completion {
	disc, thrown := i.evalExpression(env, node.Discriminant)
	if thrown != nil {
		return ThrowCompletionValue(thrown.Value)
	}
	switchEnv := NewEnclosedEnvironment(env)
	for _, c := range node.Cases {
		hoistBlockLetConst(switchEnv, c.Consequent)
	}
	matched := -1
	for idx, c := range node.Cases {
		if c.Test == nil {
			continue
		}
		testVal, thrown := i.evalExpression(switchEnv, c.Test)
		if thrown != nil {
			return ThrowCompletionValue(thrown.Value)
		}
		if StrictEquals(disc, testVal) {
			matched = idx
			break
		}
	}
	if matched == -1 {
		for idx, c := range node.Cases {
			if c.Test == nil {
				matched = idx
				break
			}
		}
	}
	if matched == -1 {
		return NormalCompletion(Undefined)
	}
	for idx := matched; idx < len(node.Cases); idx++ {
		rc := i.evalStatements(switchEnv, node.Cases[idx].Consequent)
		if rc.Type == Break && matchesLabel(rc, label) {
			return NormalCompletion(Undefined)
		}
		if rc.IsAbrupt() {
			return rc
		}
	}
	return NormalCompletion(Undefined)
}
