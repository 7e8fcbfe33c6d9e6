package interp

import "github.com/echosoar/jsi-sub000/internal/ast"

// hoistVarAndFunctionDecls implements spec.md §4.4's "Before executing a
// block body, the evaluator pre-scans for var and function declarations and
// installs them (functions bound to the function value; var to Undefined)".
// var declarations are function-scoped, so this recurses into nested
// blocks/if/for/while/try/switch bodies but never into a nested function
// literal's own body (that gets hoisted separately when it is called).
// Everything is installed into env; isGlobal is not consulted, since the
// caller already passes the top-level environment for a script.
func hoistVarAndFunctionDecls(i *Interpreter, env *Environment, stmts []ast.Statement, isGlobal bool) {
	for _, s := range stmts {
		hoistStatement(i, env, s)
	}
}

func hoistStatement(i *Interpreter, env *Environment, s ast.Statement) {
	switch node := s.(type) {
	case *ast.VariableDeclaration:
		if node.Kind == ast.VarVar {
			for _, d := range node.Declarators {
				if ident, ok := d.Name.(*ast.Identifier); ok {
					if _, found := env.GetLocal(ident.Name); !found {
						env.Define(ident.Name, Undefined, bindingVar)
					}
				}
			}
		}
	case *ast.FunctionDeclaration:
		fn := i.makeFunctionValue(env, node.Fn)
		env.Define(node.Fn.Name.Name, i.wrapFunction(fn), bindingVar)
	case *ast.BlockStatement:
		for _, inner := range node.Statements {
			hoistStatement(i, env, inner)
		}
	case *ast.IfStatement:
		hoistStatement(i, env, node.Consequent)
		if node.Alternate != nil {
			hoistStatement(i, env, node.Alternate)
		}
	case *ast.ForStatement:
		if decl, ok := node.Init.(*ast.VariableDeclaration); ok {
			hoistStatement(i, env, decl)
		}
		hoistStatement(i, env, node.Body)
	case *ast.ForInStatement:
		if decl, ok := node.Left.(*ast.VariableDeclaration); ok {
			hoistStatement(i, env, decl)
		}
		hoistStatement(i, env, node.Body)
	case *ast.ForOfStatement:
		if decl, ok := node.Left.(*ast.VariableDeclaration); ok {
			hoistStatement(i, env, decl)
		}
		hoistStatement(i, env, node.Body)
	case *ast.WhileStatement:
		hoistStatement(i, env, node.Body)
	case *ast.DoWhileStatement:
		hoistStatement(i, env, node.Body)
	case *ast.TryStatement:
		hoistStatement(i, env, node.Block)
		if node.Catch != nil {
			hoistStatement(i, env, node.Catch.Body)
		}
		if node.Finally != nil {
			hoistStatement(i, env, node.Finally)
		}
	case *ast.SwitchStatement:
		for _, c := range node.Cases {
			for _, inner := range c.Consequent {
				hoistStatement(i, env, inner)
			}
		}
	case *ast.LabeledStatement:
		hoistStatement(i, env, node.Body)
	}
}

// hoistBlockLetConst installs temporal-dead-zone markers for every let/const
// declared directly inside this block (not recursing into nested blocks),
// run once at block-scope entry (spec.md §4.4's TDZ rule).
func hoistBlockLetConst(env *Environment, stmts []ast.Statement) {
	for _, s := range stmts {
		decl, ok := s.(*ast.VariableDeclaration)
		if !ok || decl.Kind == ast.VarVar {
			continue
		}
		kind := bindingLet
		if decl.Kind == ast.VarConst {
			kind = bindingConst
		}
		for _, d := range decl.Declarators {
			if ident, ok := d.Name.(*ast.Identifier); ok {
				env.DeclareTDZ(ident.Name, kind)
			}
		}
	}
}
