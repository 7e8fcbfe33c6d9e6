package parser

import (
	"testing"

	"github.com/echosoar/jsi-sub000/internal/ast"
	"github.com/echosoar/jsi-sub000/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			t.Errorf("parse error: %v", e)
		}
	}
	return prog
}

func TestOperatorPrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":       "(1 + (2 * 3))",
		"1 * 2 + 3":       "((1 * 2) + 3)",
		"2 ** 3 ** 2":     "(2 ** (3 ** 2))",
		"a ?? b || c":     "(a ?? (b || c))",
		"a || b && c":     "(a || (b && c))",
		"a == b != c":     "((a == b) != c)",
		"1 < 2 && 3 > 4":  "((1 < 2) && (3 > 4))",
		"a = b = c":       "(a = (b = c))",
	}
	for src, want := range cases {
		prog := parseSource(t, src+";")
		stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%s: not an expression statement", src)
		}
		if got := stmt.Expr.String(); got != want {
			t.Errorf("%s: got %q want %q", src, got, want)
		}
	}
}

func TestASINoSemicolonAtBrace(t *testing.T) {
	prog := parseSource(t, "function f() { return 1 }")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
}

func TestASIRestrictedReturn(t *testing.T) {
	prog := parseSource(t, "function f() {\n return\n 1\n}")
	decl := prog.Statements[0].(*ast.FunctionDeclaration)
	body := decl.Fn.Body
	if len(body.Statements) != 2 {
		t.Fatalf("expected return and expression statement split by ASI, got %d", len(body.Statements))
	}
	ret := body.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("expected bare return due to ASI, got value %v", ret.Value)
	}
}

func TestArrowFunctionSingleParam(t *testing.T) {
	prog := parseSource(t, "var f = x => x + 1;")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	fn := decl.Declarators[0].Init.(*ast.FunctionLiteral)
	if !fn.IsArrow || len(fn.Params) != 1 || fn.Params[0].Name.Name != "x" {
		t.Fatalf("unexpected arrow function shape: %+v", fn)
	}
	if fn.ExprBody == nil {
		t.Fatalf("expected concise arrow body")
	}
}

func TestArrowFunctionParenParams(t *testing.T) {
	prog := parseSource(t, "var f = (a, b) => { return a + b; };")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	fn := decl.Declarators[0].Init.(*ast.FunctionLiteral)
	if len(fn.Params) != 2 || fn.Body == nil {
		t.Fatalf("unexpected arrow function shape: %+v", fn)
	}
}

func TestGroupedExpressionNotArrow(t *testing.T) {
	prog := parseSource(t, "var x = (1 + 2) * 3;")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin, ok := decl.Declarators[0].Init.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected binary expression, got %T", decl.Declarators[0].Init)
	}
	if _, ok := bin.Left.(*ast.GroupedExpression); !ok {
		t.Fatalf("expected grouped expression on left, got %T", bin.Left)
	}
}

func TestObjectLiteralShapes(t *testing.T) {
	prog := parseSource(t, `var o = {a: 1, b, [c]: 2, m() {}, get g() {}, ...rest};`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	obj := decl.Declarators[0].Init.(*ast.ObjectLiteral)
	if len(obj.Properties) != 6 {
		t.Fatalf("expected 6 properties, got %d", len(obj.Properties))
	}
	if !obj.Properties[1].Shorthand {
		t.Errorf("expected shorthand property for b")
	}
	if !obj.Properties[2].Computed {
		t.Errorf("expected computed key for [c]")
	}
	if obj.Properties[3].Kind != ast.PropertyMethod {
		t.Errorf("expected method kind for m()")
	}
	if obj.Properties[4].Kind != ast.PropertyGet {
		t.Errorf("expected getter kind for get g()")
	}
	if !obj.Properties[5].IsSpread {
		t.Errorf("expected spread entry for ...rest")
	}
}

func TestArrayLiteralElisionAndSpread(t *testing.T) {
	prog := parseSource(t, "var a = [1, , ...b];")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	arr := decl.Declarators[0].Init.(*ast.ArrayLiteral)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Errorf("expected elision hole at index 1")
	}
	if _, ok := arr.Elements[2].(*ast.SpreadElement); !ok {
		t.Errorf("expected spread element at index 2, got %T", arr.Elements[2])
	}
}

func TestClassDeclaration(t *testing.T) {
	src := `
class Animal {
  constructor(name) { this.name = name; }
  speak() { return this.name; }
  static create(name) { return new Animal(name); }
}`
	prog := parseSource(t, src)
	decl, ok := prog.Statements[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected class declaration, got %T", prog.Statements[0])
	}
	if decl.Class.Name.Name != "Animal" {
		t.Errorf("expected class name Animal, got %s", decl.Class.Name.Name)
	}
	if len(decl.Class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(decl.Class.Members))
	}
	if !decl.Class.Members[0].IsCtor {
		t.Errorf("expected first member to be constructor")
	}
	if !decl.Class.Members[2].Modifiers.Has(ast.ModStatic) {
		t.Errorf("expected create() to be static")
	}
}

func TestClassExtends(t *testing.T) {
	prog := parseSource(t, "class Dog extends Animal { speak() { return super.speak(); } }")
	decl := prog.Statements[0].(*ast.ClassDeclaration)
	if decl.Class.SuperClass == nil {
		t.Fatalf("expected super class")
	}
}

func TestForInForOf(t *testing.T) {
	prog := parseSource(t, "for (let k in obj) { x; } for (let v of arr) { y; }")
	if _, ok := prog.Statements[0].(*ast.ForInStatement); !ok {
		t.Errorf("expected ForInStatement, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.ForOfStatement); !ok {
		t.Errorf("expected ForOfStatement, got %T", prog.Statements[1])
	}
}

func TestTryCatchFinally(t *testing.T) {
	prog := parseSource(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	ts := prog.Statements[0].(*ast.TryStatement)
	if ts.Catch == nil || ts.Catch.Param.Name != "e" {
		t.Fatalf("expected catch clause with param e")
	}
	if ts.Finally == nil {
		t.Fatalf("expected finally clause")
	}
}

func TestSwitchStatement(t *testing.T) {
	prog := parseSource(t, "switch (x) { case 1: a(); break; default: b(); }")
	sw := prog.Statements[0].(*ast.SwitchStatement)
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if sw.Cases[1].Test != nil {
		t.Errorf("expected default case to have nil Test")
	}
}

func TestOptionalChainingAndNullish(t *testing.T) {
	prog := parseSource(t, "var x = a?.b?.c ?? d;")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	logical, ok := decl.Declarators[0].Init.(*ast.LogicalExpression)
	if !ok {
		t.Fatalf("expected logical expression, got %T", decl.Declarators[0].Init)
	}
	if logical.Operator != "??" {
		t.Errorf("expected ?? operator, got %s", logical.Operator)
	}
	member, ok := logical.Left.(*ast.MemberExpression)
	if !ok || !member.Optional {
		t.Fatalf("expected optional member chain on left, got %+v", logical.Left)
	}
}

func TestTemplateLiteralParsesEmbeddedExpression(t *testing.T) {
	prog := parseSource(t, "var s = `hi ${1 + 2}!`;")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	tmpl := decl.Declarators[0].Init.(*ast.TemplateLiteral)
	if len(tmpl.Parts) != 3 {
		t.Fatalf("expected 3 template parts, got %d", len(tmpl.Parts))
	}
	if !tmpl.Parts[1].IsExpr {
		t.Fatalf("expected middle part to be an expression")
	}
	if _, ok := tmpl.Parts[1].Expr.(*ast.BinaryExpression); !ok {
		t.Errorf("expected binary expression inside template, got %T", tmpl.Parts[1].Expr)
	}
}

func TestLabeledBreakContinue(t *testing.T) {
	prog := parseSource(t, "outer: for (;;) { break outer; }")
	label, ok := prog.Statements[0].(*ast.LabeledStatement)
	if !ok {
		t.Fatalf("expected labeled statement, got %T", prog.Statements[0])
	}
	if label.Label != "outer" {
		t.Errorf("expected label outer, got %s", label.Label)
	}
}

func TestNewExpressionWithMemberCallee(t *testing.T) {
	prog := parseSource(t, "var x = new a.b.C(1, 2);")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	n, ok := decl.Declarators[0].Init.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected new expression, got %T", decl.Declarators[0].Init)
	}
	if len(n.Arguments) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(n.Arguments))
	}
}
