package ast

import (
	"strings"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// Parameter is one formal parameter; Default is non-nil for `(a = 1)` default
// values, Rest is true for a trailing `...rest` parameter.
type Parameter struct {
	Name    *Identifier
	Default Expression
	Rest    bool
}

func (p *Parameter) String() string {
	s := p.Name.String()
	if p.Rest {
		return "..." + s
	}
	if p.Default != nil {
		s += " = " + p.Default.String()
	}
	return s
}

// FunctionLiteral covers function declarations, function expressions, and
// object-literal method shorthand. Name is nil for anonymous expressions.
type FunctionLiteral struct {
	Token     lexer.Token
	Name      *Identifier
	Params    []*Parameter
	Body      *BlockStatement
	IsArrow   bool
	IsAsync   bool
	// ExprBody holds a concise-arrow-body expression (`x => x + 1`); nil when
	// the function has a block body.
	ExprBody Expression
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	head := "function"
	if f.Name != nil {
		head += " " + f.Name.String()
	}
	if f.IsArrow {
		head = "(" + strings.Join(params, ", ") + ") =>"
	} else {
		head += "(" + strings.Join(params, ", ") + ")"
	}
	if f.ExprBody != nil {
		return head + " " + f.ExprBody.String()
	}
	return head + " " + f.Body.String()
}

// FunctionDeclaration is a named function bound into the enclosing scope at
// hoisting time (`function name() {}`), distinct from a FunctionLiteral used
// as an expression so the evaluator's statement dispatch can hoist it.
type FunctionDeclaration struct {
	Token lexer.Token
	Fn    *FunctionLiteral
}

func (f *FunctionDeclaration) statementNode()      {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDeclaration) String() string       { return f.Fn.String() }
