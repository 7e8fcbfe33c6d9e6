// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is implemented by nodes that produce a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is implemented by nodes that execute for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var buf bytes.Buffer
	for _, s := range p.Statements {
		buf.WriteString(s.String())
		buf.WriteString("\n")
	}
	return buf.String()
}

// ---- Identifiers and literals ----

// Identifier is a bare name reference.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a single/double-quoted string literal.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return `"` + s.Value + `"` }

// TemplatePart mirrors lexer.TemplatePart but with the expression segment
// already parsed into an Expression rather than raw source text.
type TemplatePart struct {
	IsExpr bool
	Cooked string
	Expr   Expression
}

// TemplateLiteral is a backtick-delimited template literal.
type TemplateLiteral struct {
	Token lexer.Token
	Parts []TemplatePart
}

func (t *TemplateLiteral) expressionNode()      {}
func (t *TemplateLiteral) TokenLiteral() string { return t.Token.Literal }
func (t *TemplateLiteral) Pos() lexer.Position  { return t.Token.Pos }
func (t *TemplateLiteral) String() string {
	var sb strings.Builder
	sb.WriteByte('`')
	for _, p := range t.Parts {
		if p.IsExpr {
			sb.WriteString("${")
			sb.WriteString(p.Expr.String())
			sb.WriteByte('}')
		} else {
			sb.WriteString(p.Cooked)
		}
	}
	sb.WriteByte('`')
	return sb.String()
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() lexer.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NullLiteral is the `null` literal.
type NullLiteral struct{ Token lexer.Token }

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "null" }

// UndefinedLiteral is the `undefined` literal.
type UndefinedLiteral struct{ Token lexer.Token }

func (u *UndefinedLiteral) expressionNode()      {}
func (u *UndefinedLiteral) TokenLiteral() string { return u.Token.Literal }
func (u *UndefinedLiteral) Pos() lexer.Position  { return u.Token.Pos }
func (u *UndefinedLiteral) String() string       { return "undefined" }

// ThisExpression is the `this` keyword.
type ThisExpression struct{ Token lexer.Token }

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) Pos() lexer.Position  { return t.Token.Pos }
func (t *ThisExpression) String() string       { return "this" }

// SuperExpression is the `super` keyword, valid in derived-class method bodies.
type SuperExpression struct{ Token lexer.Token }

func (s *SuperExpression) expressionNode()      {}
func (s *SuperExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SuperExpression) Pos() lexer.Position  { return s.Token.Pos }
func (s *SuperExpression) String() string       { return "super" }

// GroupedExpression is a parenthesized expression; kept as its own node so
// String() round-trips the source parenthesization.
type GroupedExpression struct {
	Token lexer.Token
	Inner Expression
}

func (g *GroupedExpression) expressionNode()      {}
func (g *GroupedExpression) TokenLiteral() string { return g.Token.Literal }
func (g *GroupedExpression) Pos() lexer.Position  { return g.Token.Pos }
func (g *GroupedExpression) String() string       { return "(" + g.Inner.String() + ")" }

// ---- Array / Object literals ----

// ArrayLiteral is `[elem, elem, ...]`. A nil element models an elision
// (sparse array hole, e.g. `[1,,3]`); a SpreadElement models `...expr`.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SpreadElement is `...expr` inside an array literal, object literal, or
// call argument list.
type SpreadElement struct {
	Token lexer.Token
	Arg   Expression
}

func (s *SpreadElement) expressionNode()      {}
func (s *SpreadElement) TokenLiteral() string { return s.Token.Literal }
func (s *SpreadElement) Pos() lexer.Position  { return s.Token.Pos }
func (s *SpreadElement) String() string       { return "..." + s.Arg.String() }

// PropertyKind distinguishes the three object-literal member shapes.
type PropertyKind int

const (
	PropertyInit   PropertyKind = iota // {a: 1} or shorthand {a}
	PropertyMethod                     // {m(){...}}
	PropertyGet                        // {get x(){...}}
	PropertySet                        // {set x(v){...}}
)

// ObjectProperty is one `key: value` (or shorthand/method/accessor/spread)
// entry. IsSpread marks `...expr` entries, in which case Value holds the
// spread argument and Key is nil.
type ObjectProperty struct {
	Token     lexer.Token
	Key       Expression // Identifier, StringLiteral, NumberLiteral, or computed expr
	Computed  bool
	Shorthand bool
	IsSpread  bool
	Kind      PropertyKind
	Value     Expression // for methods/accessors, a *FunctionLiteral
}

func (p *ObjectProperty) String() string {
	if p.IsSpread {
		return "..." + p.Value.String()
	}
	if p.Shorthand {
		return p.Key.String()
	}
	keyStr := p.Key.String()
	if p.Computed {
		keyStr = "[" + keyStr + "]"
	}
	switch p.Kind {
	case PropertyGet:
		return "get " + keyStr + p.Value.String()
	case PropertySet:
		return "set " + keyStr + p.Value.String()
	case PropertyMethod:
		return keyStr + p.Value.String()
	default:
		return keyStr + ": " + p.Value.String()
	}
}

// ObjectLiteral is `{ prop, prop, ... }`.
type ObjectLiteral struct {
	Token      lexer.Token
	Properties []*ObjectProperty
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() lexer.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
