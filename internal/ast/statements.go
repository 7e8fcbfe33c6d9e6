package ast

import (
	"bytes"
	"strings"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// VarKind distinguishes `var` (function-scoped, hoisted) from `let`/`const`
// (block-scoped, temporal-dead-zone until their declaration executes).
type VarKind int

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

// VariableDeclarator is one `name = init` (or destructuring target, not
// supported here) entry inside a VariableDeclaration.
type VariableDeclarator struct {
	Name Expression // *Identifier
	Init Expression // nil if no initializer
}

// VariableDeclaration is `var|let|const decl, decl, ...;`.
type VariableDeclaration struct {
	Token        lexer.Token
	Kind         VarKind
	Declarators  []*VariableDeclarator
}

func (v *VariableDeclaration) statementNode()      {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	parts := make([]string, len(v.Declarators))
	for i, d := range v.Declarators {
		if d.Init != nil {
			parts[i] = d.Name.String() + " = " + d.Init.String()
		} else {
			parts[i] = d.Name.String()
		}
	}
	return v.Kind.String() + " " + strings.Join(parts, ", ") + ";"
}

// ExpressionStatement wraps an expression evaluated for effect (and, if it is
// the final statement of a program, for its completion value).
type ExpressionStatement struct {
	Token lexer.Token
	Expr  Expression
}

func (e *ExpressionStatement) statementNode()      {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expr == nil {
		return ""
	}
	return e.Expr.String()
}

// BlockStatement is `{ stmt; stmt; ... }`, introducing a new lexical scope
// for `let`/`const`.
type BlockStatement struct {
	Token      lexer.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()      {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for _, s := range b.Statements {
		buf.WriteString("  " + s.String() + "\n")
	}
	buf.WriteString("}")
	return buf.String()
}

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Token       lexer.Token
	Test        Expression
	Consequent  Statement
	Alternate   Statement // nil if no else branch
}

func (i *IfStatement) statementNode()      {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// ForStatement is the classic `for (init; test; update) body`. Any of Init,
// Test, Update may be nil.
type ForStatement struct {
	Token  lexer.Token
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()      {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	return "for (...) " + f.Body.String()
}

// ForInStatement is `for (decl in obj) body`, iterating enumerable property
// keys in insertion order.
type ForInStatement struct {
	Token lexer.Token
	Left  Node // *VariableDeclaration (single declarator) or Expression
	Right Expression
	Body  Statement
}

func (f *ForInStatement) statementNode()      {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// ForOfStatement is `for (decl of iterable) body`, iterating Array elements
// (the only iterable supported by this subset).
type ForOfStatement struct {
	Token lexer.Token
	Left  Node
	Right Expression
	Body  Statement
}

func (f *ForOfStatement) statementNode()      {}
func (f *ForOfStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForOfStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForOfStatement) String() string {
	return "for (" + f.Left.String() + " of " + f.Right.String() + ") " + f.Body.String()
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Token lexer.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()      {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Test.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Token lexer.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) statementNode()      {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() lexer.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// BreakStatement is `break [label];`.
type BreakStatement struct {
	Token lexer.Token
	Label string // "" if unlabeled
}

func (b *BreakStatement) statementNode()      {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label != "" {
		return "break " + b.Label + ";"
	}
	return "break;"
}

// ContinueStatement is `continue [label];`.
type ContinueStatement struct {
	Token lexer.Token
	Label string
}

func (c *ContinueStatement) statementNode()      {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label != "" {
		return "continue " + c.Label + ";"
	}
	return "continue;"
}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression // nil for bare `return;`
}

func (r *ReturnStatement) statementNode()      {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token lexer.Token
	Value Expression
}

func (t *ThrowStatement) statementNode()      {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Value.String() + ";" }

// CatchClause is the `catch (param) body` part of a TryStatement.
type CatchClause struct {
	Param *Identifier // nil for parameterless `catch {}`
	Body  *BlockStatement
}

// TryStatement is `try { } [catch (e) { }] [finally { }]`.
type TryStatement struct {
	Token   lexer.Token
	Block   *BlockStatement
	Catch   *CatchClause // nil if no catch clause
	Finally *BlockStatement // nil if no finally clause
}

func (t *TryStatement) statementNode()      {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	s := "try " + t.Block.String()
	if t.Catch != nil {
		s += " catch " + t.Catch.Body.String()
	}
	if t.Finally != nil {
		s += " finally " + t.Finally.String()
	}
	return s
}

// SwitchCase is one `case expr:` (or `default:` when Test == nil) arm.
type SwitchCase struct {
	Test       Expression // nil for default
	Consequent []Statement
}

// SwitchStatement is `switch (disc) { case ...: ... }`, performing
// strict-equal matching with fallthrough until a `break`.
type SwitchStatement struct {
	Token        lexer.Token
	Discriminant Expression
	Cases        []*SwitchCase
}

func (s *SwitchStatement) statementNode()      {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	return "switch (" + s.Discriminant.String() + ") { ... }"
}

// LabeledStatement is `label: statement`, consumed by labeled break/continue.
type LabeledStatement struct {
	Token lexer.Token
	Label string
	Body  Statement
}

func (l *LabeledStatement) statementNode()      {}
func (l *LabeledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStatement) Pos() lexer.Position  { return l.Token.Pos }
func (l *LabeledStatement) String() string {
	return l.Label + ": " + l.Body.String()
}

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Token lexer.Token }

func (e *EmptyStatement) statementNode()      {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }
