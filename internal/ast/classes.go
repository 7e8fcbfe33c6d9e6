package ast

import "github.com/echosoar/jsi-sub000/internal/lexer"

// Modifier records a class-member modifier the parser recognizes but does
// not enforce (spec.md §4.2: "the parser records modifiers without
// enforcing visibility").
type Modifier int

const (
	ModNone Modifier = 0
	ModPrivate Modifier = 1 << iota
	ModPublic
	ModProtected
	ModStatic
)

func (m Modifier) Has(f Modifier) bool { return m&f != 0 }

// ClassMember is one constructor/method/field entry in a class body.
type ClassMember struct {
	Kind      PropertyKind // PropertyInit (field), PropertyMethod, PropertyGet, PropertySet
	Key       Expression   // Identifier or computed expression
	Computed  bool
	Modifiers Modifier
	IsCtor    bool
	Method    *FunctionLiteral // for methods/accessors/constructor
	FieldInit Expression       // for field declarations, nil if uninitialized
}

// ClassLiteral covers both class declarations and class expressions;
// ClassDeclaration below wraps it as a Statement when named and declared at
// statement position.
type ClassLiteral struct {
	Token      lexer.Token
	Name       *Identifier // nil for anonymous class expressions
	SuperClass Expression  // nil if no `extends` clause
	Members    []*ClassMember
}

func (c *ClassLiteral) expressionNode()      {}
func (c *ClassLiteral) TokenLiteral() string { return c.Token.Literal }
func (c *ClassLiteral) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClassLiteral) String() string {
	s := "class"
	if c.Name != nil {
		s += " " + c.Name.String()
	}
	if c.SuperClass != nil {
		s += " extends " + c.SuperClass.String()
	}
	s += " { ... }"
	return s
}

// ClassDeclaration is a class bound into the enclosing scope
// (`class Name [extends Super] { ... }`).
type ClassDeclaration struct {
	Token lexer.Token
	Class *ClassLiteral
}

func (c *ClassDeclaration) statementNode()      {}
func (c *ClassDeclaration) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDeclaration) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClassDeclaration) String() string       { return c.Class.String() }
