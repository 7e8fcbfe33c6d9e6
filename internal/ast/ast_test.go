package ast

import (
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

func TestProgramString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&VariableDeclaration{
				Token: lexer.Token{Literal: "let"},
				Kind:  VarLet,
				Declarators: []*VariableDeclarator{
					{
						Name: &Identifier{Name: "a"},
						Init: &NumberLiteral{Token: lexer.Token{Literal: "1"}, Value: 1},
					},
				},
			},
		},
	}
	if program.String() != "let a = 1;\n" {
		t.Errorf("got %q", program.String())
	}
}

func TestBinaryExpressionString(t *testing.T) {
	expr := &BinaryExpression{
		Left:     &Identifier{Name: "a"},
		Operator: "+",
		Right:    &NumberLiteral{Token: lexer.Token{Literal: "1"}, Value: 1},
	}
	if expr.String() != "(a + 1)" {
		t.Errorf("got %q", expr.String())
	}
}

func TestMemberExpressionOptionalChaining(t *testing.T) {
	m := &MemberExpression{
		Object:   &Identifier{Name: "a"},
		Property: &Identifier{Name: "b"},
		Optional: true,
	}
	if m.String() != "a?.b" {
		t.Errorf("got %q", m.String())
	}
}

func TestTemplateLiteralString(t *testing.T) {
	tmpl := &TemplateLiteral{
		Parts: []TemplatePart{
			{Cooked: "hi "},
			{IsExpr: true, Expr: &Identifier{Name: "name"}},
		},
	}
	if tmpl.String() != "`hi ${name}`" {
		t.Errorf("got %q", tmpl.String())
	}
}
