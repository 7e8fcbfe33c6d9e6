package interp

import (
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

func TestHoisting_VarInsideIfAndForIsFunctionScoped(t *testing.T) {
	got := runSource(t, `
		function f() {
			if (true) {
				for (var i = 0; i < 1; i++) {
					var deep = "reached";
				}
			}
			return deep;
		}
		f();
	`)
	if got.String() != "reached" {
		t.Errorf("got %q, want %q", got.String(), "reached")
	}
}

func TestHoisting_LetInBlockIsTDZUntilItsDeclaration(t *testing.T) {
	source := `
		{
			x;
			let x = 1;
		}
	`
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	interp := New(nil)
	_, err := interp.Run(program, source, "<test>")
	if err == nil || !strings.Contains(err.Error(), "ReferenceError") {
		t.Fatalf("expected a ReferenceError from the TDZ, got %v", err)
	}
}

func TestHoisting_FunctionDeclarationInNestedBlockIsCallableEarly(t *testing.T) {
	got := runSource(t, `
		function outer() {
			return inner();
			function inner() { return "inner-value"; }
		}
		outer();
	`)
	if got.String() != "inner-value" {
		t.Errorf("got %q, want %q", got.String(), "inner-value")
	}
}
