package errors

import (
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

func TestInterpErrorFormat(t *testing.T) {
	err := New(ReferenceError, lexer.Position{Line: 2, Column: 5}, "x is not defined", "let y = x;\n", "")
	out := err.Format(false)
	if !strings.Contains(out, "ReferenceError") {
		t.Errorf("expected ReferenceError in output, got %q", out)
	}
	if !strings.Contains(out, "x is not defined") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestInterpErrorFormatNoSource(t *testing.T) {
	err := New(TypeError, lexer.Position{Line: 1, Column: 1}, "undefined is not a function", "", "")
	out := err.Format(false)
	if strings.Contains(out, "|") {
		t.Errorf("expected no source line rendering without source, got %q", out)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		SyntaxError:    "SyntaxError",
		TypeError:      "TypeError",
		ReferenceError: "ReferenceError",
		RangeError:     "RangeError",
		Unknown:        "Error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	errs := []*InterpError{
		New(SyntaxError, lexer.Position{Line: 1, Column: 1}, "unexpected token", "", ""),
		New(SyntaxError, lexer.Position{Line: 2, Column: 1}, "unexpected end of input", "", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count header, got %q", out)
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	errs := []*InterpError{New(RangeError, lexer.Position{Line: 1, Column: 1}, "invalid array length", "", "")}
	out := FormatErrors(errs, false)
	if strings.Contains(out, "error(s)") {
		t.Errorf("single error should not print a batch header, got %q", out)
	}
}

func TestInterpErrorFormatWithContext(t *testing.T) {
	source := "let a = 1;\nlet b = a +;\nlet c = 3;\n"
	err := New(SyntaxError, lexer.Position{Line: 2, Column: 12}, "unexpected ';'", source, "script.js")
	out := err.FormatWithContext(1, false)
	if !strings.Contains(out, "let a = 1;") || !strings.Contains(out, "let c = 3;") {
		t.Errorf("expected surrounding context lines, got %q", out)
	}
}
