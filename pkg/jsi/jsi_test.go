package jsi

import (
	"strings"
	"testing"
)

func TestRun_SimpleExpression(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := engine.Run(`1 + 2;`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !result.Success {
		t.Fatal("Run() Success = false, want true")
	}
	if got := result.Value.String(); got != "3" {
		t.Errorf("Run() value = %q, want %q", got, "3")
	}
}

func TestRun_PersistsGlobalsAcrossCalls(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := engine.Run(`var counter = 0;`); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	result, err := engine.Run(`counter = counter + 1; counter;`)
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if got := result.Value.String(); got != "1" {
		t.Errorf("counter = %q, want %q", got, "1")
	}
}

func TestRun_SyntaxError(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = engine.Run(`var x = ;`)
	if err == nil {
		t.Fatal("Run() expected a syntax error, got nil")
	}
	jsErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Run() error type = %T, want *Error", err)
	}
	if jsErr.Kind != SyntaxError {
		t.Errorf("Kind = %v, want SyntaxError", jsErr.Kind)
	}
}

func TestRun_UncaughtThrowReportsKindAndWrapped(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = engine.Run(`undeclaredVariable;`)
	if err == nil {
		t.Fatal("Run() expected a ReferenceError, got nil")
	}
	jsErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Run() error type = %T, want *Error", err)
	}
	if jsErr.Kind != ReferenceError {
		t.Errorf("Kind = %v, want ReferenceError", jsErr.Kind)
	}
	if jsErr.Wrapped == nil {
		t.Error("Wrapped value should carry the thrown Error object")
	}
}

func TestRun_CustomThrowIsWrapped(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = engine.Run(`throw new RangeError("out of bounds");`)
	if err == nil {
		t.Fatal("Run() expected a RangeError, got nil")
	}
	jsErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Run() error type = %T, want *Error", err)
	}
	if jsErr.Kind != RangeError {
		t.Errorf("Kind = %v, want RangeError", jsErr.Kind)
	}
	if !strings.Contains(jsErr.Message, "out of bounds") {
		t.Errorf("Message = %q, want it to contain %q", jsErr.Message, "out of bounds")
	}
	if jsErr.Wrapped == nil {
		t.Error("Wrapped value should carry the thrown RangeError object")
	}
}

func TestParse_ReturnsProgramForValidSource(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	program, err := engine.Parse(`function add(a, b) { return a + b; }`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if program == nil || len(program.Statements) != 1 {
		t.Fatalf("Parse() statements = %v, want 1", program)
	}
}

func TestSetOutput_CapturesConsoleLog(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	var buf strings.Builder
	engine.SetOutput(&buf)

	if _, err := engine.Run(`console.log("hello");`); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "hello") {
		t.Errorf("output = %q, want it to contain %q", got, "hello")
	}
}

func TestWithStrict_RejectsWithReservedWord(t *testing.T) {
	engine, err := New(WithStrict(true))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = engine.Run(`var let = 1;`)
	if err == nil {
		t.Fatal("Run() expected an error using a strict-mode reserved word as an identifier")
	}
}
