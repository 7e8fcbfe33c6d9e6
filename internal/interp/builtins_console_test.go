package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

func TestConsole_LogJoinsArgumentsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	interp := New(&buf)
	source := `console.log("a", 1, true);`
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if _, err := interp.Run(program, source, "<test>"); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "a 1 true" {
		t.Errorf("got %q, want %q", got, "a 1 true")
	}
}

func TestConsole_ErrorWarnInfoAllWriteToOutput(t *testing.T) {
	var buf bytes.Buffer
	interp := New(&buf)
	source := `console.error("e"); console.warn("w"); console.info("i");`
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if _, err := interp.Run(program, source, "<test>"); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "e\nw\ni" {
		t.Errorf("got %q, want %q", got, "e\nw\ni")
	}
}
