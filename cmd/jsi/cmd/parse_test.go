package cmd

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestRunParse_PrintsProgramString(t *testing.T) {
	parseExpression = `let x = 1 + 2;`
	strictMode = false
	defer func() { parseExpression = "" }()

	out, err := captureStdout(t, func() error { return runParse(nil, nil) })
	if err != nil {
		t.Fatalf("runParse error: %v", err)
	}
	snaps.MatchSnapshot(t, "let_declaration_ast", out)
}

func TestRunParse_SyntaxErrorReportsParserErrors(t *testing.T) {
	parseExpression = `let x = ;`
	strictMode = false
	defer func() { parseExpression = "" }()

	_, err := captureStdout(t, func() error { return runParse(nil, nil) })
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "parsing failed") {
		t.Errorf("error = %v, want it to mention parsing failure", err)
	}
}
