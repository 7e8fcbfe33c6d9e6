package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestLexScript_PrintsTokenStream(t *testing.T) {
	evalExpr = `let x = 1;`
	strictMode = false
	lexShowPos = false
	lexOnlyErrors = false
	defer func() { evalExpr = "" }()

	out, err := captureStdout(t, func() error { return lexScript(nil, nil) })
	if err != nil {
		t.Fatalf("lexScript error: %v", err)
	}
	snaps.MatchSnapshot(t, "let_declaration_tokens", out)
}

func TestLexScript_OnlyErrorsFiltersNonIllegalTokens(t *testing.T) {
	evalExpr = "let x = @;"
	strictMode = false
	lexShowPos = false
	lexOnlyErrors = true
	defer func() { evalExpr = ""; lexOnlyErrors = false }()

	out, err := captureStdout(t, func() error { return lexScript(nil, nil) })
	if err == nil {
		t.Fatal("expected an error reporting illegal token(s)")
	}
	if out == "" {
		t.Error("expected the illegal token to still be printed")
	}
}

func TestLexScript_ShowPosAppendsPositionSuffix(t *testing.T) {
	evalExpr = `x`
	strictMode = false
	lexShowPos = true
	lexOnlyErrors = false
	defer func() { evalExpr = ""; lexShowPos = false }()

	out, err := captureStdout(t, func() error { return lexScript(nil, nil) })
	if err != nil {
		t.Fatalf("lexScript error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected token output")
	}
	snaps.MatchSnapshot(t, "identifier_token_with_pos", out)
}
