package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("os.Pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunScript_EvalExpressionPrintsResult(t *testing.T) {
	evalExpr = `1 + 2;`
	strictMode = false
	defer func() { evalExpr = "" }()

	out, err := captureStdout(t, func() error { return runScript(nil, nil) })
	if err != nil {
		t.Fatalf("runScript error: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Errorf("got %q, want %q", out, "3")
	}
}

func TestRunScript_ConsoleLogGoesToStdout(t *testing.T) {
	evalExpr = `console.log("hello"); 42;`
	strictMode = false
	defer func() { evalExpr = "" }()

	out, err := captureStdout(t, func() error { return runScript(nil, nil) })
	if err != nil {
		t.Fatalf("runScript error: %v", err)
	}
	snaps.MatchSnapshot(t, "console_log_and_result", out)
}

func TestRunScript_UncaughtThrowReturnsError(t *testing.T) {
	evalExpr = `notDefined;`
	strictMode = false
	defer func() { evalExpr = "" }()

	_, err := captureStdout(t, func() error { return runScript(nil, nil) })
	if err == nil {
		t.Fatal("expected an error for an undeclared reference")
	}
	if !strings.Contains(err.Error(), "ReferenceError") {
		t.Errorf("error = %v, want it to mention ReferenceError", err)
	}
}

func TestRunScript_NoFileOrEvalReturnsUsageError(t *testing.T) {
	evalExpr = ""
	strictMode = false

	_, err := captureStdout(t, func() error { return runScript(nil, nil) })
	if err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}

func TestRunScript_StrictModeRejectsReservedWordIdentifier(t *testing.T) {
	evalExpr = `var let = 1;`
	strictMode = true
	defer func() { evalExpr = ""; strictMode = false }()

	_, err := captureStdout(t, func() error { return runScript(nil, nil) })
	if err == nil {
		t.Fatal("expected an error using a strict-mode reserved word as an identifier")
	}
}
