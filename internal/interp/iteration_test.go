package interp

import (
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

func TestForIn_IteratesOwnEnumerableKeysInInsertionOrder(t *testing.T) {
	got := runSource(t, `
		let keys = [];
		let o = {b: 1, a: 2};
		for (let k in o) { keys.push(k); }
		keys.join(",");
	`)
	if got.String() != "b,a" {
		t.Errorf("got %q, want %q", got.String(), "b,a")
	}
}

func TestForOf_IteratesArrayElements(t *testing.T) {
	got := runSource(t, `
		let sum = 0;
		for (let v of [1,2,3]) { sum += v; }
		sum;
	`)
	if got.String() != "6" {
		t.Errorf("got %q, want %q", got.String(), "6")
	}
}

func TestForOf_NonIterableThrowsTypeError(t *testing.T) {
	source := `for (let v of 5) {}`
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	interp := New(nil)
	_, err := interp.Run(program, source, "<test>")
	if err == nil || !strings.Contains(err.Error(), "TypeError") {
		t.Fatalf("expected a TypeError, got %v", err)
	}
}

func TestForIn_ContinueSkipsRemainderOfBody(t *testing.T) {
	got := runSource(t, `
		let log = [];
		let o = {a:1, b:2, c:3};
		for (let k in o) {
			if (k == "b") continue;
			log.push(k);
		}
		log.join(",");
	`)
	if got.String() != "a,c" {
		t.Errorf("got %q, want %q", got.String(), "a,c")
	}
}

func TestForOf_BreakStopsIteration(t *testing.T) {
	got := runSource(t, `
		let log = [];
		for (let v of [1,2,3,4]) {
			if (v == 3) break;
			log.push(v);
		}
		log.join(",");
	`)
	if got.String() != "1,2" {
		t.Errorf("got %q, want %q", got.String(), "1,2")
	}
}
