package interp

import (
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

// runTwoPhase runs `setup` to completion (draining its microtask queue),
// then runs `read` against the same interpreter and returns its value.
// Promise reactions only become visible once the script that scheduled them
// finishes and the queue drains (spec.md §5), so tests that assign a
// variable inside a `.then` callback must read it back in a later
// evaluation, not the same statement list.
func runTwoPhase(t *testing.T, setup, read string) Value {
	t.Helper()
	interp := New(nil)
	l1 := lexer.New(setup)
	p1 := parser.New(l1)
	prog1 := p1.ParseProgram()
	if errs := p1.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors in setup: %v", errs)
	}
	if _, err := interp.Run(prog1, setup, "<test>"); err != nil {
		t.Fatalf("setup Run error: %v", err)
	}
	l2 := lexer.New(read)
	p2 := parser.New(l2)
	prog2 := p2.ParseProgram()
	if errs := p2.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors in read: %v", errs)
	}
	got, err := interp.Run(prog2, read, "<test>")
	if err != nil {
		t.Fatalf("read Run error: %v", err)
	}
	return got
}

func TestPromise_ResolveThenRunsAfterSynchronousCode(t *testing.T) {
	got := runSource(t, `
		let log = [];
		Promise.resolve("a").then(v => log.push(v));
		log.push("sync");
		log.join(",");
	`)
	if got.String() != "sync" {
		t.Errorf("got %q, want %q (the .then callback should not have run yet)", got.String(), "sync")
	}
}

func TestPromise_CatchHandlesRejection(t *testing.T) {
	got := runTwoPhase(t,
		`let result; Promise.reject("bad").catch(e => { result = "caught:" + e; });`,
		`result;`,
	)
	if got.String() != "caught:bad" {
		t.Errorf("got %q, want %q", got.String(), "caught:bad")
	}
}

func TestPromise_FinallyRunsRegardlessOfOutcome(t *testing.T) {
	got := runTwoPhase(t,
		`let ran = false; let r; let p = new Promise(res => { r = res; }); p.finally(() => { ran = true; }); r("done");`,
		`ran;`,
	)
	if got != True {
		t.Errorf("got %v, want true", got)
	}
}

func TestPromise_AllSettlesWithValuesInOrder(t *testing.T) {
	got := runTwoPhase(t, `
		let r1, r2;
		let p1 = new Promise(res => { r1 = res; });
		let p2 = new Promise(res => { r2 = res; });
		let results;
		Promise.all([p1, p2]).then(vs => { results = vs.join(","); });
		r2("second");
		r1("first");
	`, `results;`)
	if got.String() != "first,second" {
		t.Errorf("got %q, want %q", got.String(), "first,second")
	}
}

func TestPromise_ResolvingWithAnotherPromiseAdoptsItsState(t *testing.T) {
	got := runTwoPhase(t, `
		let r;
		let inner = new Promise(res => { r = res; });
		let outer = Promise.resolve(inner);
		let result;
		outer.then(v => { result = v; });
		r("adopted");
	`, `result;`)
	if got.String() != "adopted" {
		t.Errorf("got %q, want %q", got.String(), "adopted")
	}
}
