package interp

import (
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

// runSource parses and evaluates source against a fresh interpreter, failing
// the test on any parse or uncaught-throw error.
func runSource(t *testing.T, source string) Value {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", source, errs)
	}
	interp := New(nil)
	val, err := interp.Run(program, source, "<test>")
	if err != nil {
		t.Fatalf("Run(%q) error: %v", source, err)
	}
	return val
}

// TestScenario1 covers spec.md §8 scenario 1: array push + toString.
func TestScenario1(t *testing.T) {
	got := runSource(t, `let a=[1,2,3]; a.push(4); a.toString()`)
	if got.String() != "1,2,3,4" {
		t.Errorf("got %q, want %q", got.String(), "1,2,3,4")
	}
}

// TestScenario2 covers spec.md §8 scenario 2: __proto__ literal wiring and
// own-vs-inherited enumerable keys.
func TestScenario2(t *testing.T) {
	got := runSource(t, `let o={a:1,x:2}; let p={__proto__:o}; p.x=3; Object.keys(p).join(",")`)
	if got.String() != "x" {
		t.Errorf("Object.keys(p).join(',') = %q, want %q", got.String(), "x")
	}
	got2 := runSource(t, `let o={a:1,x:2}; let p={__proto__:o}; p.x=3; p.a`)
	if got2.String() != "1" {
		t.Errorf("p.a = %q, want %q", got2.String(), "1")
	}
}

// TestScenario3 covers spec.md §8 scenario 3: Function.prototype.bind with a
// partially-applied argument.
func TestScenario3(t *testing.T) {
	got := runSource(t, `function f(a,b){return a+b}; f.bind(null,1)(2)`)
	if got.String() != "3" {
		t.Errorf("got %q, want %q", got.String(), "3")
	}
}

// TestScenario4 covers spec.md §8 scenario 4: abstract vs strict equality
// across Boolean/String/Number.
func TestScenario4(t *testing.T) {
	got := runSource(t, `1 == true && 1 !== true && "0" == false && "0" !== false`)
	if b, ok := got.(*BooleanValue); !ok || !b.Value {
		t.Errorf("got %v, want true", got)
	}
}

// TestScenario5 covers spec.md §8 scenario 5: a Promise resolved after
// construction settles its `.then` reaction with the transformed value.
// Reactions only run once the whole script completes and the microtask
// queue drains (spec.md §5), so the assigned `result` only becomes visible
// on a later top-level evaluation against the same interpreter, not within
// the same statement list that scheduled it.
func TestScenario5(t *testing.T) {
	l := lexer.New(`
		let r; let p = new Promise(res=>{r=res});
		r("x");
		let result;
		p.then(v=>v+"y").then(v2 => { result = v2; });
	`)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	interp := New(nil)
	if _, err := interp.Run(program, "", "<test>"); err != nil {
		t.Fatalf("first Run error: %v", err)
	}

	l2 := lexer.New(`result;`)
	p2 := parser.New(l2)
	program2 := p2.ParseProgram()
	got, err := interp.Run(program2, "result;", "<test>")
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if got.String() != "xy" {
		t.Errorf("got %q, want %q", got.String(), "xy")
	}
}

// TestScenario6 covers spec.md §8 scenario 6: labeled continue/break across
// nested for loops.
func TestScenario6(t *testing.T) {
	got := runSource(t, `
		let a=[];
		outer: for(let i=0;i<3;i++){ for(let j=0;j<5;j++){
			if(j==1&&i==1) continue outer;
			if(j==4) break;
			if(j==3&&i==2) break outer;
			a.push(i*j); } }
		a.join(":")
	`)
	if got.String() != "0:0:0:0:0:0:2:4" {
		t.Errorf("got %q, want %q", got.String(), "0:0:0:0:0:0:2:4")
	}
}

// TestInvariant_NaNNeverEqualsItself covers spec.md §8's NaN invariants.
func TestInvariant_NaNNeverEqualsItself(t *testing.T) {
	got := runSource(t, `NaN !== NaN && !(NaN == NaN)`)
	if b, ok := got.(*BooleanValue); !ok || !b.Value {
		t.Errorf("got %v, want true", got)
	}
}

// TestInvariant_PositiveNegativeZero covers spec.md §8's +0/-0 distinction
// under strict equality and division.
func TestInvariant_PositiveNegativeZero(t *testing.T) {
	got := runSource(t, `(+0 === -0) && (1/+0 !== 1/-0)`)
	if b, ok := got.(*BooleanValue); !ok || !b.Value {
		t.Errorf("got %v, want true", got)
	}
}

// TestRoundTrip_ObjectKeysCountsOwnEnumerableProperties covers spec.md §8's
// Object.keys round-trip property.
func TestRoundTrip_ObjectKeysCountsOwnEnumerableProperties(t *testing.T) {
	got := runSource(t, `Object.keys({a:1,b:2,c:3}).length`)
	if got.String() != "3" {
		t.Errorf("got %q, want %q", got.String(), "3")
	}
}

// TestRoundTrip_JoinSplit covers spec.md §8's join/split round-trip property
// when no element contains the separator.
func TestRoundTrip_JoinSplit(t *testing.T) {
	got := runSource(t, `["a","bb","ccc"].join(",").split(",").join("|")`)
	if got.String() != "a|bb|ccc" {
		t.Errorf("got %q, want %q", got.String(), "a|bb|ccc")
	}
}

// TestRoundTrip_NumberStringRoundTrip covers spec.md §8's
// Number(String(n)) === n property for a representative set of finite values.
func TestRoundTrip_NumberStringRoundTrip(t *testing.T) {
	for _, src := range []string{"0", "42", "-7", "3.5", "0.1", "123456789"} {
		got := runSource(t, `Number(String(`+src+`)) === `+src)
		if b, ok := got.(*BooleanValue); !ok || !b.Value {
			t.Errorf("Number(String(%s)) === %s => %v, want true", src, src, got)
		}
	}
}

func TestClassInheritanceWithSuper(t *testing.T) {
	got := runSource(t, `
		class Animal {
			constructor(name) { this.name = name; }
			speak() { return this.name + " makes a sound."; }
		}
		class Dog extends Animal {
			speak() { return super.speak() + " Woof!"; }
		}
		new Dog("Rex").speak();
	`)
	want := "Rex makes a sound. Woof!"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestOptionalChainingShortCircuitsWholeChain(t *testing.T) {
	got := runSource(t, `
		let a = null;
		a?.b.c.d;
	`)
	if got != Undefined {
		t.Errorf("got %v, want Undefined", got)
	}
}

func TestTemplateLiteralsAndStringMethods(t *testing.T) {
	got := runSource(t, "let name = 'world'; `hello ${name.toUpperCase()}!`")
	if got.String() != "hello WORLD!" {
		t.Errorf("got %q, want %q", got.String(), "hello WORLD!")
	}
}

func TestTryCatchFinallyOrdering(t *testing.T) {
	got := runSource(t, `
		let log = [];
		function run() {
			try {
				log.push("try");
				throw new Error("boom");
			} catch (e) {
				log.push("catch:" + e.message);
			} finally {
				log.push("finally");
			}
		}
		run();
		log.join(",");
	`)
	want := "try,catch:boom,finally"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
}

func TestUncaughtThrowReturnsReferenceError(t *testing.T) {
	l := lexer.New(`notDefined;`)
	p := parser.New(l)
	program := p.ParseProgram()
	interp := New(nil)
	_, err := interp.Run(program, `notDefined;`, "<test>")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "ReferenceError") {
		t.Errorf("error = %v, want it to mention ReferenceError", err)
	}
}
