package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/echosoar/jsi-sub000/internal/ast"
	ierrors "github.com/echosoar/jsi-sub000/internal/errors"
	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// Interpreter is the single-threaded tree-walker over a Program's
// statements (spec.md §4.5), grounded on the teacher's Interpreter struct
// shape (internal/interp/interpreter.go) but replacing its boolean control
// flags with Completion records returned from every Eval call, and
// replacing its case-insensitive ident.Map-backed Environment with the ES
// case-sensitive one in environment.go.
type Interpreter struct {
	global *Environment
	output io.Writer
	strict bool

	// globals holds the uneval'd intrinsic constructor Objects, so builtins
	// wiring code and the evaluator (for `instanceof`, prototype lookups)
	// can reach them by name without a scope lookup.
	globals *Globals

	callStack ierrors.StackTrace

	// microtasks is the Promise reaction FIFO, drained to quiescence after
	// the top-level script completes (spec.md §4.7).
	microtasks []func()

	source string
	file   string
}

// Globals bundles references to every required intrinsic (spec.md §4.6),
// populated once at interpreter construction by installBuiltins.
type Globals struct {
	ObjectCtor   *Object
	ArrayCtor    *Object
	FunctionCtor *Object
	NumberCtor   *Object
	StringCtor   *Object
	BooleanCtor  *Object
	ErrorCtor    *Object
	TypeErrorCtor      *Object
	RangeErrorCtor     *Object
	ReferenceErrorCtor *Object
	SyntaxErrorCtor    *Object
	PromiseCtor  *Object
	Console      *Object

	ObjectProto   *Object
	ArrayProto    *Object
	FunctionProto *Object
	NumberProto   *Object
	StringProto   *Object
	BooleanProto  *Object
	ErrorProto    *Object
	PromiseProto  *Object
}

// New creates an interpreter with a fresh global environment and the
// required built-in intrinsics installed (spec.md §4.6, §9's "Initialization
// order: create empty intrinsic objects -> link their prototypes to each
// other -> install methods").
func New(output io.Writer) *Interpreter {
	if output == nil {
		output = os.Stdout
	}
	i := &Interpreter{
		global: NewEnvironment(),
		output: output,
	}
	i.globals = i.installBuiltins()
	return i
}

// SetStrict records the strict-mode setting reported by Strict. The
// interpreter does not lex or parse, so keyword recognition is switched on
// the lexer by the caller (pkg/jsi's Engine.Parse does so).
func (i *Interpreter) SetStrict(strict bool) { i.strict = strict }

// Strict reports the current strict-mode setting.
func (i *Interpreter) Strict() bool { return i.strict }

// SetOutput redirects console.log's writer.
func (i *Interpreter) SetOutput(w io.Writer) { i.output = w }

// Global returns the top-level environment, useful for tests that want to
// define bindings before running a script.
func (i *Interpreter) Global() *Environment { return i.global }

// Builtins returns the bundle of intrinsic constructor/prototype objects.
func (i *Interpreter) Builtins() *Globals { return i.globals }

// Run evaluates program against the global scope, draining the microtask
// queue afterward (spec.md §4.7), and returns the completion value of the
// last expression statement, or a typed *ierrors.InterpError if evaluation
// ended in an uncaught throw.
func (i *Interpreter) Run(program *ast.Program, source, file string) (Value, error) {
	i.source, i.file = source, file
	hoistVarAndFunctionDecls(i, i.global, program.Statements, true)
	var last Value = Undefined
	for _, stmt := range program.Statements {
		c := i.evalStatement(i.global, stmt)
		switch c.Type {
		case Normal:
			if c.Value != nil {
				last = c.Value
			}
		case ThrowCompletion:
			i.drainMicrotasks()
			return nil, i.toHostError(c.Value)
		case Return:
			// A bare `return` at top level behaves like Node's REPL: treat it
			// as the completion value, matching script (not function) semantics
			// loosely enough for this interpreter's purposes.
			last = c.Value
		}
	}
	i.drainMicrotasks()
	return last, nil
}

// toHostError converts an uncaught Throw completion's payload into the
// typed Result error shape required by spec.md §6/§7.
func (i *Interpreter) toHostError(v Value) error {
	kind := ierrors.Unknown
	msg := v.String()
	if obj, ok := v.(*Object); ok {
		if nameVal, found := i.getProperty(obj, "name"); found {
			switch ToString(nameVal) {
			case "TypeError":
				kind = ierrors.TypeError
			case "RangeError":
				kind = ierrors.RangeError
			case "ReferenceError":
				kind = ierrors.ReferenceError
			case "SyntaxError":
				kind = ierrors.SyntaxError
			}
		}
		if msgVal, found := i.getProperty(obj, "message"); found {
			msg = ToString(msgVal)
		}
	}
	e := ierrors.New(kind, lexer.Position{}, msg, i.source, i.file)
	e.Wrapped = v
	return e
}

// pushFrame/popFrame maintain the call stack used for stack-trace reporting
// (errors.StackTrace, whose frame formatting was reworked to JS "at fn
// (file:line:column)" texture).
func (i *Interpreter) pushFrame(name string, pos lexer.Position) {
	i.callStack = append(i.callStack, ierrors.NewStackFrame(name, i.file, &pos))
}

func (i *Interpreter) popFrame() {
	if len(i.callStack) > 0 {
		i.callStack = i.callStack[:len(i.callStack)-1]
	}
}

// queueMicrotask appends a Promise reaction to the FIFO (spec.md §4.7).
func (i *Interpreter) queueMicrotask(fn func()) {
	i.microtasks = append(i.microtasks, fn)
}

// drainMicrotasks runs the reaction queue to quiescence, head-first; a
// reaction may itself enqueue further reactions, which the loop picks up
// since it re-reads len(i.microtasks) each iteration.
func (i *Interpreter) drainMicrotasks() {
	for len(i.microtasks) > 0 {
		task := i.microtasks[0]
		i.microtasks = i.microtasks[1:]
		task()
	}
}

func (i *Interpreter) writeConsole(args []Value) {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = i.displayString(a)
	}
	fmt.Fprintln(i.output, joinStrings(parts, " "))
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for idx, p := range parts {
		if idx > 0 {
			out += sep
		}
		out += p
	}
	return out
}
