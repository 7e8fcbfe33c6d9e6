// Package jsi is the embeddable host API for the interpreter, following
// spec.md §6's external interface: create an engine, optionally toggle
// strict mode, then Parse or Run source text.
package jsi

import (
	"io"

	"github.com/echosoar/jsi-sub000/internal/ast"
	ierrors "github.com/echosoar/jsi-sub000/internal/errors"
	"github.com/echosoar/jsi-sub000/internal/interp"
	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
)

// Engine wraps one interpreter instance and its global scope. A single
// Engine's globals persist across Run calls, so top-level `var`/`function`
// declarations from one script remain visible to the next.
type Engine struct {
	interp *interp.Interpreter
	strict bool
	file   string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithStrict starts the engine with strict-mode keyword recognition enabled
// (spec.md §6 `set_strict`); evaluation itself does not change.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithFile sets the filename reported in error positions and stack traces.
func WithFile(file string) Option {
	return func(e *Engine) { e.file = file }
}

// New creates an Engine with a fresh global environment and the standard
// intrinsics installed.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{file: "<input>"}
	for _, opt := range opts {
		opt(e)
	}
	e.interp = interp.New(nil)
	e.interp.SetStrict(e.strict)
	return e, nil
}

// SetOutput redirects console.log/error/warn/info output.
func (e *Engine) SetOutput(w io.Writer) { e.interp.SetOutput(w) }

// SetStrict toggles strict-mode keyword recognition for subsequent Parse/Run
// calls.
func (e *Engine) SetStrict(strict bool) {
	e.strict = strict
	e.interp.SetStrict(strict)
}

// Parse tokenizes and parses source, returning its AST. Syntax errors come
// back as a *Error with Kind == SyntaxError; the AST returned alongside it
// is the parser's best-effort partial tree.
func (e *Engine) Parse(source string) (*ast.Program, error) {
	var lexOpts []lexer.LexerOption
	if e.strict {
		lexOpts = append(lexOpts, lexer.WithStrict())
	}
	l := lexer.New(source, lexOpts...)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := l.Errors(); len(errs) > 0 {
		first := errs[0]
		return program, &Error{
			Kind:    SyntaxError,
			Message: first.Message,
			Line:    first.Pos.Line,
			Column:  first.Pos.Column,
		}
	}
	if errs := p.Errors(); len(errs) > 0 {
		first := errs[0]
		return program, &Error{
			Kind:    SyntaxError,
			Message: first.Message,
			Line:    first.Pos.Line,
			Column:  first.Pos.Column,
		}
	}
	return program, nil
}

// Run parses and executes source against the engine's persistent global
// scope, draining the microtask queue before returning.
func (e *Engine) Run(source string) (*Result, error) {
	program, err := e.Parse(source)
	if err != nil {
		return &Result{Success: false}, err
	}

	val, runErr := e.interp.Run(program, source, e.file)
	if runErr != nil {
		return &Result{Success: false}, convertError(runErr)
	}
	return &Result{Value: val, Success: true}, nil
}

// Result is the outcome of a Run; Success is false (and Value nil) when Run
// also returns an error.
type Result struct {
	Value   interp.Value
	Success bool
}

// ErrorKind classifies a host-visible error, mirroring internal/errors.Kind.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	SyntaxError
	TypeError
	ReferenceError
	RangeError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case ReferenceError:
		return "ReferenceError"
	case RangeError:
		return "RangeError"
	default:
		return "Error"
	}
}

// Error is the typed error shape spec.md §6/§7 requires every entry point to
// surface on failure: a kind, a message, a source position, and (for an
// uncaught in-language throw) the thrown value itself.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
	Wrapped interp.Value
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func convertError(err error) *Error {
	ie, ok := err.(*ierrors.InterpError)
	if !ok {
		return &Error{Kind: Unknown, Message: err.Error()}
	}
	out := &Error{
		Kind:    ErrorKind(ie.Kind),
		Message: ie.Message,
		Line:    ie.Pos.Line,
		Column:  ie.Pos.Column,
	}
	if v, ok := ie.Wrapped.(interp.Value); ok {
		out.Wrapped = v
	}
	return out
}
