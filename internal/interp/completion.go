package interp

// CompletionType tags the sum type returned from every statement/expression
// evaluation step (spec.md §4.5/§9, GLOSSARY "Completion record"):
// Normal(v) | Break(label?) | Continue(label?) | Return(v) | Throw(v).
// This explicit sum type replaces the teacher's boolean-flag approach
// (exitSignal/continueSignal/breakSignal fields on the DWScript Interpreter)
// since ECMAScript's labeled break/continue and finally-overrides-everything
// interplay need a value threaded through every call, not global flags.
type CompletionType int

const (
	Normal CompletionType = iota
	Break
	Continue
	Return
	ThrowCompletion
)

// Completion is the value returned by every evaluator statement method.
// Value holds the completion's payload for Normal/Return/Throw; Label holds
// the target label for Break/Continue (empty string means unlabeled,
// targeting the innermost loop/switch).
type Completion struct {
	Type  CompletionType
	Value Value
	Label string
}

// NormalCompletion wraps v as an ordinary (non-control-flow) result.
func NormalCompletion(v Value) Completion { return Completion{Type: Normal, Value: v} }

// BreakCompletion produces an (optionally labeled) break.
func BreakCompletion(label string) Completion { return Completion{Type: Break, Label: label} }

// ContinueCompletion produces an (optionally labeled) continue.
func ContinueCompletion(label string) Completion { return Completion{Type: Continue, Label: label} }

// ReturnCompletion produces a return carrying v.
func ReturnCompletion(v Value) Completion { return Completion{Type: Return, Value: v} }

// ThrowCompletionValue produces a throw carrying v.
func ThrowCompletionValue(v Value) Completion { return Completion{Type: ThrowCompletion, Value: v} }

// IsAbrupt reports whether this completion is anything other than Normal —
// i.e. whether an enclosing construct must inspect and either consume or
// re-propagate it rather than simply continuing.
func (c Completion) IsAbrupt() bool { return c.Type != Normal }
