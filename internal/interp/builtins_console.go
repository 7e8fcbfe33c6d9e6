package interp

// installConsole wires the `console` host object: `log`, plus `error`,
// `warn` and `info`, which write their arguments exactly as `log` does.
func (i *Interpreter) installConsole(g *Globals) {
	console := NewObject("Object", g.ObjectProto)
	logFn := func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		ctx.Interp.writeConsole(args)
		return Undefined, nil
	}
	i.method(console, "log", 0, logFn)
	i.method(console, "error", 0, logFn)
	i.method(console, "warn", 0, logFn)
	i.method(console, "info", 0, logFn)
	g.Console = console
}
