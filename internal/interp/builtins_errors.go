package interp

// installErrorBuiltins wires the Error constructor and its TypeError/
// RangeError/ReferenceError/SyntaxError subclasses (spec.md §7's error-kind
// table), each sharing Error.prototype's toString but carrying its own
// `.name` on a dedicated prototype object.
func (i *Interpreter) installErrorBuiltins(g *Globals) {
	p := g.ErrorProto
	p.SetOwn("name", &StringValue{Value: "Error"})
	p.SetOwn("message", &StringValue{Value: ""})
	i.method(p, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		obj, ok := ctx.This.(*Object)
		if !ok {
			return &StringValue{Value: "Error"}, nil
		}
		name := "Error"
		if nameVal, found := ctx.Interp.getProperty(obj, "name"); found {
			name = ToString(nameVal)
		}
		msg := ""
		if msgVal, found := ctx.Interp.getProperty(obj, "message"); found {
			msg = ToString(msgVal)
		}
		if msg == "" {
			return &StringValue{Value: name}, nil
		}
		return &StringValue{Value: name + ": " + msg}, nil
	})

	makeCtor := func(name string, proto *Object) *Object {
		ctor := i.nativeFn(name, 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
			msg := ""
			if len(args) > 0 && !isNullish(args[0]) {
				s, thrown := ctx.Interp.ToStringValue(args[0])
				if thrown != nil {
					return nil, thrown
				}
				msg = s
			}
			instance, ok := ctx.This.(*Object)
			if !ok || ctx.NewTarget == nil {
				instance = NewObject("Error", proto)
			}
			instance.Class = "Error"
			instance.SetOwn("message", &StringValue{Value: msg})
			instance.SetOwn("stack", &StringValue{Value: ctx.Interp.callStack.String()})
			return instance, nil
		})
		ctor.OwnPrototype = proto
		proto.SetOwn("constructor", ctor)
		return ctor
	}

	g.ErrorCtor = makeCtor("Error", p)

	typeErrorProto := NewObject("Object", p)
	typeErrorProto.SetOwn("name", &StringValue{Value: "TypeError"})
	g.TypeErrorCtor = makeCtor("TypeError", typeErrorProto)

	rangeErrorProto := NewObject("Object", p)
	rangeErrorProto.SetOwn("name", &StringValue{Value: "RangeError"})
	g.RangeErrorCtor = makeCtor("RangeError", rangeErrorProto)

	referenceErrorProto := NewObject("Object", p)
	referenceErrorProto.SetOwn("name", &StringValue{Value: "ReferenceError"})
	g.ReferenceErrorCtor = makeCtor("ReferenceError", referenceErrorProto)

	syntaxErrorProto := NewObject("Object", p)
	syntaxErrorProto.SetOwn("name", &StringValue{Value: "SyntaxError"})
	g.SyntaxErrorCtor = makeCtor("SyntaxError", syntaxErrorProto)
}
