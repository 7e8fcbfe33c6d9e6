package interp

// newErrorOf builds an Error-class instance linked to ctor's prototype,
// used both by native TypeError/RangeError/etc. constructors and internally
// whenever the evaluator itself needs to raise one of those kinds (spec.md
// §7 policy table).
func (i *Interpreter) newErrorOf(ctor *Object, message string) *Object {
	proto := i.globals.ErrorProto
	if ctor != nil && ctor.OwnPrototype != nil {
		proto = ctor.OwnPrototype
	}
	e := NewObject("Error", proto)
	e.SetOwn("message", &StringValue{Value: message})
	if ctor != nil {
		if nameVal, ok := i.getProperty(ctor.OwnPrototype, "name"); ok {
			e.SetOwn("name", nameVal)
		}
	}
	e.SetOwn("stack", &StringValue{Value: i.callStack.String()})
	return e
}

func (i *Interpreter) newTypeError(message string) *Object {
	return i.newErrorOf(i.globals.TypeErrorCtor, message)
}

func (i *Interpreter) newRangeError(message string) *Object {
	return i.newErrorOf(i.globals.RangeErrorCtor, message)
}

func (i *Interpreter) newReferenceError(message string) *Object {
	return i.newErrorOf(i.globals.ReferenceErrorCtor, message)
}

func (i *Interpreter) newSyntaxError(message string) *Object {
	return i.newErrorOf(i.globals.SyntaxErrorCtor, message)
}
