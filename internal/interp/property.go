package interp

import "strconv"

// getProperty implements spec.md §4.3's property read algorithm: look in
// own properties (including Array index/length virtual properties); else
// follow the weak prototype-chain link and recurse; else Undefined. Getter
// accessors are invoked with `this` bound to the original receiver.
func (i *Interpreter) getProperty(obj *Object, name string) (Value, bool) {
	return i.getPropertyWithReceiver(obj, name, obj)
}

func (i *Interpreter) getPropertyWithReceiver(obj *Object, name string, receiver Value) (Value, bool) {
	if obj.Class == "Array" {
		if v, ok := arrayVirtualGet(obj, name); ok {
			return v, true
		}
	}
	if obj.Class == "Function" && obj.Fn != nil {
		if v, ok := functionVirtualGet(obj, name); ok {
			return v, true
		}
	}
	if p, ok := obj.GetOwnProperty(name); ok {
		if p.Kind == AccessorProperty {
			if p.Getter == nil {
				return Undefined, true
			}
			v, thrown := i.callFunction(p.Getter, receiver, nil, nil)
			if thrown != nil {
				return Undefined, true
			}
			return v, true
		}
		return p.Val, true
	}
	if proto, ok := obj.Proto(); ok {
		return i.getPropertyWithReceiver(proto, name, receiver)
	}
	return Undefined, false
}

// setProperty implements spec.md §4.3's "Assignment always writes to the
// own object; prototype chain is read-only for writes" — except a setter
// accessor found anywhere on the chain is invoked instead of shadowing it.
func (i *Interpreter) setProperty(obj *Object, name string, val Value) *ThrowSignal {
	if obj.Class == "Array" {
		if handled, thrown := i.arrayVirtualSet(obj, name, val); handled {
			return thrown
		}
	}
	if setter, owner := i.findSetter(obj, name); setter != nil {
		_, thrown := i.callFunction(setter, obj, []Value{val}, nil)
		return thrown
	} else if owner != nil {
		// an accessor property with no setter exists on the chain: silent no-op
		// per sloppy-mode assignment-to-getter-only-property semantics.
		return nil
	}
	obj.SetOwn(name, val)
	return nil
}

func (i *Interpreter) findSetter(obj *Object, name string) (setter *FunctionValue, foundAccessor *Object) {
	if p, ok := obj.GetOwnProperty(name); ok {
		if p.Kind == AccessorProperty {
			return p.Setter, obj
		}
		return nil, nil
	}
	if proto, ok := obj.Proto(); ok {
		return i.findSetter(proto, name)
	}
	return nil, nil
}

// arrayVirtualGet handles the `length` property and numeric-index reads
// against the Elements slice directly (spec.md §3 invariant 5).
func arrayVirtualGet(obj *Object, name string) (Value, bool) {
	if name == "length" {
		return &NumberValue{Value: float64(len(obj.Elements))}, true
	}
	if idx, ok := arrayIndex(name); ok {
		if idx < 0 || idx >= len(obj.Elements) {
			return Undefined, false
		}
		v := obj.Elements[idx]
		if v == nil {
			return Undefined, true
		}
		return v, true
	}
	return nil, false
}

// arrayVirtualSet handles `length` truncation/growth and numeric-index
// writes, growing Elements and keeping length in sync atomically with the
// element write (spec.md §3 invariant 5). Assigning a length that isn't a
// non-negative integer raises a RangeError (spec.md §7) rather than silently
// discarding the write.
func (i *Interpreter) arrayVirtualSet(obj *Object, name string, val Value) (handled bool, thrown *ThrowSignal) {
	if name == "length" {
		n := ToNumber(val)
		if n < 0 || n != float64(int(n)) {
			return true, Throw(i.newRangeError("Invalid array length"))
		}
		newLen := int(n)
		if newLen < len(obj.Elements) {
			obj.Elements = obj.Elements[:newLen]
		} else {
			for len(obj.Elements) < newLen {
				obj.Elements = append(obj.Elements, Undefined)
			}
		}
		return true, nil
	}
	if idx, ok := arrayIndex(name); ok {
		for len(obj.Elements) <= idx {
			obj.Elements = append(obj.Elements, Undefined)
		}
		obj.Elements[idx] = val
		return true, nil
	}
	return false, nil
}

func arrayIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// functionVirtualGet exposes `.length` and `.name` on Function objects
// without requiring them to be stored as ordinary properties.
func functionVirtualGet(obj *Object, name string) (Value, bool) {
	switch name {
	case "length":
		if _, ok := obj.GetOwnProperty("length"); ok {
			return nil, false
		}
		return &NumberValue{Value: float64(obj.Fn.Length())}, true
	case "name":
		if _, ok := obj.GetOwnProperty("name"); ok {
			return nil, false
		}
		return &StringValue{Value: obj.Fn.Name}, true
	}
	return nil, false
}

// ownEnumerableKeys returns obj's own property keys in insertion order,
// used by Object.keys and for-in (spec.md §3 "property_keys: ordered
// sequence ... Object.keys and for-in iterate this").
func ownEnumerableKeys(obj *Object) []string {
	if obj.Class == "Array" {
		keys := make([]string, 0, len(obj.Elements)+len(obj.OwnKeys()))
		for idx := range obj.Elements {
			keys = append(keys, strconv.Itoa(idx))
		}
		keys = append(keys, obj.OwnKeys()...)
		return keys
	}
	return obj.OwnKeys()
}
