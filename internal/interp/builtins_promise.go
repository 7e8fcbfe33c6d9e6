package interp

// Promise state tags, spec.md §4.7.
const (
	promisePending   = "pending"
	promiseFulfilled = "fulfilled"
	promiseRejected  = "rejected"
)

// promiseReaction is one registered `.then` callback pair, queued against
// either the fulfill or reject side once the promise settles.
type promiseReaction struct {
	onFulfilled *FunctionValue
	onRejected  *FunctionValue
	result      *Object // the promise returned by the `.then` call this reaction belongs to
}

// installPromiseBuiltins wires the Promise constructor, `.then`, and the
// static resolve/reject/all/race helpers (spec.md §4.7), backed by
// i.queueMicrotask/drainMicrotasks.
func (i *Interpreter) installPromiseBuiltins(g *Globals) {
	p := g.PromiseProto

	i.method(p, "then", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		self, ok := ctx.This.(*Object)
		if !ok || self.Class != "Promise" {
			return nil, Throw(ctx.Interp.newTypeError("Promise.prototype.then called on non-Promise"))
		}
		var onFulfilled, onRejected *FunctionValue
		if fo, ok := arg(args, 0).(*Object); ok && fo.Fn != nil {
			onFulfilled = fo.Fn
		}
		if fo, ok := arg(args, 1).(*Object); ok && fo.Fn != nil {
			onRejected = fo.Fn
		}
		resultPromise := newPendingPromise(g)
		reaction := &promiseReaction{onFulfilled: onFulfilled, onRejected: onRejected, result: resultPromise}
		state, _ := self.Slot("[[PromiseState]]")
		if state == promiseFulfilled || state == promiseRejected {
			i.scheduleReaction(self, reaction)
		} else {
			reactions, _ := self.Slot("[[Reactions]]")
			list, _ := reactions.([]*promiseReaction)
			self.SetSlot("[[Reactions]]", append(list, reaction))
		}
		return resultPromise, nil
	})
	i.method(p, "catch", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		thenFn, _ := ctx.Interp.getProperty(ctx.This.(*Object), "then")
		thenObj := thenFn.(*Object)
		return ctx.Interp.callFunction(thenObj.Fn, ctx.This, []Value{Undefined, arg(args, 0)}, nil)
	})
	i.method(p, "finally", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		cb, _ := arg(args, 0).(*Object)
		wrap := i.nativeFn("", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
			if cb != nil && cb.Fn != nil {
				if _, thrown := ctx.Interp.callFunction(cb.Fn, Undefined, nil, nil); thrown != nil {
					return nil, thrown
				}
			}
			return arg(innerArgs, 0), nil
		})
		thenFn, _ := ctx.Interp.getProperty(ctx.This.(*Object), "then")
		thenObj := thenFn.(*Object)
		return ctx.Interp.callFunction(thenObj.Fn, ctx.This, []Value{wrap, wrap}, nil)
	})

	ctor := i.nativeFn("Promise", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		executor, ok := arg(args, 0).(*Object)
		if !ok || executor.Fn == nil {
			return nil, Throw(ctx.Interp.newTypeError("Promise resolver is not a function"))
		}
		promise := newPendingPromise(g)
		resolve := i.nativeFn("resolve", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
			ctx.Interp.settlePromise(promise, promiseFulfilled, arg(innerArgs, 0))
			return Undefined, nil
		})
		reject := i.nativeFn("reject", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
			ctx.Interp.settlePromise(promise, promiseRejected, arg(innerArgs, 0))
			return Undefined, nil
		})
		if _, thrown := ctx.Interp.callFunction(executor.Fn, Undefined, []Value{resolve, reject}, nil); thrown != nil {
			ctx.Interp.settlePromise(promise, promiseRejected, thrown.Value)
		}
		return promise, nil
	})
	ctor.OwnPrototype = g.PromiseProto
	g.PromiseProto.SetOwn("constructor", ctor)

	i.method(ctor, "resolve", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if obj, ok := arg(args, 0).(*Object); ok && obj.Class == "Promise" {
			return obj, nil
		}
		promise := newPendingPromise(g)
		ctx.Interp.settlePromise(promise, promiseFulfilled, arg(args, 0))
		return promise, nil
	})
	i.method(ctor, "reject", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		promise := newPendingPromise(g)
		ctx.Interp.settlePromise(promise, promiseRejected, arg(args, 0))
		return promise, nil
	})
	i.method(ctor, "all", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr, ok := arg(args, 0).(*Object)
		if !ok || arr.Class != "Array" {
			return nil, Throw(ctx.Interp.newTypeError("Promise.all argument must be an array"))
		}
		result := newPendingPromise(g)
		n := len(arr.Elements)
		values := make([]Value, n)
		remaining := n
		if n == 0 {
			ctx.Interp.settlePromise(result, promiseFulfilled, NewArray(g.ArrayProto, nil))
			return result, nil
		}
		for idx, el := range arr.Elements {
			idx := idx
			promise, ok := el.(*Object)
			if !ok || promise.Class != "Promise" {
				promise = newPendingPromise(g)
				ctx.Interp.settlePromise(promise, promiseFulfilled, el)
			}
			onFulfilled := i.nativeFn("", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
				values[idx] = arg(innerArgs, 0)
				remaining--
				if remaining == 0 {
					ctx.Interp.settlePromise(result, promiseFulfilled, NewArray(g.ArrayProto, values))
				}
				return Undefined, nil
			})
			onRejected := i.nativeFn("", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
				ctx.Interp.settlePromise(result, promiseRejected, arg(innerArgs, 0))
				return Undefined, nil
			})
			ctx.Interp.attachThen(promise, onFulfilled.Fn, onRejected.Fn)
		}
		return result, nil
	})
	i.method(ctor, "race", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr, ok := arg(args, 0).(*Object)
		if !ok || arr.Class != "Array" {
			return nil, Throw(ctx.Interp.newTypeError("Promise.race argument must be an array"))
		}
		result := newPendingPromise(g)
		for _, el := range arr.Elements {
			promise, ok := el.(*Object)
			if !ok || promise.Class != "Promise" {
				promise = newPendingPromise(g)
				ctx.Interp.settlePromise(promise, promiseFulfilled, el)
			}
			onFulfilled := i.nativeFn("", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
				ctx.Interp.settlePromise(result, promiseFulfilled, arg(innerArgs, 0))
				return Undefined, nil
			})
			onRejected := i.nativeFn("", 1, func(innerCtx *CallContext, innerArgs []Value) (Value, *ThrowSignal) {
				ctx.Interp.settlePromise(result, promiseRejected, arg(innerArgs, 0))
				return Undefined, nil
			})
			ctx.Interp.attachThen(promise, onFulfilled.Fn, onRejected.Fn)
		}
		return result, nil
	})

	g.PromiseCtor = ctor
}

func newPendingPromise(g *Globals) *Object {
	p := NewObject("Promise", g.PromiseProto)
	p.SetSlot("[[PromiseState]]", promisePending)
	p.SetSlot("[[PromiseValue]]", Value(Undefined))
	return p
}

// attachThen registers a reaction pair directly (used internally by
// Promise.all/race without going through the `.then` native method).
func (i *Interpreter) attachThen(promise *Object, onFulfilled, onRejected *FunctionValue) {
	reaction := &promiseReaction{onFulfilled: onFulfilled, onRejected: onRejected, result: newPendingPromise(i.globals)}
	state, _ := promise.Slot("[[PromiseState]]")
	if state == promiseFulfilled || state == promiseRejected {
		i.scheduleReaction(promise, reaction)
		return
	}
	reactions, _ := promise.Slot("[[Reactions]]")
	list, _ := reactions.([]*promiseReaction)
	promise.SetSlot("[[Reactions]]", append(list, reaction))
}

// settlePromise transitions promise to fulfilled/rejected, storing its
// settlement value and scheduling every already-registered reaction onto
// the microtask queue (spec.md §4.7 FIFO ordering).
func (i *Interpreter) settlePromise(promise *Object, state string, value Value) {
	if current, _ := promise.Slot("[[PromiseState]]"); current != promisePending {
		return
	}
	if settledPromise, ok := value.(*Object); ok && settledPromise.Class == "Promise" {
		// adopt the inner promise's eventual state instead of wrapping it.
		onFulfilled := i.nativeFn("", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
			i.settlePromise(promise, promiseFulfilled, arg(args, 0))
			return Undefined, nil
		})
		onRejected := i.nativeFn("", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
			i.settlePromise(promise, promiseRejected, arg(args, 0))
			return Undefined, nil
		})
		i.attachThen(settledPromise, onFulfilled.Fn, onRejected.Fn)
		return
	}
	promise.SetSlot("[[PromiseState]]", state)
	promise.SetSlot("[[PromiseValue]]", value)
	reactions, _ := promise.Slot("[[Reactions]]")
	list, _ := reactions.([]*promiseReaction)
	promise.SetSlot("[[Reactions]]", nil)
	for _, r := range list {
		i.scheduleReaction(promise, r)
	}
}

// scheduleReaction queues one reaction's fulfilled/rejected callback (or a
// passthrough if none was supplied) as a microtask, settling the
// reaction's own result promise with the callback's return value.
func (i *Interpreter) scheduleReaction(promise *Object, r *promiseReaction) {
	state, _ := promise.Slot("[[PromiseState]]")
	value, _ := promise.Slot("[[PromiseValue]]")
	v, _ := value.(Value)
	if v == nil {
		v = Undefined
	}
	i.queueMicrotask(func() {
		var cb *FunctionValue
		if state == promiseFulfilled {
			cb = r.onFulfilled
		} else {
			cb = r.onRejected
		}
		if cb == nil {
			if state == promiseFulfilled {
				i.settlePromise(r.result, promiseFulfilled, v)
			} else {
				i.settlePromise(r.result, promiseRejected, v)
			}
			return
		}
		result, thrown := i.callFunction(cb, Undefined, []Value{v}, nil)
		if thrown != nil {
			i.settlePromise(r.result, promiseRejected, thrown.Value)
			return
		}
		i.settlePromise(r.result, promiseFulfilled, result)
	})
}
