package interp

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// installStringBuiltins wires the String constructor and String.prototype
// (spec.md §4.6). normalize/localeCompare are enrichments grounded on the
// teacher's golang.org/x/text usage (SPEC_FULL.md domain-stack table).
func (i *Interpreter) installStringBuiltins(g *Globals) {
	p := g.StringProto
	thisString := func(ctx *CallContext) (string, *ThrowSignal) {
		return ctx.Interp.ToStringValue(ctx.This)
	}

	i.method(p, "toString", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: s}, nil
	})
	i.method(p, "valueOf", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: s}, nil
	})
	i.method(p, "charAt", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		runes := []rune(s)
		idx := int(ToNumber(arg(args, 0)))
		if idx < 0 || idx >= len(runes) {
			return &StringValue{Value: ""}, nil
		}
		return &StringValue{Value: string(runes[idx])}, nil
	})
	i.method(p, "charCodeAt", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		runes := []rune(s)
		idx := int(ToNumber(arg(args, 0)))
		if idx < 0 || idx >= len(runes) {
			return NaN, nil
		}
		return &NumberValue{Value: float64(runes[idx])}, nil
	})
	i.method(p, "indexOf", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		sub, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return &NumberValue{Value: float64(strings.Index(s, sub))}, nil
	})
	i.method(p, "includes", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		sub, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return Bool(strings.Contains(s, sub)), nil
	})
	i.method(p, "slice", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		runes := []rune(s)
		start, end := sliceBounds(args, len(runes))
		return &StringValue{Value: string(runes[start:end])}, nil
	})
	i.method(p, "substring", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		runes := []rune(s)
		n := len(runes)
		start := clampIndexNonNegative(ToNumber(arg(args, 0)), n)
		end := n
		if len(args) > 1 && !isNullish(args[1]) {
			end = clampIndexNonNegative(ToNumber(args[1]), n)
		}
		if start > end {
			start, end = end, start
		}
		return &StringValue{Value: string(runes[start:end])}, nil
	})
	i.method(p, "toUpperCase", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: strings.ToUpper(s)}, nil
	})
	i.method(p, "toLowerCase", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: strings.ToLower(s)}, nil
	})
	i.method(p, "trim", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: strings.TrimSpace(s)}, nil
	})
	i.method(p, "split", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		if isNullish(arg(args, 0)) {
			return NewArray(g.ArrayProto, []Value{&StringValue{Value: s}}), nil
		}
		sep, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		vals := make([]Value, len(parts))
		for idx, p := range parts {
			vals[idx] = &StringValue{Value: p}
		}
		return NewArray(g.ArrayProto, vals), nil
	})
	i.method(p, "replace", 2, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		search, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		replacement, thrown := ctx.Interp.ToStringValue(arg(args, 1))
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: strings.Replace(s, search, replacement, 1)}, nil
	})
	i.method(p, "repeat", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		count := int(ToNumber(arg(args, 0)))
		if count < 0 {
			return nil, Throw(ctx.Interp.newRangeError("Invalid count value"))
		}
		return &StringValue{Value: strings.Repeat(s, count)}, nil
	})
	i.method(p, "concat", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		for _, a := range args {
			as, thrown := ctx.Interp.ToStringValue(a)
			if thrown != nil {
				return nil, thrown
			}
			s += as
		}
		return &StringValue{Value: s}, nil
	})
	i.method(p, "startsWith", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		prefix, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return Bool(strings.HasPrefix(s, prefix)), nil
	})
	i.method(p, "endsWith", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		suffix, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		return Bool(strings.HasSuffix(s, suffix)), nil
	})

	// normalize: Unicode NFC/NFD/NFKC/NFKD via golang.org/x/text/unicode/norm.
	i.method(p, "normalize", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		form := "NFC"
		if len(args) > 0 && !isNullish(args[0]) {
			f, thrown := ctx.Interp.ToStringValue(args[0])
			if thrown != nil {
				return nil, thrown
			}
			form = f
		}
		var normForm norm.Form
		switch form {
		case "NFD":
			normForm = norm.NFD
		case "NFKC":
			normForm = norm.NFKC
		case "NFKD":
			normForm = norm.NFKD
		case "NFC":
			normForm = norm.NFC
		default:
			return nil, Throw(ctx.Interp.newRangeError("The normalization form should be one of NFC, NFD, NFKC, NFKD."))
		}
		return &StringValue{Value: normForm.String(s)}, nil
	})

	// localeCompare: locale-aware ordering via golang.org/x/text/collate.
	i.method(p, "localeCompare", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := thisString(ctx)
		if thrown != nil {
			return nil, thrown
		}
		other, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		tag := language.Und
		if len(args) > 1 && !isNullish(args[1]) {
			localeName, thrown := ctx.Interp.ToStringValue(args[1])
			if thrown != nil {
				return nil, thrown
			}
			if parsed, err := language.Parse(localeName); err == nil {
				tag = parsed
			}
		}
		c := collate.New(tag)
		return &NumberValue{Value: float64(c.CompareString(s, other))}, nil
	})

	ctor := i.nativeFn("String", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		if len(args) == 0 {
			return &StringValue{Value: ""}, nil
		}
		s, thrown := ctx.Interp.ToStringValue(args[0])
		if thrown != nil {
			return nil, thrown
		}
		return &StringValue{Value: s}, nil
	})
	ctor.OwnPrototype = g.StringProto
	g.StringProto.SetOwn("constructor", ctor)
	i.method(ctor, "fromCharCode", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		runes := make([]rune, len(args))
		for idx, a := range args {
			runes[idx] = rune(int(ToNumber(a)))
		}
		return &StringValue{Value: string(runes)}, nil
	})

	g.StringCtor = ctor
}

// clampIndexNonNegative implements String.prototype.substring's index
// clamping: negative or NaN arguments become 0, rather than wrapping from
// the end the way Array/String.slice's negative indices do.
func clampIndexNonNegative(n float64, length int) int {
	if n != n || n < 0 {
		return 0
	}
	if int(n) > length {
		return length
	}
	return int(n)
}
