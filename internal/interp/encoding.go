package interp

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// installEncodingBuiltins wires the TextEncoder/TextDecoder host-extension
// constructors (SPEC_FULL.md §9 supplemented feature), backed by
// golang.org/x/text/encoding/unicode + transform for UTF-16 transcoding
// beyond what String.fromCharCode/charCodeAt need for basic Latin text.
func (i *Interpreter) installEncodingBuiltins(g *Globals) {
	encoderProto := NewObject("Object", g.ObjectProto)
	i.method(encoderProto, "encode", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		s, thrown := ctx.Interp.ToStringValue(arg(args, 0))
		if thrown != nil {
			return nil, thrown
		}
		bytes := []byte(s)
		elements := make([]Value, len(bytes))
		for idx, b := range bytes {
			elements[idx] = &NumberValue{Value: float64(b)}
		}
		return NewArray(g.ArrayProto, elements), nil
	})
	encoderCtor := i.nativeFn("TextEncoder", 0, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		return NewObject("TextEncoder", encoderProto), nil
	})
	encoderCtor.OwnPrototype = encoderProto
	encoderProto.SetOwn("constructor", encoderCtor)

	decoderProto := NewObject("Object", g.ObjectProto)
	i.method(decoderProto, "decode", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		arr, ok := arg(args, 0).(*Object)
		if !ok || arr.Class != "Array" {
			return &StringValue{Value: ""}, nil
		}
		bytes := make([]byte, len(arr.Elements))
		for idx, e := range arr.Elements {
			bytes[idx] = byte(int(ToNumber(e)))
		}
		self, _ := ctx.This.(*Object)
		encodingName := "utf-8"
		if self != nil {
			if v, ok := self.Slot("encoding"); ok {
				if s, ok := v.(string); ok {
					encodingName = s
				}
			}
		}
		decoded, err := decodeBytes(bytes, encodingName)
		if err != nil {
			return nil, Throw(ctx.Interp.newTypeError("TextDecoder.decode failed: " + err.Error()))
		}
		return &StringValue{Value: decoded}, nil
	})
	decoderCtor := i.nativeFn("TextDecoder", 1, func(ctx *CallContext, args []Value) (Value, *ThrowSignal) {
		encodingName := "utf-8"
		if len(args) > 0 && !isNullish(args[0]) {
			s, thrown := ctx.Interp.ToStringValue(args[0])
			if thrown != nil {
				return nil, thrown
			}
			encodingName = s
		}
		obj := NewObject("TextDecoder", decoderProto)
		obj.SetSlot("encoding", encodingName)
		obj.SetOwn("encoding", &StringValue{Value: encodingName})
		return obj, nil
	})
	decoderCtor.OwnPrototype = decoderProto
	decoderProto.SetOwn("constructor", decoderCtor)

	i.global.Define("TextEncoder", encoderCtor, bindingVar)
	i.global.Define("TextDecoder", decoderCtor, bindingVar)
}

// decodeBytes transcodes raw bytes to a Go string using the UTF-16
// decoders golang.org/x/text/encoding/unicode provides, falling back to a
// direct UTF-8 passthrough for "utf-8"/unrecognized encodings.
func decodeBytes(bytes []byte, encodingName string) (string, error) {
	var enc transform.Transformer
	switch encodingName {
	case "utf-16le":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	default:
		return string(bytes), nil
	}
	out, _, err := transform.Bytes(enc, bytes)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
