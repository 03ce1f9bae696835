package codec

import (
	"encoding/hex"
	"strconv"
)

// Debug renders v the way a high-level debug formatter would print the
// reconstructed type: Name { a: 1 }, Variant(x), (a, b), [a, b].
// The output is for diagnostics only and is not parsed back.
func Debug(t *Type, v Value) (string, error) {
	if err := checkAt(t, v, nil); err != nil {
		return "", err
	}
	buf := getBuf()
	defer putBuf(buf)
	*buf = appendDebug(*buf, t, v)
	return string(*buf), nil
}

// appendDebug assumes v has been checked against t.
func appendDebug(b []byte, t *Type, v Value) []byte {
	switch v := v.(type) {
	case Unit:
		return append(b, "()"...)
	case Bool:
		return strconv.AppendBool(b, bool(v))
	case U8:
		return strconv.AppendUint(b, uint64(v), 10)
	case U16:
		return strconv.AppendUint(b, uint64(v), 10)
	case U32:
		return strconv.AppendUint(b, uint64(v), 10)
	case U64:
		return strconv.AppendUint(b, uint64(v), 10)
	case U128:
		return append(b, v.String()...)
	case U256:
		return append(b, v.String()...)
	case B256:
		b = append(b, "0x"...)
		return hex.AppendEncode(b, v[:])
	case Bytes:
		return appendByteList(append(b, "Bytes("...), v)
	case RawSlice:
		return appendByteList(append(b, "RawSlice("...), v)
	case String:
		return strconv.AppendQuote(b, string(v))
	case StringSlice:
		return strconv.AppendQuote(b, string(v))
	case StringArray:
		return strconv.AppendQuote(b, v.Text)
	case Tuple:
		b = append(b, '(')
		for i, m := range v {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = appendDebug(b, t.Fields[i].Type, m)
		}
		if len(v) == 1 {
			b = append(b, ',')
		}
		return append(b, ')')
	case Array:
		return appendList(b, t.Elem, v)
	case Vector:
		return appendList(b, t.Elem, v)
	case Struct:
		b = append(b, t.Name...)
		if len(v) == 0 {
			return b
		}
		b = append(b, " { "...)
		for i, m := range v {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, t.Fields[i].Name...)
			b = append(b, ": "...)
			b = appendDebug(b, t.Fields[i].Type, m)
		}
		return append(b, " }"...)
	case Enum:
		variant, _ := t.Variants.Variant(v.Discriminant)
		b = append(b, variant.Name...)
		if variant.Type.Kind == KindUnit {
			return b
		}
		b = append(b, '(')
		b = appendDebug(b, variant.Type, v.Value)
		return append(b, ')')
	}
	return b
}

func appendList(b []byte, elem *Type, elems []Value) []byte {
	b = append(b, '[')
	for i, el := range elems {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = appendDebug(b, elem, el)
	}
	return append(b, ']')
}

func appendByteList(b []byte, data []byte) []byte {
	b = append(b, '[')
	for i, c := range data {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = strconv.AppendUint(b, uint64(c), 10)
	}
	return append(b, "])"...)
}
