package codec

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/errors"
)

// FromNative builds a Value of type t from Go natives, including the output
// of encoding/json: numbers (or decimal and 0x strings for wide integers),
// 0x-hex strings or []byte for Bytes and B256, []any for sequences,
// map[string]any for structs, and "Variant" or {"Variant": payload} for enums.
func FromNative(t *Type, x any) (Value, error) {
	if err := validateType(errors.PhaseCoerce, t); err != nil {
		return nil, err
	}
	return fromNative(t, x, nil)
}

func coerceMismatch(path []string, x any, t *Type) error {
	return errors.TypeMismatch(errors.PhaseCoerce, path, abi.TypeName(x), t.DisplayName())
}

func fromNative(t *Type, x any, path []string) (Value, error) {
	if v, ok := x.(Value); ok {
		if err := check(t, v, path, 0); err != nil {
			return nil, err
		}
		return v, nil
	}

	switch t.Kind {
	case KindUnit:
		if x != nil {
			if m, ok := x.(map[string]any); !ok || len(m) != 0 {
				return nil, coerceMismatch(path, x, t)
			}
		}
		return Unit{}, nil
	case KindBool:
		b, ok := x.(bool)
		if !ok {
			return nil, coerceMismatch(path, x, t)
		}
		return Bool(b), nil
	case KindU8, KindU16, KindU32, KindU64:
		return uintFromNative(t, x, path)
	case KindU128, KindU256:
		n, ok := abi.CoerceToUint256(x)
		if !ok {
			return nil, coerceMismatch(path, x, t)
		}
		if t.Kind == KindU256 {
			return NewU256(n), nil
		}
		u, ok := U128FromInt(n)
		if !ok {
			return nil, errors.Overflow(errors.PhaseCoerce, path, n.Dec(), "u128")
		}
		return u, nil
	case KindB256:
		b, err := bytesFromNative(t, x, path)
		if err != nil {
			return nil, err
		}
		if len(b) != 32 {
			return nil, errors.InvalidData(errors.PhaseCoerce, path, fmt.Sprintf("b256 needs 32 bytes, got %d", len(b)))
		}
		var h B256
		copy(h[:], b)
		return h, nil
	case KindBytes, KindRawSlice:
		b, err := bytesFromNative(t, x, path)
		if err != nil {
			return nil, err
		}
		if t.Kind == KindBytes {
			return Bytes(b), nil
		}
		return RawSlice(b), nil
	case KindString, KindStringSlice, KindStringArray:
		s, ok := x.(string)
		if !ok {
			return nil, coerceMismatch(path, x, t)
		}
		switch t.Kind {
		case KindString:
			return String(s), nil
		case KindStringSlice:
			return StringSlice(s), nil
		}
		if uint64(len(s)) != t.Len {
			return nil, errors.InvalidData(errors.PhaseCoerce, path,
				fmt.Sprintf("%s needs exactly %d bytes, got %d", t.DisplayName(), t.Len, len(s)))
		}
		return StringArray{Text: s, Len: t.Len}, nil
	case KindTuple:
		items, err := listFromNative(t, x, path, uint64(len(t.Fields)))
		if err != nil {
			return nil, err
		}
		out := make(Tuple, len(items))
		for i, item := range items {
			if out[i], err = fromNative(t.Fields[i].Type, item, extend(path, strconv.Itoa(i))); err != nil {
				return nil, err
			}
		}
		return out, nil
	case KindArray, KindVector:
		want := uint64(math.MaxUint64)
		if t.Kind == KindArray {
			want = t.Len
		}
		items, err := listFromNative(t, x, path, want)
		if err != nil {
			return nil, err
		}
		out := make([]Value, len(items))
		for i, item := range items {
			if out[i], err = fromNative(t.Elem, item, extend(path, "["+strconv.Itoa(i)+"]")); err != nil {
				return nil, err
			}
		}
		if t.Kind == KindArray {
			return Array(out), nil
		}
		return Vector(out), nil
	case KindStruct:
		return structFromNative(t, x, path)
	case KindEnum:
		return enumFromNative(t, x, path)
	}
	return nil, errors.Unsupported(errors.PhaseCoerce, "type kind "+t.Kind.String())
}

func uintFromNative(t *Type, x any, path []string) (Value, error) {
	n, ok := abi.CoerceToUint64(x)
	if !ok {
		return nil, coerceMismatch(path, x, t)
	}
	switch t.Kind {
	case KindU8:
		if n > math.MaxUint8 {
			return nil, errors.Overflow(errors.PhaseCoerce, path, n, "u8")
		}
		return U8(n), nil
	case KindU16:
		if n > math.MaxUint16 {
			return nil, errors.Overflow(errors.PhaseCoerce, path, n, "u16")
		}
		return U16(n), nil
	case KindU32:
		if n > math.MaxUint32 {
			return nil, errors.Overflow(errors.PhaseCoerce, path, n, "u32")
		}
		return U32(n), nil
	default:
		return U64(n), nil
	}
}

func bytesFromNative(t *Type, x any, path []string) ([]byte, error) {
	switch v := x.(type) {
	case []byte:
		return append([]byte{}, v...), nil
	case [32]byte:
		return v[:], nil
	case string:
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X"))
		if err != nil {
			return nil, errors.New(errors.PhaseCoerce, errors.KindInvalidData).
				Path(path...).
				AbiType(t.DisplayName()).
				Cause(err).
				Detail("invalid hex string").
				Build()
		}
		return b, nil
	case []any:
		out := make([]byte, len(v))
		for i, item := range v {
			n, ok := abi.CoerceToUint64(item)
			if !ok || n > math.MaxUint8 {
				return nil, errors.Overflow(errors.PhaseCoerce, extend(path, "["+strconv.Itoa(i)+"]"), item, "u8")
			}
			out[i] = byte(n)
		}
		return out, nil
	}
	return nil, coerceMismatch(path, x, t)
}

// listFromNative accepts []any of length want, or of any length when want is MaxUint64.
func listFromNative(t *Type, x any, path []string, want uint64) ([]any, error) {
	items, ok := x.([]any)
	if !ok {
		if x != nil || t.Kind != KindVector {
			return nil, coerceMismatch(path, x, t)
		}
	}
	if want != math.MaxUint64 && uint64(len(items)) != want {
		return nil, errors.New(errors.PhaseCoerce, errors.KindTypeMismatch).
			Path(path...).
			AbiType(t.DisplayName()).
			Detail("expected %d items, got %d", want, len(items)).
			Build()
	}
	return items, nil
}

func structFromNative(t *Type, x any, path []string) (Value, error) {
	out := make(Struct, len(t.Fields))
	switch v := x.(type) {
	case map[string]any:
		if len(v) > len(t.Fields) {
			for name := range v {
				if !hasField(t, name) {
					return nil, errors.NotFound(errors.PhaseCoerce, t.DisplayName()+" field", name)
				}
			}
		}
		for i, f := range t.Fields {
			item, ok := v[f.Name]
			if !ok {
				return nil, errors.InvalidData(errors.PhaseCoerce, extend(path, f.Name), "missing field")
			}
			var err error
			if out[i], err = fromNative(f.Type, item, extend(path, f.Name)); err != nil {
				return nil, err
			}
		}
	case []any:
		if len(v) != len(t.Fields) {
			return nil, coerceMismatch(path, x, t)
		}
		for i, f := range t.Fields {
			var err error
			if out[i], err = fromNative(f.Type, v[i], extend(path, f.Name)); err != nil {
				return nil, err
			}
		}
	default:
		return nil, coerceMismatch(path, x, t)
	}
	return out, nil
}

func hasField(t *Type, name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func enumFromNative(t *Type, x any, path []string) (Value, error) {
	var name string
	var payload any
	switch v := x.(type) {
	case string:
		name = v
	case map[string]any:
		if len(v) != 1 {
			return nil, errors.InvalidData(errors.PhaseCoerce, path, "enum object must have exactly one variant key")
		}
		for k, p := range v {
			name, payload = k, p
		}
	default:
		return nil, coerceMismatch(path, x, t)
	}

	disc, ok := t.Variants.Index(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseCoerce, t.DisplayName()+" variant", name)
	}
	variant, _ := t.Variants.Variant(disc)
	inner, err := fromNative(variant.Type, payload, extend(path, name))
	if err != nil {
		return nil, err
	}
	return Enum{Discriminant: disc, Value: inner, Variants: t.Variants}, nil
}

// ToNative converts v into plain Go data suitable for encoding/json and
// accepted back by FromNative.
func ToNative(t *Type, v Value) (any, error) {
	if err := checkAt(t, v, nil); err != nil {
		return nil, err
	}
	return toNative(t, v), nil
}

func toNative(t *Type, v Value) any {
	switch v := v.(type) {
	case Unit:
		return nil
	case Bool:
		return bool(v)
	case U8:
		return uint64(v)
	case U16:
		return uint64(v)
	case U32:
		return uint64(v)
	case U64:
		return uint64(v)
	case U128:
		return v.String()
	case U256:
		return v.String()
	case B256:
		return v.String()
	case Bytes:
		return "0x" + hex.EncodeToString(v)
	case RawSlice:
		return "0x" + hex.EncodeToString(v)
	case String:
		return string(v)
	case StringSlice:
		return string(v)
	case StringArray:
		return v.Text
	case Tuple:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = toNative(t.Fields[i].Type, m)
		}
		return out
	case Array:
		return listToNative(t.Elem, v)
	case Vector:
		return listToNative(t.Elem, v)
	case Struct:
		out := make(map[string]any, len(v))
		for i, m := range v {
			out[t.Fields[i].Name] = toNative(t.Fields[i].Type, m)
		}
		return out
	case Enum:
		variant, _ := t.Variants.Variant(v.Discriminant)
		if variant.Type.Kind == KindUnit {
			return variant.Name
		}
		return map[string]any{variant.Name: toNative(variant.Type, v.Value)}
	}
	return nil
}

func listToNative(elem *Type, elems []Value) []any {
	out := make([]any, len(elems))
	for i, el := range elems {
		out[i] = toNative(elem, el)
	}
	return out
}
