package types

type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindB256
	KindBytes
	KindRawSlice
	KindString
	KindStringArray
	KindStringSlice
	KindTuple
	KindArray
	KindVector
	KindStruct
	KindEnum
)

var kindNames = [...]string{
	KindUnit:        "unit",
	KindBool:        "bool",
	KindU8:          "u8",
	KindU16:         "u16",
	KindU32:         "u32",
	KindU64:         "u64",
	KindU128:        "u128",
	KindU256:        "u256",
	KindB256:        "b256",
	KindBytes:       "bytes",
	KindRawSlice:    "raw_slice",
	KindString:      "string",
	KindStringArray: "str_array",
	KindStringSlice: "str",
	KindTuple:       "tuple",
	KindArray:       "array",
	KindVector:      "vector",
	KindStruct:      "struct",
	KindEnum:        "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsPrimitive reports fixed-width scalars (unit through b256).
func (k Kind) IsPrimitive() bool {
	return k <= KindB256
}

// IsDynamic reports kinds whose payload lives outside the inline layout.
func (k Kind) IsDynamic() bool {
	switch k {
	case KindBytes, KindRawSlice, KindString, KindStringSlice, KindVector:
		return true
	default:
		return false
	}
}

// IsComposite reports kinds that nest other descriptors and count toward depth.
func (k Kind) IsComposite() bool {
	switch k {
	case KindTuple, KindArray, KindVector, KindStruct, KindEnum:
		return true
	default:
		return false
	}
}

// IsByteSized reports kinds that shrink to a single byte in element or packed context.
func (k Kind) IsByteSized() bool {
	return k == KindU8 || k == KindBool
}
