package codec

import (
	"encoding/hex"

	"github.com/holiman/uint256"

	"github.com/wippyai/vm-abi/codec/internal/abi"
)

// Value is runtime data shaped like a Type. Values are meaningful only
// together with the descriptor that produced or will consume them.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Unit struct{}
	Bool bool
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64

	// U128 holds a 128-bit integer in the low two limbs of a uint256.
	U128 uint256.Int
	U256 uint256.Int

	// B256 is a 32-byte hash or address.
	B256 [32]byte

	Bytes       []byte
	RawSlice    []byte
	String      string
	StringSlice string

	// StringArray is fixed-size ASCII text; len(Text) must equal Len.
	StringArray struct {
		Text string
		Len  uint64
	}

	Tuple  []Value
	Array  []Value
	Vector []Value

	// Struct holds field values in declaration order. Field names live on the Type.
	Struct []Value

	// Enum carries the selected discriminant, its payload and the full variant
	// list, so widths can be computed without the enclosing descriptor.
	Enum struct {
		Value        Value
		Variants     *EnumVariants
		Discriminant uint64
	}
)

func (Unit) Kind() Kind        { return KindUnit }
func (Bool) Kind() Kind        { return KindBool }
func (U8) Kind() Kind          { return KindU8 }
func (U16) Kind() Kind         { return KindU16 }
func (U32) Kind() Kind         { return KindU32 }
func (U64) Kind() Kind         { return KindU64 }
func (U128) Kind() Kind        { return KindU128 }
func (U256) Kind() Kind        { return KindU256 }
func (B256) Kind() Kind        { return KindB256 }
func (Bytes) Kind() Kind       { return KindBytes }
func (RawSlice) Kind() Kind    { return KindRawSlice }
func (String) Kind() Kind      { return KindString }
func (StringSlice) Kind() Kind { return KindStringSlice }
func (StringArray) Kind() Kind { return KindStringArray }
func (Tuple) Kind() Kind       { return KindTuple }
func (Array) Kind() Kind       { return KindArray }
func (Vector) Kind() Kind      { return KindVector }
func (Struct) Kind() Kind      { return KindStruct }
func (Enum) Kind() Kind        { return KindEnum }

func (Unit) isValue()        {}
func (Bool) isValue()        {}
func (U8) isValue()          {}
func (U16) isValue()         {}
func (U32) isValue()         {}
func (U64) isValue()         {}
func (U128) isValue()        {}
func (U256) isValue()        {}
func (B256) isValue()        {}
func (Bytes) isValue()       {}
func (RawSlice) isValue()    {}
func (String) isValue()      {}
func (StringSlice) isValue() {}
func (StringArray) isValue() {}
func (Tuple) isValue()       {}
func (Array) isValue()       {}
func (Vector) isValue()      {}
func (Struct) isValue()      {}
func (Enum) isValue()        {}

func NewU128(hi, lo uint64) U128 {
	return U128{lo, hi, 0, 0}
}

// U128FromInt narrows x, reporting false when it does not fit in 128 bits.
func U128FromInt(x *uint256.Int) (U128, bool) {
	if !abi.FitsBits(x, 128) {
		return U128{}, false
	}
	return U128(*x), true
}

func (u U128) Int() *uint256.Int {
	x := uint256.Int(u)
	return &x
}

func (u U128) String() string { return u.Int().Dec() }

func NewU256(x *uint256.Int) U256 {
	return U256(*x)
}

func (u U256) Int() *uint256.Int {
	x := uint256.Int(u)
	return &x
}

func (u U256) String() string { return u.Int().Dec() }

func (b B256) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// StringArrayOf sizes the array to the text.
func StringArrayOf(text string) StringArray {
	return StringArray{Text: text, Len: uint64(len(text))}
}

// NewEnumValue selects variant disc of variants with the given payload.
func NewEnumValue(variants *EnumVariants, disc uint64, payload Value) Enum {
	return Enum{Discriminant: disc, Value: payload, Variants: variants}
}

// NewVariant selects a variant by name. It reports false if the name is unknown.
func NewVariant(t *Type, name string, payload Value) (Enum, bool) {
	if t == nil || t.Kind != KindEnum {
		return Enum{}, false
	}
	disc, ok := t.Variants.Index(name)
	if !ok {
		return Enum{}, false
	}
	return Enum{Discriminant: disc, Value: payload, Variants: t.Variants}, true
}

// VariantName returns the name of the selected variant, or "" if the
// discriminant is out of range.
func (e Enum) VariantName() string {
	f, ok := e.Variants.Variant(e.Discriminant)
	if !ok {
		return ""
	}
	return f.Name
}
