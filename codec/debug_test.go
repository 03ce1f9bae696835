package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/errors"
)

func TestDebug(t *testing.T) {
	point := NewStruct("Point", Field{Name: "x", Type: TypeU32}, Field{Name: "y", Type: TypeU32})
	opt := NewEnum("Option", Field{Name: "None", Type: TypeUnit}, Field{Name: "Some", Type: TypeU8})
	anon := NewEnum("", Field{Name: "A", Type: TypeUnit})
	empty := NewStruct("Marker")
	holder := NewStruct("Holder", Field{Name: "o", Type: opt})

	var hash B256
	hash[31] = 0xff

	tests := []struct {
		name  string
		typ   *Type
		value Value
		want  string
	}{
		{"unit", TypeUnit, Unit{}, "()"},
		{"bool", TypeBool, Bool(true), "true"},
		{"u64", TypeU64, U64(42), "42"},
		{"u128", TypeU128, NewU128(1, 0), "18446744073709551616"},
		{"b256", TypeB256, hash, "0x" + "00000000000000000000000000000000000000000000000000000000000000ff"},
		{"bytes", TypeBytes, Bytes{1, 2}, "Bytes([1, 2])"},
		{"raw slice", TypeRawSlice, RawSlice{}, "RawSlice([])"},
		{"string", TypeString, String("a\"b"), `"a\"b"`},
		{"str array", NewStringArray(2), StringArrayOf("hi"), `"hi"`},
		{"struct", point, Struct{U32(1), U32(2)}, "Point { x: 1, y: 2 }"},
		{"empty struct", empty, Struct{}, "Marker"},
		{"tuple", NewTuple(TypeU8, TypeBool), Tuple{U8(1), Bool(false)}, "(1, false)"},
		{"single tuple", NewTuple(TypeU8), Tuple{U8(1)}, "(1,)"},
		{"vector", NewVector(TypeU8), Vector{U8(1), U8(2)}, "[1, 2]"},
		{"array", NewArray(point, 1), Array{Struct{U32(0), U32(0)}}, "[Point { x: 0, y: 0 }]"},
		{"some", opt, NewEnumValue(opt.Variants, 1, U8(5)), "Some(5)"},
		{"none", opt, NewEnumValue(opt.Variants, 0, Unit{}), "None"},
		{"enum member", holder, Struct{NewEnumValue(opt.Variants, 1, U8(5))}, "Holder { o: Some(5) }"},
		{"anonymous enum", anon, NewEnumValue(anon.Variants, 0, nil), "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Debug(tt.typ, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDebugRejectsMismatch(t *testing.T) {
	_, err := Debug(TypeU8, Bool(true))
	requireKind(t, err, errors.KindTypeMismatch)
}
