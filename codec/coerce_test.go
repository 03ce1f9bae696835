package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/errors"
)

func recordType() *Type {
	opt := NewEnum("Option", Field{Name: "None", Type: TypeUnit}, Field{Name: "Some", Type: TypeU8})
	return NewStruct("Record",
		Field{Name: "id", Type: TypeU32},
		Field{Name: "owner", Type: TypeB256},
		Field{Name: "tags", Type: NewVector(TypeString)},
		Field{Name: "kind", Type: opt},
		Field{Name: "name", Type: NewStringArray(3)},
		Field{Name: "big", Type: TypeU128},
		Field{Name: "flag", Type: TypeBool},
		Field{Name: "raw", Type: TypeBytes},
		Field{Name: "pair", Type: NewTuple(TypeU8, TypeUnit)},
		Field{Name: "color", Type: colors},
		Field{Name: "grid", Type: NewArray(TypeU16, 2)},
	)
}

const recordJSON = `{
	"id": 5,
	"owner": "0x00000000000000000000000000000000000000000000000000000000000000ff",
	"tags": ["a", "b"],
	"kind": {"Some": 3},
	"name": "abc",
	"big": "123456789012345678901234567890",
	"flag": true,
	"raw": [1, 2],
	"pair": [4, null],
	"color": "Green",
	"grid": [10, 20]
}`

func TestFromNativeJSON(t *testing.T) {
	typ := recordType()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(recordJSON), &doc))

	v, err := FromNative(typ, doc)
	require.NoError(t, err)
	require.NoError(t, Check(typ, v))

	s := v.(Struct)
	assert.Equal(t, U32(5), s[0])
	assert.Equal(t, byte(0xff), s[1].(B256)[31])
	assert.Equal(t, Vector{String("a"), String("b")}, s[2])
	assert.Equal(t, "Some", s[3].(Enum).VariantName())
	assert.Equal(t, StringArrayOf("abc"), s[4])
	assert.Equal(t, "123456789012345678901234567890", s[5].(U128).String())
	assert.Equal(t, Bytes{1, 2}, s[7])
	assert.Equal(t, Tuple{U8(4), Unit{}}, s[8])
	assert.Equal(t, uint64(1), s[9].(Enum).Discriminant)
}

func TestNativeRoundTrip(t *testing.T) {
	typ := recordType()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(recordJSON), &doc))

	v, err := FromNative(typ, doc)
	require.NoError(t, err)

	native, err := ToNative(typ, v)
	require.NoError(t, err)

	m := native.(map[string]any)
	assert.Equal(t, uint64(5), m["id"])
	assert.Equal(t, "0x0102", m["raw"])
	assert.Equal(t, map[string]any{"Some": uint64(3)}, m["kind"])
	assert.Equal(t, "Green", m["color"])

	out, err := json.Marshal(native)
	require.NoError(t, err)
	var again any
	require.NoError(t, json.Unmarshal(out, &again))

	back, err := FromNative(typ, again)
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestFromNativeAcceptsValues(t *testing.T) {
	v, err := FromNative(NewTuple(TypeU8, TypeBool), []any{U8(1), true})
	require.NoError(t, err)
	assert.Equal(t, Tuple{U8(1), Bool(true)}, v)

	_, err = FromNative(TypeU8, U16(1))
	requireKind(t, err, errors.KindTypeMismatch)
}

func TestFromNativePositionalStruct(t *testing.T) {
	typ := NewStruct("P", Field{Name: "x", Type: TypeU8}, Field{Name: "y", Type: TypeU64})
	v, err := FromNative(typ, []any{1, uint64(2)})
	require.NoError(t, err)
	assert.Equal(t, Struct{U8(1), U64(2)}, v)
}

func TestFromNativeErrors(t *testing.T) {
	point := NewStruct("P", Field{Name: "x", Type: TypeU8})

	tests := []struct {
		name string
		typ  *Type
		in   any
		kind errors.Kind
	}{
		{"u8 overflow", TypeU8, 300, errors.KindOverflow},
		{"u32 overflow", TypeU32, uint64(1) << 33, errors.KindOverflow},
		{"negative", TypeU64, -1, errors.KindTypeMismatch},
		{"fraction", TypeU64, 1.5, errors.KindTypeMismatch},
		{"u128 overflow", TypeU128, "0x" + strings.Repeat("f", 33), errors.KindOverflow},
		{"bool", TypeBool, "true", errors.KindTypeMismatch},
		{"b256 length", TypeB256, "0x01", errors.KindInvalidData},
		{"bad hex", TypeBytes, "0xzz", errors.KindInvalidData},
		{"byte list overflow", TypeBytes, []any{256}, errors.KindOverflow},
		{"str array length", NewStringArray(2), "abc", errors.KindInvalidData},
		{"array length", NewArray(TypeU8, 2), []any{1}, errors.KindTypeMismatch},
		{"missing field", point, map[string]any{}, errors.KindInvalidData},
		{"unknown field", point, map[string]any{"x": 1, "z": 2}, errors.KindNotFound},
		{"unknown variant", colors, "Blue", errors.KindNotFound},
		{"two variant keys", colors, map[string]any{"Red": nil, "Green": nil}, errors.KindInvalidData},
		{"unit", TypeUnit, 1, errors.KindTypeMismatch},
		{"nil type", nil, 1, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromNative(tt.typ, tt.in)
			requireKind(t, err, tt.kind)
		})
	}
}

func TestToNativeRejectsMismatch(t *testing.T) {
	_, err := ToNative(TypeString, U8(1))
	requireKind(t, err, errors.KindTypeMismatch)
}
